package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func echoBatch(ctx context.Context, batch []Item) ([]Result, error) {
	results := make([]Result, len(batch))
	for i, item := range batch {
		results[i] = Result{Index: item.Index, Text: "t:" + item.Text}
	}
	return results, nil
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Index: i, Text: fmt.Sprintf("line %d", i)}
	}
	return items
}

func TestRunBatchesEmptyInput(t *testing.T) {
	results, err := runBatches(context.Background(), nil, 10, 1, echoBatch)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRunBatchesSequential(t *testing.T) {
	items := makeItems(25)

	results, err := runBatches(context.Background(), items, 10, 1, echoBatch)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if len(results) != 25 {
		t.Fatalf("got %d results, want 25", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d, results not sorted", i, r.Index)
		}
	}
}

func TestRunBatchesConcurrentSortsResults(t *testing.T) {
	items := makeItems(50)

	results, err := runBatches(context.Background(), items, 7, 4, echoBatch)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if len(results) != 50 {
		t.Fatalf("got %d results, want 50", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d, results not sorted", i, r.Index)
		}
		if r.Text != "t:"+items[i].Text {
			t.Fatalf("result %d text = %q", i, r.Text)
		}
	}
}

func TestRunBatchesRespectsBatchSize(t *testing.T) {
	items := makeItems(30)

	var mu sync.Mutex
	var sizes []int
	fn := func(ctx context.Context, batch []Item) ([]Result, error) {
		mu.Lock()
		sizes = append(sizes, len(batch))
		mu.Unlock()
		return echoBatch(ctx, batch)
	}

	if _, err := runBatches(context.Background(), items, 12, 2, fn); err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}

	if len(sizes) != 3 {
		t.Fatalf("got %d batches, want 3", len(sizes))
	}
	total := 0
	for _, n := range sizes {
		if n > 12 {
			t.Errorf("batch size %d exceeds limit", n)
		}
		total += n
	}
	if total != 30 {
		t.Errorf("batches cover %d items, want 30", total)
	}
}

func TestRunBatchesPropagatesError(t *testing.T) {
	items := makeItems(40)
	batchErr := errors.New("rate limited")

	fn := func(ctx context.Context, batch []Item) ([]Result, error) {
		if batch[0].Index >= 20 {
			return nil, batchErr
		}
		return echoBatch(ctx, batch)
	}

	_, err := runBatches(context.Background(), items, 10, 3, fn)
	if err == nil {
		t.Fatal("expected error from failing batch")
	}
	if !errors.Is(err, batchErr) {
		t.Errorf("error %v does not wrap the batch error", err)
	}
}

func TestRunBatchesSingleBatchSkipsPool(t *testing.T) {
	items := makeItems(5)

	calls := 0
	fn := func(ctx context.Context, batch []Item) ([]Result, error) {
		calls++
		return echoBatch(ctx, batch)
	}

	results, err := runBatches(context.Background(), items, 50, 4, fn)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("got %d batch calls, want 1", calls)
	}
	if len(results) != 5 {
		t.Errorf("got %d results, want 5", len(results))
	}
}

func TestRunBatchesSingleBatchSortsResults(t *testing.T) {
	items := makeItems(4)

	reversed := func(ctx context.Context, batch []Item) ([]Result, error) {
		results := make([]Result, 0, len(batch))
		for i := len(batch) - 1; i >= 0; i-- {
			results = append(results, Result{Index: batch[i].Index, Text: batch[i].Text})
		}
		return results, nil
	}

	results, err := runBatches(context.Background(), items, 50, 1, reversed)
	if err != nil {
		t.Fatalf("runBatches failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d, results not sorted", i, r.Index)
		}
	}
}
