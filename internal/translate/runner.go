package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

const defaultConcurrency = 3

// batchFunc translates one batch via a single API request.
type batchFunc func(ctx context.Context, batch []Item) ([]Result, error)

// runBatches splits items into batches of batchSize and translates them,
// sequentially when concurrency <= 1 and with a worker pool otherwise.
// Results are returned sorted by item index. A failed batch cancels the
// remaining workers and fails the whole run.
func runBatches(
	ctx context.Context,
	items []Item,
	batchSize int,
	concurrency int,
	fn batchFunc,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	var batches [][]Item
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}

	if len(batches) == 1 {
		results, err := fn(ctx, batches[0])
		if err != nil {
			return nil, err
		}
		sortResults(results)
		return results, nil
	}

	if concurrency <= 1 {
		var allResults []Result
		for i, batch := range batches {
			results, err := fn(ctx, batch)
			if err != nil {
				return nil, fmt.Errorf("batch %d failed: %w", i, err)
			}
			allResults = append(allResults, results...)
		}
		sortResults(allResults)
		return allResults, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []Result
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case batchIdx, ok := <-workChan:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}

					results, err := fn(ctx, batches[batchIdx])
					if err != nil {
						cancel()
					}
					resultChan <- batchResult{
						Index:   batchIdx,
						Results: results,
						Error:   err,
					}
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var allResults []Result
	for br := range resultChan {
		if br.Error != nil {
			return nil, fmt.Errorf("batch %d failed: %w", br.Index, br.Error)
		}
		allResults = append(allResults, br.Results...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortResults(allResults)
	return allResults, nil
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}
