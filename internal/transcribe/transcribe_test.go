package transcribe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/captioncraft/captioncraft/internal/audio"
	"github.com/captioncraft/captioncraft/internal/subtitle"
)

func TestFactoryRequiresAPIKey(t *testing.T) {
	_, err := Factory(context.Background(), ProviderOpenAI, "", Options{})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error %v is not ErrUnavailable", err)
	}
}

func TestFactoryReturnsOpenAITranscriber(t *testing.T) {
	tr, err := Factory(context.Background(), ProviderOpenAI, "test-key", Options{})
	if err != nil {
		t.Fatalf("Factory failed: %v", err)
	}
	if _, ok := tr.(*OpenAITranscriber); !ok {
		t.Errorf("expected *OpenAITranscriber, got %T", tr)
	}
	if _, ok := tr.(ConcurrentTranscriber); !ok {
		t.Error("OpenAITranscriber does not implement ConcurrentTranscriber")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := Factory(context.Background(), Provider("azure"), "test-key", Options{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestMergeChunkResults(t *testing.T) {
	chunks := []audio.ChunkInfo{
		{Index: 0, StartTime: 0, EndTime: 60 * time.Second},
		{Index: 1, StartTime: 60 * time.Second, EndTime: 90 * time.Second},
	}
	results := []chunkResult{
		{
			Index: 0,
			Segments: []subtitle.Segment{
				{StartTime: 0, EndTime: 2 * time.Second, Text: "first"},
				{StartTime: 2 * time.Second, EndTime: 4 * time.Second, Text: "second"},
			},
		},
		{
			Index: 1,
			Segments: []subtitle.Segment{
				{StartTime: 60 * time.Second, EndTime: 62 * time.Second, Text: "third"},
			},
		},
	}

	merged := mergeChunkResults(results, chunks, "es")

	if len(merged.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(merged.Segments))
	}
	if merged.Text != "first second third" {
		t.Errorf("text = %q", merged.Text)
	}
	if merged.Language != "es" {
		t.Errorf("language = %q, want es", merged.Language)
	}
	if merged.Duration != 90*time.Second {
		t.Errorf("duration = %v, want 90s", merged.Duration)
	}
}

func TestMergeChunkResultsDefaultsLanguage(t *testing.T) {
	merged := mergeChunkResults(nil, nil, "")

	if merged.Language != "en" {
		t.Errorf("language = %q, want en default", merged.Language)
	}
	if merged.Duration != 0 {
		t.Errorf("duration = %v, want 0 for no chunks", merged.Duration)
	}
}
