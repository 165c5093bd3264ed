package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/captioncraft/captioncraft/internal/audio"
	"github.com/captioncraft/captioncraft/internal/subtitle"
)

// ErrUnavailable reports that no transcription capability can be
// constructed, typically because no API key is configured. Callers
// surface this as a capability-unavailable condition rather than a
// hard failure of the pipeline.
var ErrUnavailable = errors.New("transcription provider unavailable")

// Result is what a transcription engine hands back: the full
// transcript, optional timed segments, and a best-effort language
// code. Absent or empty Segments means downstream timing must be
// synthesized from Text.
type Result struct {
	Text     string
	Segments []subtitle.Segment
	Language string
	Duration time.Duration
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

type ConcurrentTranscriber interface {
	Transcriber
	TranscribeWithChunks(
		ctx context.Context,
		chunks []audio.ChunkInfo,
		concurrency int,
	) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	Language           string // Source language of audio
	TranscriptLanguage string // Output language for transcript (default: "native")
	Model              string
	Prompt             string
}

// holds the result of transcribing a chunk
type chunkResult struct {
	Index    int
	Segments []subtitle.Segment
	Error    error
}

// mergeChunkResults stitches per-chunk segments (already sorted by
// chunk index and offset-adjusted) into a single Result covering the
// whole media.
func mergeChunkResults(
	results []chunkResult,
	chunks []audio.ChunkInfo,
	language string,
) *Result {
	var segments []subtitle.Segment
	var texts []string
	for _, r := range results {
		segments = append(segments, r.Segments...)
		for _, seg := range r.Segments {
			texts = append(texts, seg.Text)
		}
	}

	var total time.Duration
	if len(chunks) > 0 {
		total = chunks[len(chunks)-1].EndTime
	}

	if language == "" {
		language = "en"
	}

	return &Result{
		Text:     strings.Join(texts, " "),
		Segments: segments,
		Language: language,
		Duration: total,
	}
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key for %s", ErrUnavailable, provider)
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
