package subtitle

import (
	"regexp"
	"strings"
	"time"
)

// Sentence chunking bounds for the plain-text fallback: sentences
// longer than maxSentenceWords are re-split into groups of at most
// chunkWords words.
const (
	maxSentenceWords = 15
	chunkWords       = 10
)

var sentenceEndRegex = regexp.MustCompile(`[.!?]+`)

// FromTimedSegments normalizes segments produced by a transcription
// engine. Segments arrive chronological and covering the audio, so they
// pass through unchanged except that segments with empty text are
// dropped and each end time is clamped to at least one millisecond
// after its start. An empty result is valid and means an empty
// subtitle document, not an error.
func FromTimedSegments(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		end := seg.EndTime
		if end < seg.StartTime+minCaptionDuration {
			end = seg.StartTime + minCaptionDuration
		}
		out = append(out, Segment{
			StartTime: seg.StartTime,
			EndTime:   end,
			Text:      text,
		})
	}
	return out
}

// FromPlainText synthesizes timing for a transcript that carries none.
// The text is split into sentence chunks and each chunk is assigned a
// uniform slice of the total duration, starting at zero, with the final
// chunk ending exactly at total. The result is a deterministic
// approximation, strictly inferior to engine timestamps; callers should
// label it as a fallback when reporting status. It never fails for
// non-empty text.
func FromPlainText(text string, total time.Duration) []Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if total <= 0 {
		total = time.Second
	}

	chunks := chunkTranscript(text)
	if len(chunks) == 0 {
		chunks = []string{strings.TrimSpace(text)}
	}

	slice := total / time.Duration(len(chunks))

	segments := make([]Segment, 0, len(chunks))
	var current time.Duration
	for i, chunk := range chunks {
		end := current + slice
		// Clamp the final chunk to the exact total so integer
		// division remainder never pushes past the media end.
		if i == len(chunks)-1 {
			end = total
		}
		segments = append(segments, Segment{
			StartTime: current,
			EndTime:   end,
			Text:      chunk,
		})
		current = end
	}

	return segments
}

// Normalize dispatches on the timing information available: timed
// segments when the engine supplied them, otherwise synthetic timing
// derived from the transcript text.
func Normalize(
	text string,
	segments []Segment,
	total time.Duration,
) ([]Segment, Source) {
	if len(segments) > 0 {
		return FromTimedSegments(segments), SourceTimed
	}
	return FromPlainText(text, total), SourceFallback
}

// chunkTranscript splits text on sentence-terminal punctuation and
// re-chunks long sentences into groups of at most chunkWords words.
func chunkTranscript(text string) []string {
	var chunks []string
	for _, sentence := range sentenceEndRegex.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		words := strings.Fields(sentence)
		if len(words) <= maxSentenceWords {
			chunks = append(chunks, sentence)
			continue
		}

		for i := 0; i < len(words); i += chunkWords {
			last := i + chunkWords
			if last > len(words) {
				last = len(words)
			}
			chunks = append(chunks, strings.Join(words[i:last], " "))
		}
	}
	return chunks
}
