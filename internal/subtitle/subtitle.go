package subtitle

import (
	"time"
)

// represents one subtitle cue
type Caption struct {
	Start time.Duration
	End   time.Duration
	Text  string
	Style string // name of a defined style; empty means plain text
}

// single CSS property/value pair
type Property struct {
	Name  string
	Value string
}

// named set of CSS-like properties
type Style struct {
	Name       string
	Properties []Property
}

// represents a transcribed audio segment
type Segment struct {
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// how segment timing was produced
type Source string

const (
	// timestamps came from the transcription engine
	SourceTimed Source = "timed"
	// timestamps were synthesized from plain text
	SourceFallback Source = "fallback"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// interface for writing subtitle documents to files
type Writer interface {
	Write(doc *Document, path string) error
}
