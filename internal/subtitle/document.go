package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// minimum cue length; zero-length cues are rejected by players
const minCaptionDuration = time.Millisecond

// Document owns an ordered collection of styled captions and the style
// definitions they reference. Captions serialize in insertion order,
// which is assumed, but not verified, to be chronological. The document
// is append-only; Render may be called at any point and reflects the
// current contents.
type Document struct {
	captions []Caption
	styles   []Style
	styleIdx map[string]int
	source   Source
}

func NewDocument() *Document {
	return &Document{
		styleIdx: make(map[string]int),
	}
}

// AddCaption appends a cue. Text is trimmed; empty text is ignored.
// The end time is coerced to at least one millisecond after the start.
// Chronological ordering relative to prior captions is not validated,
// see CheckMonotonic.
func (d *Document) AddCaption(start, end time.Duration, text, style string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if start < 0 {
		start = 0
	}
	if end < start+minCaptionDuration {
		end = start + minCaptionDuration
	}

	d.captions = append(d.captions, Caption{
		Start: start,
		End:   end,
		Text:  text,
		Style: style,
	})
}

// SetStyle stores a style under name, overwriting any previous
// definition in place. Property order is preserved in the rendered
// STYLE block.
func (d *Document) SetStyle(name string, props []Property) {
	style := Style{Name: name, Properties: props}
	if idx, ok := d.styleIdx[name]; ok {
		d.styles[idx] = style
		return
	}
	d.styleIdx[name] = len(d.styles)
	d.styles = append(d.styles, style)
}

// HasStyle reports whether a style with the given name is defined.
func (d *Document) HasStyle(name string) bool {
	_, ok := d.styleIdx[name]
	return ok
}

// Captions returns a copy of the caption sequence in document order.
func (d *Document) Captions() []Caption {
	out := make([]Caption, len(d.captions))
	copy(out, d.captions)
	return out
}

// Styles returns a copy of the style definitions in insertion order.
func (d *Document) Styles() []Style {
	out := make([]Style, len(d.styles))
	copy(out, d.styles)
	return out
}

// Len returns the number of captions.
func (d *Document) Len() int {
	return len(d.captions)
}

// SetText replaces the text of the caption at index.
func (d *Document) SetText(index int, text string) error {
	if index < 0 || index >= len(d.captions) {
		return fmt.Errorf(
			"index %d out of range (0-%d)",
			index,
			len(d.captions)-1,
		)
	}
	d.captions[index].Text = text
	return nil
}

// SetSource records how the caption timing was produced.
func (d *Document) SetSource(src Source) {
	d.source = src
}

func (d *Document) Source() Source {
	return d.source
}

// WordByWord splits text on whitespace and distributes the span between
// start and end uniformly across the words, wordsPerChunk words at a
// time, for a karaoke-style reading effect. The resulting segments are
// returned for the caller to feed back through AddCaption; the document
// is not mutated. Empty text or a non-positive span yields no chunks.
func WordByWord(
	start, end time.Duration,
	text string,
	wordsPerChunk int,
) []Segment {
	words := strings.Fields(text)
	if len(words) == 0 || end <= start {
		return nil
	}
	if wordsPerChunk < 1 {
		wordsPerChunk = 1
	}

	wordDuration := (end - start) / time.Duration(len(words))

	var chunks []Segment
	current := start
	for i := 0; i < len(words); i += wordsPerChunk {
		last := i + wordsPerChunk
		if last > len(words) {
			last = len(words)
		}

		chunkEnd := current + wordDuration*time.Duration(last-i)
		// Final chunk ends exactly at the caption end to absorb
		// integer division remainder.
		if last == len(words) {
			chunkEnd = end
		}

		chunks = append(chunks, Segment{
			StartTime: current,
			EndTime:   chunkEnd,
			Text:      strings.Join(words[i:last], " "),
		})

		current = chunkEnd
	}

	return chunks
}

// Render produces the complete WebVTT text: header, STYLE block when
// styles are defined, then the numbered cues. An empty document renders
// the minimal valid file "WEBVTT\n\n".
func (d *Document) Render() string {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	if len(d.styles) > 0 {
		sb.WriteString("STYLE\n")
		for _, style := range d.styles {
			sb.WriteString("::")
			sb.WriteString(style.Name)
			sb.WriteString(" {\n")
			for _, prop := range style.Properties {
				sb.WriteString(fmt.Sprintf("  %s: %s;\n", prop.Name, prop.Value))
			}
			sb.WriteString("}\n")
		}
		sb.WriteString("\n")
	}

	for i, caption := range d.captions {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatTimestamp(caption.Start),
			FormatTimestamp(caption.End)))

		if caption.Style != "" {
			sb.WriteString(fmt.Sprintf("<c.%s>%s</c>\n", caption.Style, caption.Text))
		} else {
			sb.WriteString(caption.Text)
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// Save writes the rendered document to path as UTF-8 without a byte
// order mark. I/O failures propagate to the caller.
func (d *Document) Save(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(d.Render()), 0644)
}

// CheckMonotonic verifies that captions appear in chronological order.
// AddCaption trusts caller-supplied ordering; this is the optional
// validation pass callers can run before Render.
func (d *Document) CheckMonotonic() error {
	for i := 1; i < len(d.captions); i++ {
		if d.captions[i].Start < d.captions[i-1].Start {
			return fmt.Errorf(
				"caption %d starts at %s, before caption %d at %s",
				i+1,
				FormatTimestamp(d.captions[i].Start),
				i,
				FormatTimestamp(d.captions[i-1].Start),
			)
		}
	}
	return nil
}

// Summary describes the document for status reporting.
type Summary struct {
	Captions int
	Styles   int
	Source   Source
}

func (d *Document) Summary() Summary {
	return Summary{
		Captions: len(d.captions),
		Styles:   len(d.styles),
		Source:   d.source,
	}
}

func (s Summary) String() string {
	msg := fmt.Sprintf("%d captions, %d styles", s.Captions, s.Styles)
	if s.Source == SourceFallback {
		msg += " (approximate timing)"
	}
	return msg
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
