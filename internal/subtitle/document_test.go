package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRenderEmptyDocument(t *testing.T) {
	doc := NewDocument()
	if got := doc.Render(); got != "WEBVTT\n\n" {
		t.Errorf("empty document rendered %q, want %q", got, "WEBVTT\n\n")
	}
}

func TestRenderTwoCaptions(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(0, 2*time.Second, "Hello world", "")
	doc.AddCaption(2*time.Second, 5*time.Second, "Second caption", "")

	want := "WEBVTT\n\n" +
		"1\n00:00:00.000 --> 00:00:02.000\nHello world\n\n" +
		"2\n00:00:02.000 --> 00:00:05.000\nSecond caption\n\n"

	if got := doc.Render(); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestRenderStyledCaption(t *testing.T) {
	doc := NewDocument()
	doc.SetStyle("highlight", []Property{
		{Name: "color", Value: "#FFD700"},
	})
	doc.AddCaption(0, 2*time.Second, "Hello", "highlight")

	got := doc.Render()

	if !strings.Contains(got, "STYLE\n::highlight {\n  color: #FFD700;\n}\n\n") {
		t.Errorf("rendered output missing style block:\n%s", got)
	}
	if !strings.Contains(got, "<c.highlight>Hello</c>") {
		t.Errorf("rendered output missing styled cue text:\n%s", got)
	}
}

func TestAddCaptionSkipsEmptyText(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(0, time.Second, "", "")
	doc.AddCaption(time.Second, 2*time.Second, "   ", "")

	if doc.Len() != 0 {
		t.Errorf("document has %d captions, want 0", doc.Len())
	}
}

func TestAddCaptionClampsEnd(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(5*time.Second, 4*time.Second, "backwards", "")

	captions := doc.Captions()
	if len(captions) != 1 {
		t.Fatalf("got %d captions, want 1", len(captions))
	}
	want := 5*time.Second + time.Millisecond
	if captions[0].End != want {
		t.Errorf("end clamped to %v, want %v", captions[0].End, want)
	}
}

func TestSetStyleOverwritesInPlace(t *testing.T) {
	doc := NewDocument()
	doc.SetStyle("normal", []Property{{Name: "color", Value: "#FFFFFF"}})
	doc.SetStyle("highlight", []Property{{Name: "color", Value: "#FFD700"}})
	doc.SetStyle("normal", []Property{{Name: "color", Value: "#CCCCCC"}})

	styles := doc.Styles()
	if len(styles) != 2 {
		t.Fatalf("got %d styles, want 2", len(styles))
	}
	if styles[0].Name != "normal" {
		t.Errorf("first style is %q, want insertion position preserved", styles[0].Name)
	}
	if styles[0].Properties[0].Value != "#CCCCCC" {
		t.Errorf("overwritten style value = %q, want #CCCCCC", styles[0].Properties[0].Value)
	}
}

func TestWordByWord(t *testing.T) {
	chunks := WordByWord(0, 10*time.Second, "a b c d e", 1)

	if len(chunks) != 5 {
		t.Fatalf("got %d chunks, want 5", len(chunks))
	}

	var current time.Duration
	for i, chunk := range chunks {
		if chunk.StartTime != current {
			t.Errorf("chunk %d starts at %v, want %v", i, chunk.StartTime, current)
		}
		if chunk.EndTime-chunk.StartTime != 2*time.Second {
			t.Errorf(
				"chunk %d spans %v, want 2s",
				i,
				chunk.EndTime-chunk.StartTime,
			)
		}
		current = chunk.EndTime
	}

	if current != 10*time.Second {
		t.Errorf("chunks end at %v, want exactly 10s", current)
	}
}

func TestWordByWordGrouping(t *testing.T) {
	chunks := WordByWord(0, 6*time.Second, "one two three four five six", 2)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if chunks[0].Text != "one two" {
		t.Errorf("first chunk text = %q", chunks[0].Text)
	}
	if chunks[2].EndTime != 6*time.Second {
		t.Errorf("last chunk ends at %v, want 6s", chunks[2].EndTime)
	}
}

func TestWordByWordEdgeCases(t *testing.T) {
	if got := WordByWord(0, time.Second, "", 1); got != nil {
		t.Errorf("empty text produced %d chunks", len(got))
	}
	if got := WordByWord(2*time.Second, 2*time.Second, "word", 1); got != nil {
		t.Errorf("zero span produced %d chunks", len(got))
	}
	if got := WordByWord(3*time.Second, time.Second, "word", 1); got != nil {
		t.Errorf("negative span produced %d chunks", len(got))
	}
}

func TestCheckMonotonic(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(0, time.Second, "first", "")
	doc.AddCaption(time.Second, 2*time.Second, "second", "")

	if err := doc.CheckMonotonic(); err != nil {
		t.Errorf("ordered document failed check: %v", err)
	}

	doc.AddCaption(500*time.Millisecond, 3*time.Second, "out of order", "")
	if err := doc.CheckMonotonic(); err == nil {
		t.Error("out-of-order document passed check")
	}
}

func TestSetText(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(0, time.Second, "original", "")

	if err := doc.SetText(0, "replaced"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if got := doc.Captions()[0].Text; got != "replaced" {
		t.Errorf("caption text = %q, want replaced", got)
	}

	if err := doc.SetText(5, "oops"); err == nil {
		t.Error("SetText with out-of-range index should fail")
	}
}

func TestSummaryString(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(0, time.Second, "one", "")
	doc.SetStyle("normal", []Property{{Name: "color", Value: "#FFFFFF"}})

	if got := doc.Summary().String(); got != "1 captions, 1 styles" {
		t.Errorf("summary = %q", got)
	}

	doc.SetSource(SourceFallback)
	if got := doc.Summary().String(); got != "1 captions, 1 styles (approximate timing)" {
		t.Errorf("fallback summary = %q", got)
	}
}

func TestSaveWritesUTF8WithoutBOM(t *testing.T) {
	doc := NewDocument()
	doc.AddCaption(0, time.Second, "héllo wörld", "")

	path := filepath.Join(t.TempDir(), "out", "test.vtt")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if strings.HasPrefix(string(data), "\xEF\xBB\xBF") {
		t.Error("saved file starts with a BOM")
	}
	if !strings.HasPrefix(string(data), "WEBVTT\n\n") {
		t.Errorf("saved file missing header: %q", string(data)[:20])
	}
}
