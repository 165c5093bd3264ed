package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleVTT = `WEBVTT

STYLE
::highlight {
  color: #FFD700;
}

NOTE generated sample

1
00:00:00.000 --> 00:00:02.000
<c.highlight>Hello world</c>

2
00:00:02.000 --> 00:00:05.000
Second caption
`

const sampleSRT = `1
00:00:00,000 --> 00:00:02,000
Hello world

2
00:00:02,000 --> 00:00:05,000
Second caption
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestOpenVTT(t *testing.T) {
	path := writeTempFile(t, "sample.vtt", sampleVTT)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Format() != FormatVTT {
		t.Errorf("format = %q, want %q", f.Format(), FormatVTT)
	}

	doc := f.Document()
	captions := doc.Captions()
	if len(captions) != 2 {
		t.Fatalf("got %d captions, want 2", len(captions))
	}

	if captions[0].Text != "Hello world" {
		t.Errorf("first caption text = %q", captions[0].Text)
	}
	if captions[0].Style != "highlight" {
		t.Errorf("first caption style = %q, want highlight", captions[0].Style)
	}
	if captions[0].Start != 0 || captions[0].End != 2*time.Second {
		t.Errorf("first caption timing = %v --> %v", captions[0].Start, captions[0].End)
	}
	if captions[1].Style != "" {
		t.Errorf("second caption style = %q, want unstyled", captions[1].Style)
	}

	if !doc.HasStyle("highlight") {
		t.Error("highlight style not parsed from STYLE block")
	}
	styles := doc.Styles()
	if len(styles) != 1 || styles[0].Properties[0] != (Property{Name: "color", Value: "#FFD700"}) {
		t.Errorf("styles = %+v", styles)
	}
}

func TestOpenSRT(t *testing.T) {
	path := writeTempFile(t, "sample.srt", sampleSRT)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Format() != FormatSRT {
		t.Errorf("format = %q, want %q", f.Format(), FormatSRT)
	}

	captions := f.Document().Captions()
	if len(captions) != 2 {
		t.Fatalf("got %d captions, want 2", len(captions))
	}
	if captions[1].Text != "Second caption" {
		t.Errorf("second caption text = %q", captions[1].Text)
	}
	if captions[1].End != 5*time.Second {
		t.Errorf("second caption end = %v, want 5s", captions[1].End)
	}
}

func TestOpenByteOrderMark(t *testing.T) {
	vttPath := writeTempFile(t, "bom.vtt", "\uFEFF"+sampleVTT)
	f, err := Open(vttPath)
	if err != nil {
		t.Fatalf("Open BOM-prefixed VTT failed: %v", err)
	}
	if got := f.Document().Len(); got != 2 {
		t.Errorf("got %d captions from BOM-prefixed VTT, want 2", got)
	}
	if !f.Document().HasStyle("highlight") {
		t.Error("STYLE block lost from BOM-prefixed VTT")
	}

	srtPath := writeTempFile(t, "bom.srt", "\uFEFF"+sampleSRT)
	f, err = Open(srtPath)
	if err != nil {
		t.Fatalf("Open BOM-prefixed SRT failed: %v", err)
	}
	captions := f.Document().Captions()
	if len(captions) != 2 {
		t.Fatalf("got %d captions from BOM-prefixed SRT, want 2", len(captions))
	}
	if captions[0].Text != "Hello world" {
		t.Errorf("first caption text = %q", captions[0].Text)
	}
}

func TestOpenUnsupportedExtension(t *testing.T) {
	if _, err := Open("subtitles.txt"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestVTTRoundTrip(t *testing.T) {
	path := writeTempFile(t, "in.vtt", sampleVTT)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := f.SetText(1, "Edited caption"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.vtt")
	if err := f.Write(outPath); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	reopened, err := Open(outPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	captions := reopened.Document().Captions()
	if len(captions) != 2 {
		t.Fatalf("got %d captions after round trip, want 2", len(captions))
	}
	if captions[1].Text != "Edited caption" {
		t.Errorf("edited caption text = %q", captions[1].Text)
	}
	if captions[0].Style != "highlight" {
		t.Errorf("style lost in round trip: %q", captions[0].Style)
	}
	if !reopened.Document().HasStyle("highlight") {
		t.Error("STYLE block lost in round trip")
	}
}

func TestSRTRoundTrip(t *testing.T) {
	path := writeTempFile(t, "in.srt", sampleSRT)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.srt")
	if err := f.Write(outPath); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(data), "00:00:02,000 --> 00:00:05,000") {
		t.Errorf("SRT output missing comma timestamps:\n%s", data)
	}

	reopened, err := Open(outPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Document().Len() != 2 {
		t.Errorf("got %d captions after round trip, want 2", reopened.Document().Len())
	}
}

func TestGetFormatFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"video.srt", FormatSRT},
		{"video.vtt", FormatVTT},
		{"video.VTT", FormatVTT},
		{"video.unknown", FormatVTT},
	}

	for _, tt := range tests {
		if got := GetFormatFromExtension(tt.path); got != tt.want {
			t.Errorf("GetFormatFromExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
