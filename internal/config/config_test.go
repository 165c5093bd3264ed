package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "nope", "config.json"))

	if got := store.Get("default_styles.highlight_color", ""); got != "#FFD700" {
		t.Errorf("highlight_color = %q, want #FFD700", got)
	}
	if got := store.Get("app.name", ""); got != "CaptionCraft" {
		t.Errorf("app.name = %q, want CaptionCraft", got)
	}
	if got := store.Get("ui.theme", ""); got != "dark" {
		t.Errorf("ui.theme = %q, want dark", got)
	}
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	store := Load(path)

	if got := store.Get("default_styles.text_color", ""); got != "#FFFFFF" {
		t.Errorf("text_color = %q, want #FFFFFF", got)
	}
}

func TestLoadToleratesBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := append(
		[]byte{0xEF, 0xBB, 0xBF},
		[]byte(`{"ui": {"theme": "light"}}`)...,
	)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	store := Load(path)

	if got := store.Get("ui.theme", ""); got != "light" {
		t.Errorf("ui.theme = %q, want light", got)
	}
}

func TestGetFallbackChain(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "config.json"))

	// unknown key with no default falls through to the supplied fallback
	if got := store.Get("no.such.key", "fallback"); got != "fallback" {
		t.Errorf("unknown key = %q, want fallback", got)
	}
}

func TestSetSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	store := Load(path)
	if err := store.Set("default_styles.font_size", "32px"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := Load(path)
	if got := reloaded.Get("default_styles.font_size", ""); got != "32px" {
		t.Errorf("font_size after reload = %q, want 32px", got)
	}
	// other defaults survive the round trip
	if got := reloaded.Get("default_styles.font_family", ""); got != "Arial" {
		t.Errorf("font_family after reload = %q, want Arial", got)
	}
}

func TestRecentFiles(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "config.json"))

	if files := store.RecentFiles(); len(files) != 0 {
		t.Fatalf("new store has %d recent files", len(files))
	}

	for _, name := range []string{"a.vtt", "b.vtt", "c.vtt"} {
		if err := store.AddRecentFile(name); err != nil {
			t.Fatalf("AddRecentFile failed: %v", err)
		}
	}

	files := store.RecentFiles()
	if len(files) != 3 {
		t.Fatalf("got %d recent files, want 3", len(files))
	}
	if files[0] != "c.vtt" {
		t.Errorf("newest file is %q, want c.vtt first", files[0])
	}
}

func TestRecentFilesDeduplicates(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "config.json"))

	_ = store.AddRecentFile("a.vtt")
	_ = store.AddRecentFile("b.vtt")
	_ = store.AddRecentFile("a.vtt")

	files := store.RecentFiles()
	if len(files) != 2 {
		t.Fatalf("got %d recent files, want 2", len(files))
	}
	if files[0] != "a.vtt" || files[1] != "b.vtt" {
		t.Errorf("recent files = %v", files)
	}
}

func TestRecentFilesCapped(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "config.json"))

	for i := 0; i < maxRecentFiles+5; i++ {
		_ = store.AddRecentFile(filepath.Join("dir", "file", string(rune('a'+i))))
	}

	if files := store.RecentFiles(); len(files) != maxRecentFiles {
		t.Errorf("got %d recent files, want cap of %d", len(files), maxRecentFiles)
	}
}

func TestDefaultsProvider(t *testing.T) {
	var p Provider = Defaults{}

	if got := p.Get("default_styles.background_color", ""); got != "#000000" {
		t.Errorf("background_color = %q, want #000000", got)
	}
	if got := p.Get("missing", "x"); got != "x" {
		t.Errorf("missing key = %q, want fallback", got)
	}
}
