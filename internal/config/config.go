package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Provider is the read-only settings capability injected into
// components that need configured values. Keys use dot notation,
// e.g. "default_styles.highlight_color".
type Provider interface {
	Get(key, fallback string) string
}

// Hard-coded style defaults. The core must function with these when no
// settings store is available.
var defaultValues = map[string]string{
	"default_styles.highlight_color":  "#FFD700",
	"default_styles.text_color":       "#FFFFFF",
	"default_styles.font_family":      "Arial",
	"default_styles.font_size":        "24px",
	"default_styles.background_color": "#000000",
}

// Defaults serves the hard-coded defaults without any backing file.
type Defaults struct{}

func (Defaults) Get(key, fallback string) string {
	if v, ok := defaultValues[key]; ok {
		return v
	}
	return fallback
}

const maxRecentFiles = 10

// Store is a JSON-file settings store with dot-notation access.
type Store struct {
	path string
	data []byte
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the settings file at path. A missing, unreadable, or
// corrupt file degrades to the default configuration in memory rather
// than failing; the store stays usable either way.
func Load(path string) *Store {
	store := &Store{path: path, data: defaultJSON()}

	raw, err := os.ReadFile(path)
	if err != nil {
		return store
	}

	// Windows editors tend to prepend a UTF-8 BOM
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !gjson.ValidBytes(raw) {
		return store
	}

	store.data = raw
	return store
}

// Get returns the string value at key, falling back first to the
// hard-coded defaults and then to the supplied fallback.
func (s *Store) Get(key, fallback string) string {
	if result := gjson.GetBytes(s.data, key); result.Exists() {
		return result.String()
	}
	if v, ok := defaultValues[key]; ok {
		return v
	}
	return fallback
}

// Set writes a value at the dot-notation key, in memory only; call
// Save to persist.
func (s *Store) Set(key string, value interface{}) error {
	data, err := sjson.SetBytes(s.data, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	s.data = data
	return nil
}

// Save persists the store to its backing file as UTF-8 without a BOM.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("no settings path configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return os.WriteFile(s.path, s.data, 0644)
}

// RecentFiles returns the tracked recently-opened media files, newest
// first.
func (s *Store) RecentFiles() []string {
	var files []string
	for _, entry := range gjson.GetBytes(s.data, "recent_files").Array() {
		files = append(files, entry.String())
	}
	return files
}

// AddRecentFile moves path to the front of the recent-files list,
// deduplicating and capping the list length.
func (s *Store) AddRecentFile(path string) error {
	files := []string{path}
	for _, existing := range s.RecentFiles() {
		if existing == path {
			continue
		}
		files = append(files, existing)
		if len(files) == maxRecentFiles {
			break
		}
	}
	return s.Set("recent_files", files)
}

func defaultJSON() []byte {
	data := []byte(`{}`)
	for key, value := range map[string]interface{}{
		"app.name":     "CaptionCraft",
		"app.version":  "1.0.0",
		"ui.theme":     "dark",
		"ui.language":  "en",
		"recent_files": []string{},
	} {
		data, _ = sjson.SetBytes(data, key, value)
	}
	for key, value := range defaultValues {
		data, _ = sjson.SetBytes(data, key, value)
	}
	return data
}
