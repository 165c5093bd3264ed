package translate

import (
	"strings"
	"testing"
)

func TestExtractResults(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Result
		wantErr bool
	}{
		{
			name:  "bare array",
			input: `[{"index": 0, "text": "Hola"}, {"index": 1, "text": "Mundo"}]`,
			want: []Result{
				{Index: 0, Text: "Hola"},
				{Index: 1, Text: "Mundo"},
			},
		},
		{
			name:  "array with leading prose",
			input: "Here is the translation:\n[{\"index\": 0, \"text\": \"Hola\"}]",
			want:  []Result{{Index: 0, Text: "Hola"}},
		},
		{
			name:  "results wrapper object",
			input: `{"results": [{"index": 0, "text": "Hola"}]}`,
			want:  []Result{{Index: 0, Text: "Hola"}},
		},
		{
			name:  "translations wrapper object",
			input: `{"translations": [{"index": 0, "text": "Hola"}]}`,
			want:  []Result{{Index: 0, Text: "Hola"}},
		},
		{
			name:  "unknown wrapper key",
			input: `{"output": [{"index": 0, "text": "Hola"}]}`,
			want:  []Result{{Index: 0, Text: "Hola"}},
		},
		{
			name:  "invalid escape in text",
			input: `[{"index": 0, "text": "line one\Nline two"}]`,
			want:  []Result{{Index: 0, Text: `line one\Nline two`}},
		},
		{
			name:    "no JSON at all",
			input:   "sorry, I cannot translate that",
			wantErr: true,
		},
		{
			name:    "empty results only",
			input:   `[{"index": 0, "text": ""}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractResults(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("extractResults failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("result %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced json block",
			input: "```json\n[{\"index\": 0}]\n```",
			want:  `[{"index": 0}]`,
		},
		{
			name:  "plain fence",
			input: "```\n[1, 2]\n```",
			want:  `[1, 2]`,
		},
		{
			name:  "no fences",
			input: `  [1, 2]  `,
			want:  `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFixInvalidEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`valid \n escape`, `valid \n escape`},
		{`bad \N escape`, `bad \\N escape`},
		{`unicode é kept`, `unicode é kept`},
		{`trailing backslash \`, `trailing backslash \`},
	}

	for _, tt := range tests {
		if got := fixInvalidEscapes(tt.input); got != tt.want {
			t.Errorf("fixInvalidEscapes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseResultsCountMismatch(t *testing.T) {
	_, err := parseResults(`[{"index": 0, "text": "Hola"}]`, 2)
	if err == nil {
		t.Fatal("expected error for count mismatch")
	}
	if !strings.Contains(err.Error(), "expected 2 results") {
		t.Errorf("unexpected error: %v", err)
	}
}
