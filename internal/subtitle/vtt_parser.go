package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// VTTFile is a parsed WebVTT file. Styles defined in STYLE blocks and
// <c.name> cue wrappers survive the round trip through the document.
type VTTFile struct {
	doc *Document
}

var (
	cueTimingRegex = regexp.MustCompile(
		`^\s*([\d:.,]+)\s*-->\s*([\d:.,]+)`,
	)
	styledCueRegex = regexp.MustCompile(
		`^<c\.([A-Za-z0-9_-]+)>(.*)</c>$`,
	)
	styleBlockOpenRegex = regexp.MustCompile(
		`^::([A-Za-z0-9_-]+)\s*\{`,
	)
	stylePropertyRegex = regexp.MustCompile(
		`^\s*([A-Za-z-]+)\s*:\s*(.+?)\s*;?\s*$`,
	)
)

func parseVTTFile(path string) (*VTTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	doc := NewDocument()
	scanner := bufio.NewScanner(file)

	var (
		inCue     bool
		cueStart  time.Duration
		cueEnd    time.Duration
		textLines []string
		lineNum   int
	)

	flush := func() {
		if !inCue || len(textLines) == 0 {
			inCue = false
			textLines = nil
			return
		}
		text := strings.Join(textLines, "\n")
		style := ""
		if m := styledCueRegex.FindStringSubmatch(text); m != nil {
			style = m[1]
			text = m[2]
		}
		doc.AddCaption(cueStart, cueEnd, text, style)
		inCue = false
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "WEBVTT") && lineNum == 1 {
			continue
		}

		if strings.HasPrefix(trimmed, "NOTE") && !inCue {
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "STYLE" && !inCue {
			if err := parseStyleBlock(scanner, &lineNum, doc); err != nil {
				return nil, err
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if m := cueTimingRegex.FindStringSubmatch(line); m != nil {
			flush()

			start, err := parseCueTimestamp(m[1])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid start timestamp at line %d: %w",
					lineNum,
					err,
				)
			}
			end, err := parseCueTimestamp(m[2])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid end timestamp at line %d: %w",
					lineNum,
					err,
				)
			}

			inCue = true
			cueStart = start
			cueEnd = end
			continue
		}

		// cue identifier lines before the timing line are ignored
		if inCue {
			textLines = append(textLines, line)
		}
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}

	return &VTTFile{doc: doc}, nil
}

// parseStyleBlock consumes a STYLE section up to its terminating blank
// line, registering each ::name { ... } definition on the document.
func parseStyleBlock(
	scanner *bufio.Scanner,
	lineNum *int,
	doc *Document,
) error {
	var (
		name  string
		props []Property
	)

	for scanner.Scan() {
		*lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			break
		}

		if m := styleBlockOpenRegex.FindStringSubmatch(line); m != nil {
			name = m[1]
			props = nil
			continue
		}

		if line == "}" {
			if name != "" {
				doc.SetStyle(name, props)
			}
			name = ""
			continue
		}

		if name == "" {
			continue
		}

		if m := stylePropertyRegex.FindStringSubmatch(line); m != nil {
			props = append(props, Property{Name: m[1], Value: m[2]})
		}
	}

	return nil
}

// parseCueTimestamp accepts the full HH:MM:SS.mmm form and the short
// MM:SS.mmm form WebVTT also allows.
func parseCueTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 {
		s = "00:" + s
	}
	return ParseTimestamp(s)
}

func (f *VTTFile) Format() Format {
	return FormatVTT
}

func (f *VTTFile) Document() *Document {
	return f.doc
}

func (f *VTTFile) SetText(index int, text string) error {
	return f.doc.SetText(index, text)
}

func (f *VTTFile) Write(path string) error {
	return f.doc.Save(path)
}
