package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

type SRTFile struct {
	doc *Document
}

var srtTimingRegex = regexp.MustCompile(
	`^\s*([\d:,]+)\s*-->\s*([\d:,]+)`,
)

func parseSRTFile(path string) (*SRTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	doc := NewDocument()
	scanner := bufio.NewScanner(file)

	type cueTiming struct {
		start, end string
	}

	var (
		inCue     bool
		haveTimes bool
		current   cueTiming
		textLines []string
	)
	lineNum := 0

	flush := func() {
		if haveTimes && len(textLines) > 0 {
			start := ParseTimestampOrDefault(current.start)
			end := ParseTimestampOrDefault(current.end)
			doc.AddCaption(start, end, strings.Join(textLines, "\n"), "")
		}
		inCue = false
		haveTimes = false
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}

		if !inCue {
			if _, err := strconv.Atoi(trimmed); err == nil {
				inCue = true
				continue
			}
		}

		if !haveTimes {
			if m := srtTimingRegex.FindStringSubmatch(line); m != nil {
				if _, err := ParseTimestamp(m[1]); err != nil {
					return nil, fmt.Errorf(
						"invalid start timestamp at line %d: %w",
						lineNum,
						err,
					)
				}
				if _, err := ParseTimestamp(m[2]); err != nil {
					return nil, fmt.Errorf(
						"invalid end timestamp at line %d: %w",
						lineNum,
						err,
					)
				}
				current = cueTiming{start: m[1], end: m[2]}
				inCue = true
				haveTimes = true
				continue
			}
		}

		if inCue {
			textLines = append(textLines, line)
		}
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	return &SRTFile{doc: doc}, nil
}

func (f *SRTFile) Format() Format {
	return FormatSRT
}

func (f *SRTFile) Document() *Document {
	return f.doc
}

func (f *SRTFile) SetText(index int, text string) error {
	return f.doc.SetText(index, text)
}

func (f *SRTFile) Write(path string) error {
	writer, err := NewWriter(FormatSRT)
	if err != nil {
		return err
	}
	return writer.Write(f.doc, path)
}
