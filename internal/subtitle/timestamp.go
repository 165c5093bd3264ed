package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTimestamp reports a timestamp string that does not follow
// the HH:MM:SS.mmm layout.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// FormatTimestamp renders a duration as a WebVTT timestamp,
// HH:MM:SS.mmm with zero padding.
func FormatTimestamp(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// ParseTimestamp parses a WebVTT or SubRip timestamp. Both "." and ","
// are accepted as the fractional separator. The string must carry
// exactly three colon-separated fields; anything else returns
// ErrMalformedTimestamp.
func ParseTimestamp(s string) (time.Duration, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	parts := strings.Split(normalized, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	secondsPart := parts[2]
	millis := 0
	if dot := strings.Index(secondsPart, "."); dot >= 0 {
		fraction := secondsPart[dot+1:]
		secondsPart = secondsPart[:dot]
		if fraction != "" {
			// pad or truncate to millisecond precision
			if len(fraction) > 3 {
				fraction = fraction[:3]
			}
			for len(fraction) < 3 {
				fraction += "0"
			}
			millis, err = strconv.Atoi(fraction)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
			}
		}
	}

	seconds, err := strconv.Atoi(secondsPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// ParseTimestampOrDefault parses a timestamp, substituting a fixed
// 1-second duration for malformed input. This preserves the lenient
// behavior some callers depend on; use ParseTimestamp to observe the
// failure instead.
func ParseTimestampOrDefault(s string) time.Duration {
	d, err := ParseTimestamp(s)
	if err != nil {
		return time.Second
	}
	return d
}
