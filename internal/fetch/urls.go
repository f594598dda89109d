package fetch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth indicates a month argument that is neither a valid name
// nor a number in 1-12.
var ErrInvalidMonth = errors.New("invalid month")

// ArchiveURL returns the newsletter archive page for one day. Issue slugs
// use the lowercase English month name and a zero-padded day.
func ArchiveURL(base string, day time.Time) string {
	return fmt.Sprintf("%s/llm-daily-%s-%02d-%d/",
		strings.TrimRight(base, "/"), monthName(day.Month()), day.Day(), day.Year())
}

// ReaderURL wraps an archive URL with the markdown reader proxy. An empty
// prefix means a direct fetch.
func ReaderURL(prefix, url string) string {
	if prefix == "" {
		return url
	}

	return prefix + url
}

// FileName returns the batch-relative name for one day's markdown,
// "M-D.md" with no zero padding.
func FileName(day time.Time) string {
	return fmt.Sprintf("%d-%d.md", int(day.Month()), day.Day())
}

// BatchDirName returns the default batch directory name for a window
// start, e.g. "july-06".
func BatchDirName(start time.Time) string {
	return fmt.Sprintf("%s-%02d", monthName(start.Month()), start.Day())
}

// ParseMonth accepts a month number ("7"), a full English name ("july"),
// or a three-letter abbreviation ("jul"), case-insensitive.
func ParseMonth(input string) (time.Month, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: %d (must be 1-12)", ErrInvalidMonth, n)
		}

		return time.Month(n), nil
	}

	name := strings.ToLower(input)
	for m := time.January; m <= time.December; m++ {
		full := monthName(m)
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, input)
}

func monthName(m time.Month) string {
	return strings.ToLower(m.String())
}
