package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// Content validation errors.
var (
	ErrContentTooShort = errors.New("content too short")
	ErrErrorPage       = errors.New("content looks like an error page")
)

// ValidateIssue rejects bodies that cannot be a real newsletter issue:
// shorter than minLen after trimming, carrying a "404" or "not found"
// marker anywhere, or mentioning an error within the first 200 bytes.
// The reader proxy reports missing issues as a 200 page, so this is the
// only signal that a day is unavailable.
func ValidateIssue(body string, minLen int) error {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) < minLen {
		return fmt.Errorf("%w: %d bytes", ErrContentTooShort, len(trimmed))
	}

	lower := strings.ToLower(body)
	if strings.Contains(lower, "404") {
		return fmt.Errorf("%w: contains 404", ErrErrorPage)
	}

	if strings.Contains(lower, "not found") {
		return fmt.Errorf("%w: contains 'not found'", ErrErrorPage)
	}

	head := lower
	if len(head) > 200 {
		head = head[:200]
	}

	if strings.Contains(head, "error") {
		return fmt.Errorf("%w: error marker near the top", ErrErrorPage)
	}

	return nil
}
