// Package mdtext provides helpers for markdown-like text lines.
package mdtext

import (
	"regexp"
	"strings"
)

// linkPattern matches one inline markdown link: [text](target).
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// FirstLink returns the visible text and target of the first inline link in s.
func FirstLink(s string) (text, target string, ok bool) {
	m := linkPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}

	return m[1], m[2], true
}

// LinkTarget returns the target of the first inline link in s, or "".
func LinkTarget(s string) string {
	_, target, ok := FirstLink(s)
	if !ok {
		return ""
	}

	return target
}

// StripLinks replaces every inline link in s with its visible text.
func StripLinks(s string) string {
	return linkPattern.ReplaceAllString(s, "$1")
}

// DashLen returns the dash count when the trimmed line consists solely of
// dashes, and 0 otherwise.
func DashLen(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	for _, r := range s {
		if r != '-' {
			return 0
		}
	}

	return len(s)
}

// IsDashLine reports whether the trimmed line consists solely of dashes.
func IsDashLine(s string) bool {
	return DashLen(s) > 0
}

// IsDelimiterLine reports whether the line consists solely of asterisks and
// spaces, covering separator forms like "* * *".
func IsDelimiterLine(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r != '*' && r != ' ' {
			return false
		}
	}

	return true
}
