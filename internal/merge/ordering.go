package merge

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"llmdigest/internal/models"
)

// fileDatePattern matches document names like "7-6.md" or "12-25.md".
var fileDatePattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})\.md`)

// sentinelDate sorts documents with unparseable names after every real date.
var sentinelDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// OrderDocuments assigns each document its inferred date and returns a copy
// sorted by date ascending. Documents whose names do not parse, or whose
// dates are not valid calendar dates, receive a maximal sentinel date and
// sort to the end. The sort is stable, so documents sharing a date keep
// their input order.
func OrderDocuments(docs []models.Document, r models.DateRange) []models.Document {
	ordered := make([]models.Document, len(docs))
	copy(ordered, docs)

	for i := range ordered {
		ordered[i].Date = inferDate(ordered[i].Name, r)
	}

	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Date.Before(ordered[b].Date)
	})

	return ordered
}

// inferDate resolves a document name to a concrete date. When the batch range
// crosses a year boundary, months before the range's start month belong to
// the following year.
func inferDate(name string, r models.DateRange) time.Time {
	m := fileDatePattern.FindStringSubmatch(name)
	if m == nil {
		return sentinelDate
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	year := r.Year
	if r.HasRange() && month < r.Start.Month {
		year++
	}

	return makeDate(year, month, day)
}

// makeDate builds a calendar-validated date; out-of-range values yield the
// sentinel instead of time.Date's silent normalization.
func makeDate(year, month, day int) time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return sentinelDate
	}

	return d
}

// IsSentinelDate reports whether a document date is the unparseable-name
// sentinel rather than a real inferred date.
func IsSentinelDate(d time.Time) bool {
	return d.Equal(sentinelDate)
}
