package models

import "time"

// Document represents one daily newsletter file queued for extraction.
type Document struct {
	Name  string    // file name, expected to encode "month-day"
	Title string    // reader preamble title, may be empty
	Date  time.Time // inferred publication date; zero until ordering assigns one
	Raw   string    // full markdown content
}

// DateRange is the inferred start/end window of a batch of documents.
// Start and End are nil when the batch identifier encodes no range.
type DateRange struct {
	Start *BatchDate
	End   *BatchDate
	Year  int // reference year used for date inference
}

// BatchDate is a calendar date candidate that has not been validated yet.
// Ordering validates it when constructing real dates.
type BatchDate struct {
	Year  int
	Month int
	Day   int
}

// HasRange reports whether the batch identifier carried a parseable range.
func (r DateRange) HasRange() bool {
	return r.Start != nil && r.End != nil
}
