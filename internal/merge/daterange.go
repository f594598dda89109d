// Package merge implements the extraction engine: it orders a batch of daily
// newsletter documents, splits each into canonical sections, parses the
// sections into items, and aggregates everything into one digest.
package merge

import (
	"regexp"
	"strconv"
	"time"

	"llmdigest/internal/models"
)

// batchRangePattern matches batch identifiers like "7.6-7.12" or "12.25-1.5".
var batchRangePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})-(\d{1,2})\.(\d{1,2})`)

// ResolveRange parses a batch identifier into its date range using the
// current year as the reference year.
func ResolveRange(batchID string) models.DateRange {
	return ResolveRangeAt(batchID, time.Now().Year())
}

// ResolveRangeAt parses a batch identifier into its date range against the
// given reference year. When the end month precedes the start month, the end
// date is pushed into the following year (a batch is assumed to cross at most
// one year boundary). Identifiers that do not match the range pattern yield a
// range-less result; calendar validity is not checked here, that happens when
// the ordering builds real dates.
func ResolveRangeAt(batchID string, year int) models.DateRange {
	m := batchRangePattern.FindStringSubmatch(batchID)
	if m == nil {
		return models.DateRange{Year: year}
	}

	startMonth, _ := strconv.Atoi(m[1])
	startDay, _ := strconv.Atoi(m[2])
	endMonth, _ := strconv.Atoi(m[3])
	endDay, _ := strconv.Atoi(m[4])

	endYear := year
	if endMonth < startMonth {
		endYear = year + 1
	}

	return models.DateRange{
		Start: &models.BatchDate{Year: year, Month: startMonth, Day: startDay},
		End:   &models.BatchDate{Year: endYear, Month: endMonth, Day: endDay},
		Year:  year,
	}
}
