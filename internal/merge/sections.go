package merge

import (
	"regexp"
	"strings"

	"llmdigest/internal/models"
	"llmdigest/pkg/mdtext"
)

// terminalMarker ends section scanning for the rest of the document.
const terminalMarker = "LOOKING AHEAD"

// titlePattern pulls the reader preamble title out of a raw document.
var titlePattern = regexp.MustCompile(`Title: (.+)`)

// DocumentTitle returns the preamble title of a raw document, or "Unknown".
func DocumentTitle(raw string) string {
	m := titlePattern.FindStringSubmatch(raw)
	if m == nil {
		return "Unknown"
	}

	return m[1]
}

// SplitSections slices one document into the five canonical sections.
//
// A line whose trimmed form equals a section name opens that section, and a
// dash-only decoration line directly underneath is dropped. A line starting
// with the terminal marker stops scanning entirely. Delimiter lines made of
// asterisks stay in the section buffer, the item parser gives them meaning.
// Every section name is present in the result; sections that never appear
// map to the empty string.
func SplitSections(raw string) map[string]string {
	sections := make(map[string]string, len(models.SectionNames))
	for _, name := range models.SectionNames {
		sections[name] = ""
	}

	lines := strings.Split(raw, "\n")

	current := ""
	var buf []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
	}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if _, ok := sections[trimmed]; ok {
			flush()
			current = trimmed
			buf = nil

			// Drop the dash decoration under the section header.
			if i+1 < len(lines) && mdtext.IsDashLine(lines[i+1]) {
				i++
			}

			continue
		}

		if strings.HasPrefix(trimmed, terminalMarker) {
			flush()
			return sections
		}

		if current != "" {
			buf = append(buf, lines[i])
		}
	}

	flush()

	return sections
}
