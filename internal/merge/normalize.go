package merge

import (
	"fmt"
	"strings"

	"llmdigest/internal/models"
	"llmdigest/pkg/mdtext"
)

// Warning flags one malformed item discovered during normalization. Warnings
// never abort a merge; they surface in the run summary.
type Warning struct {
	Section     string
	Subcategory string
	Index       int // 1-based position within the parsed list
	Problem     string
}

func (w Warning) String() string {
	where := w.Section
	if w.Subcategory != "" {
		where += "/" + w.Subcategory
	}

	return fmt.Sprintf("%s item %d: %s", where, w.Index, w.Problem)
}

// auditItems collects warnings for items with missing fields, before cleanup
// repairs them. Sections with titled items warn on missing titles as well as
// missing descriptions; plain lists only on the latter.
func auditItems(section, subcategory string, items []rawItem, titled bool) []Warning {
	var warnings []Warning

	for idx, it := range items {
		hasTitle := strings.TrimSpace(it.title) != ""
		hasDesc := strings.TrimSpace(it.desc) != ""

		problem := ""
		switch {
		case titled && !hasTitle && !hasDesc:
			problem = "missing both title and description"
		case titled && !hasTitle:
			problem = fmt.Sprintf("missing title, only has description: '%s...'", descPreview(it.desc))
		case titled && !hasDesc:
			problem = fmt.Sprintf("missing description, only has title: '%s'", it.title)
		case !titled && !hasDesc:
			problem = "missing description"
		}

		if problem == "" {
			continue
		}

		warnings = append(warnings, Warning{
			Section:     section,
			Subcategory: subcategory,
			Index:       idx + 1,
			Problem:     problem,
		})
	}

	return warnings
}

// descPreview slices the first 50 runes of a description for warning text.
// The warning appends its ellipsis whether or not anything was cut.
func descPreview(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		r = r[:50]
	}

	return string(r)
}

// cleanItems strips link markup from both fields, backfills the reference
// link from whichever field carried one, promotes a lone title into the
// description and drops items with no content left. Every surviving item has
// a non-empty description.
func cleanItems(items []rawItem) []models.Item {
	cleaned := make([]models.Item, 0, len(items))

	for _, it := range items {
		link := it.link
		if link == "" {
			link = mdtext.LinkTarget(it.title)
		}
		if link == "" {
			link = mdtext.LinkTarget(it.desc)
		}

		title := strings.TrimSpace(mdtext.StripLinks(it.title))
		desc := strings.TrimSpace(mdtext.StripLinks(it.desc))

		if title == "" && desc == "" {
			continue
		}

		if desc == "" {
			desc = title
			title = ""
		}

		cleaned = append(cleaned, models.Item{
			Title:         title,
			Description:   desc,
			ReferenceLink: link,
		})
	}

	return cleaned
}
