package report

import (
	"fmt"
	"strings"

	"llmdigest/internal/merge"
	"llmdigest/internal/models"
)

// Summary formats the post-merge run summary: the batch the date range was
// resolved from, the merged files with their titles and the per-section item
// counts.
func Summary(batchID string, ex *merge.Extraction) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Processed date range from folder: %s\n", batchID)
	sb.WriteString("File summary:\n")

	for _, doc := range ex.Documents {
		fmt.Fprintf(&sb, "  %s: %s\n", doc.Name, doc.Title)
	}

	sb.WriteString("\nSection item counts:\n")

	for _, section := range models.SectionNames {
		switch section {
		case models.SectionHighlights, models.SectionProducts:
			fmt.Fprintf(&sb, "  %s: %d items\n", section, ex.Digest.SectionCount(section))
		default:
			fmt.Fprintf(&sb, "  %s:\n", section)

			for _, g := range ex.Digest.Groups() {
				if g.Section != section {
					continue
				}

				fmt.Fprintf(&sb, "    %s: %d items\n", g.Subcategory, len(*g.Items))
			}

			fmt.Fprintf(&sb, "    Total: %d items\n", ex.Digest.SectionCount(section))
		}
	}

	return sb.String()
}

// Warnings formats parser warnings grouped by section, in canonical section
// order. Flat sections report their issue count against the section's item
// total. Returns the empty string when there is nothing to report.
func Warnings(ex *merge.Extraction) string {
	if ex == nil || len(ex.Warnings) == 0 {
		return ""
	}

	bySection := make(map[string][]merge.Warning)
	for _, w := range ex.Warnings {
		bySection[w.Section] = append(bySection[w.Section], w)
	}

	var sb strings.Builder

	for _, section := range models.SectionNames {
		group := bySection[section]
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "⚠️  VALIDATION WARNINGS for %s section:\n", section)

		for _, w := range group {
			fmt.Fprintf(&sb, "   %s\n", w.String())
		}

		switch section {
		case models.SectionHighlights, models.SectionProducts:
			// Cleanup never drops flat-section items, so the digest count
			// still equals the audited total.
			fmt.Fprintf(&sb, "   Total items with issues: %d out of %d\n",
				len(group), ex.Digest.SectionCount(section))
		default:
			fmt.Fprintf(&sb, "   Total items with issues: %d\n", len(group))
		}

		sb.WriteString("   Please check the original markdown files for parsing issues.\n")
	}

	return sb.String()
}
