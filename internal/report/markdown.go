package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"llmdigest/internal/models"

	"github.com/mattn/go-runewidth"
)

// MarkdownReport renders the digest as a standalone markdown document in the
// language the digest content is written in. The document opens with an item
// count table and then lists every section in canonical order.
func MarkdownReport(d *models.Digest, now time.Time) string {
	lang := DetectLanguage(d)
	l := Locale(lang)

	lines := []string{
		"# " + l.Title,
		"",
		l.GeneratedOn + ": " + now.Format("2006-01-02"),
		"",
	}

	lines = append(lines, countsTable(d, l)...)

	for _, section := range models.SectionNames {
		lines = append(lines, "", "## "+sectionTitle(l, section))

		switch section {
		case models.SectionHighlights:
			if len(d.Highlights) > 0 {
				lines = append(lines, "")
			}

			for _, it := range d.Highlights {
				lines = append(lines, "- "+it.Description)
			}
		case models.SectionProducts:
			if len(d.Products) > 0 {
				lines = append(lines, "")
			}

			for _, it := range d.Products {
				lines = append(lines, itemLine(l, it))
			}
		default:
			for _, g := range d.Groups() {
				if g.Section != section || len(*g.Items) == 0 {
					continue
				}

				lines = append(lines, "", "### "+subcategoryTitle(l, g.Subcategory), "")

				for _, it := range *g.Items {
					lines = append(lines, itemLine(l, it))
				}
			}
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// WriteMarkdown renders the digest and writes the document to path.
func WriteMarkdown(path string, d *models.Digest, now time.Time) error {
	if err := os.WriteFile(path, []byte(MarkdownReport(d, now)), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}

	return nil
}

func itemLine(l Localization, it models.Item) string {
	var sb strings.Builder

	sb.WriteString("- ")

	if it.Title != "" {
		fmt.Fprintf(&sb, "**%s**: ", it.Title)
	}

	sb.WriteString(it.Description)

	if it.ReferenceLink != "" {
		fmt.Fprintf(&sb, " ([%s](%s))", l.Source, it.ReferenceLink)
	}

	return sb.String()
}

// countsTable lays out one row per item list plus a grand total.
func countsTable(d *models.Digest, l Localization) []string {
	header := []string{"Section", "Subcategory", "Items"}

	var rows [][]string

	for _, g := range d.Groups() {
		rows = append(rows, []string{
			sectionTitle(l, g.Section),
			subcategoryTitle(l, g.Subcategory),
			strconv.Itoa(len(*g.Items)),
		})
	}

	rows = append(rows, []string{"Total", "", strconv.Itoa(d.TotalItems())})

	return renderTable(header, rows)
}

// renderTable formats header and rows as a markdown table. Columns are
// padded to the widest cell, measured in display width so CJK labels line up
// in a monospace view.
func renderTable(header []string, rows [][]string) []string {
	widths := make([]int, len(header))

	measure := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}

			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(header)

	for _, row := range rows {
		measure(row)
	}

	// Keep room for the conventional "---" separator.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	formatRow := func(cells []string) string {
		var sb strings.Builder

		sb.WriteString("|")

		for i, width := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}

			sb.WriteString(" ")
			sb.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		return sb.String()
	}

	result := make([]string, 0, len(rows)+2)
	result = append(result, formatRow(header))

	var sep strings.Builder

	sep.WriteString("|")

	for _, width := range widths {
		sep.WriteString(" ")
		sep.WriteString(strings.Repeat("-", width))
		sep.WriteString(" |")
	}

	result = append(result, sep.String())

	for _, row := range rows {
		result = append(result, formatRow(row))
	}

	return result
}
