package merge

import (
	"regexp"
	"strings"

	"llmdigest/internal/models"
	"llmdigest/pkg/mdtext"
)

// dateSuffixPattern strips a trailing "(YYYY-MM-DD)" from research titles.
var dateSuffixPattern = regexp.MustCompile(`\s*\(\d{4}-\d{2}-\d{2}\)$`)

// rawItem is a parser-internal item before normalization.
type rawItem struct {
	title string
	desc  string
	link  string
}

// appendDesc extends the description, space-joining continuation lines.
func (it *rawItem) appendDesc(text string) {
	if it.desc != "" {
		it.desc += " " + text
	} else {
		it.desc = text
	}
}

// captureLink records the first inline link target seen for this item.
func (it *rawItem) captureLink(text string) {
	if it.link != "" {
		return
	}

	if target := mdtext.LinkTarget(text); target != "" {
		it.link = target
	}
}

// cursor is the single-owner parse state for one section of one document.
// A cursor is created per ParseSection call and never shared.
type cursor struct {
	subcategory string
	item        *rawItem
	grouped     map[string][]rawItem
}

// flush appends the open item to its subcategory list. An item with no
// active subcategory has nowhere to go and stays pending.
func (c *cursor) flush() {
	if c.item != nil && c.subcategory != "" {
		c.grouped[c.subcategory] = append(c.grouped[c.subcategory], *c.item)
		c.item = nil
	}
}

// Parser extracts items from section text. One Parser serves any number of
// documents; mutable state lives in per-call cursors, so calls are safe to
// run concurrently.
type Parser struct {
	taxonomies map[string]Taxonomy
}

// NewParser creates a parser with the built-in subcategory taxonomies.
func NewParser() *Parser {
	return NewParserWithTaxonomies(DefaultTaxonomies())
}

// NewParserWithTaxonomies creates a parser with custom keyword tables.
func NewParserWithTaxonomies(taxonomies map[string]Taxonomy) *Parser {
	return &Parser{taxonomies: taxonomies}
}

// SectionItems is the normalized outcome of parsing one section of one
// document. Flat is set for HIGHLIGHTS and PRODUCTS, Grouped for the
// subcategorized sections.
type SectionItems struct {
	Flat     []models.Item
	Grouped  map[string][]models.Item
	Warnings []Warning
}

// ParseSection parses one section's text into normalized items. Unknown
// section names fall back to the plain list mode.
func (p *Parser) ParseSection(section, content string) SectionItems {
	switch section {
	case models.SectionBusiness, models.SectionTechnology, models.SectionResearch:
		return p.parseCategorized(section, content)
	case models.SectionProducts:
		return p.parseProducts(section, content)
	default:
		return p.parseSimple(section, content)
	}
}

// tokenize classifies every line of one section, pairing each with its
// successor for underline lookahead.
func tokenize(content string) []Token {
	lines := strings.Split(content, "\n")
	tokens := make([]Token, len(lines))

	for i, line := range lines {
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		tokens[i] = Classify(strings.TrimSpace(line), next)
	}

	return tokens
}

// parseSimple handles plain list sections: every qualifying line is its own
// item, with no grouping or continuation across lines.
func (p *Parser) parseSimple(section, content string) SectionItems {
	var items []rawItem

	for _, tok := range tokenize(content) {
		if tok.Text == "" || tok.Kind == LineDelimiter {
			continue
		}

		// Markdown headings carry no item content in plain lists.
		if strings.HasPrefix(tok.Text, "#") {
			continue
		}

		if tok.Kind == LineBullet {
			desc := tok.BulletText()
			if desc == "" {
				continue
			}

			items = append(items, rawItem{desc: desc, link: mdtext.LinkTarget(desc)})

			continue
		}

		items = append(items, rawItem{desc: tok.Text, link: mdtext.LinkTarget(tok.Text)})
	}

	return SectionItems{
		Flat:     cleanItems(items),
		Warnings: auditItems(section, "", items, false),
	}
}

// parseProducts handles the PRODUCTS convention: a title with a long dash
// underline opens an item, following lines accumulate into its description.
func (p *Parser) parseProducts(section, content string) SectionItems {
	var items []rawItem
	var current *rawItem
	swallowEcho := false

	tokens := tokenize(content)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.Text == "" || tok.Kind == LineDelimiter {
			continue
		}

		if tok.Kind == LineDashHeading && tok.Underline > titleUnderlineMin {
			if current != nil {
				items = append(items, *current)
			}

			current = &rawItem{title: tok.Text}
			swallowEcho = true
			i++ // consume the underline

			continue
		}

		// Exactly one bold echo of a freshly opened title is dropped.
		if swallowEcho && tok.Kind == LineBold {
			swallowEcho = false

			continue
		}
		swallowEcho = false

		if current == nil {
			continue
		}

		current.appendDesc(tok.Text)
		current.captureLink(tok.Text)
	}

	if current != nil {
		items = append(items, *current)
	}

	return SectionItems{
		Flat:     cleanItems(items),
		Warnings: auditItems(section, "", items, true),
	}
}

// parseCategorized handles BUSINESS, TECHNOLOGY and RESEARCH: items are
// collected under subcategories, switching on recognized headers and
// auto-classifying items that appear before any header.
func (p *Parser) parseCategorized(section, content string) SectionItems {
	taxonomy := p.taxonomies[section]
	cur := &cursor{grouped: make(map[string][]rawItem, len(taxonomy.Rules))}

	tokens := tokenize(content)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.Text == "" || tok.Kind == LineDelimiter {
			continue
		}

		if section == models.SectionResearch {
			handled, skip := p.researchLine(cur, tok)
			if handled {
				i += skip

				continue
			}
		}

		// Heading lines naming a known subcategory switch the cursor.
		if name, ok := matchSubcategory(taxonomy, tok); ok {
			cur.subcategory = name
			if tok.Underline > 0 {
				i++ // consume the dash decoration
			}

			continue
		}

		if section == models.SectionBusiness {
			if name, ok := businessRedirect(tok); ok {
				cur.subcategory = name
				i++ // consume the underline

				continue
			}
		}

		// Generic TECHNOLOGY sub-headers carry no grouping information.
		if section == models.SectionTechnology && isTechnologyNoise(tok) {
			continue
		}

		// A long dash underline opens a titled item in BUSINESS.
		if section == models.SectionBusiness && tok.Kind == LineDashHeading && tok.Underline > titleUnderlineMin {
			cur.flush()
			cur.item = &rawItem{title: tok.Text}

			if cur.subcategory == "" {
				cur.subcategory = taxonomy.Classify(tok.Text)
			}

			i++ // consume the underline

			continue
		}

		if title, desc, ok := itemHeader(tok); ok {
			cur.flush()
			cur.item = &rawItem{
				title: mdtext.StripLinks(title),
				desc:  mdtext.StripLinks(desc),
				link:  mdtext.LinkTarget(title + " " + desc),
			}

			if cur.subcategory == "" {
				cur.subcategory = taxonomy.Classify(title + " " + tok.Text)
			}

			continue
		}

		// Standalone subcategory labels in BUSINESS are stray headers.
		if section == models.SectionBusiness && isBusinessStray(tok.Text) {
			continue
		}

		if tok.Kind == LineBullet {
			text := tok.BulletText()

			// BUSINESS bullets extend the open item instead of starting one.
			if section == models.SectionBusiness && cur.item != nil {
				cur.item.appendDesc(text)
				cur.item.captureLink(text)

				continue
			}

			cur.flush()
			cur.item = &rawItem{
				desc: mdtext.StripLinks(text),
				link: mdtext.LinkTarget(text),
			}

			if cur.subcategory == "" {
				cur.subcategory = taxonomy.Classify(text)
			}

			continue
		}

		// Remaining content extends the open item; bracket-led lines are
		// reference noise outside RESEARCH.
		if cur.item != nil && !strings.HasPrefix(tok.Text, "[") {
			cur.item.appendDesc(tok.Text)
			cur.item.captureLink(tok.Text)
		}
	}

	cur.flush()

	out := SectionItems{Grouped: make(map[string][]models.Item, len(taxonomy.Rules))}

	for _, name := range taxonomy.Subcategories() {
		items := cur.grouped[name]
		out.Warnings = append(out.Warnings, auditItems(section, name, items, true)...)
		out.Grouped[name] = cleanItems(items)
	}

	return out
}

// researchLine applies the RESEARCH-specific rules. It reports whether the
// token was consumed and how many extra tokens to skip.
func (p *Parser) researchLine(cur *cursor, tok Token) (handled bool, skip int) {
	lower := strings.ToLower(tok.Text)

	if strings.Contains(lower, "paper of the day") {
		cur.subcategory = models.SubcatPaperOfWeek

		return true, 0
	}

	if strings.Contains(lower, "notable research") {
		if cur.item != nil && cur.subcategory == models.SubcatPaperOfWeek {
			cur.flush()
		}

		cur.subcategory = models.SubcatNotableResearch
		if tok.Underline > 0 {
			return true, 1
		}

		return true, 0
	}

	// Paper titles arrive as links, optionally suffixed with a date.
	if tok.Kind == LineBracket && strings.Contains(tok.Text, "](") && strings.Contains(tok.Text, ")") {
		cur.flush()

		title := mdtext.StripLinks(tok.Text)
		title = dateSuffixPattern.ReplaceAllString(title, "")

		cur.item = &rawItem{title: title, link: mdtext.LinkTarget(tok.Text)}
		if cur.subcategory == "" {
			cur.subcategory = models.SubcatPaperOfWeek
		}

		return true, 0
	}

	if strings.HasPrefix(tok.Text, "**Authors:**") || strings.HasPrefix(tok.Text, "**Institution:**") {
		if cur.item != nil {
			cur.item.appendDesc(tok.Text)
		}

		return true, 0
	}

	if cur.item != nil {
		cur.item.appendDesc(tok.Text)

		return true, 0
	}

	return false, 0
}

// matchSubcategory reports the first subcategory name contained in a heading
// line. Markdown headings of depth two or more and dash-underlined headings
// qualify.
func matchSubcategory(t Taxonomy, tok Token) (string, bool) {
	headed := tok.Kind == LineDashHeading ||
		(tok.Kind == LineHeading && strings.HasPrefix(tok.Text, "##"))
	if !headed {
		return "", false
	}

	lower := strings.ToLower(tok.Text)

	for _, name := range t.Subcategories() {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name, true
		}
	}

	return "", false
}

// businessRedirect maps analysis and M&A style dash headings onto their
// subcategories without emitting an item for the header itself. A dash
// underline of any length qualifies here, unlike the subcategory name
// headings.
func businessRedirect(tok Token) (string, bool) {
	if tok.Underline == 0 {
		return "", false
	}

	lower := strings.ToLower(tok.Text)

	switch {
	case strings.Contains(lower, "analysis"):
		return models.SubcatMarket, true
	case strings.Contains(lower, "m&a"),
		strings.Contains(lower, "mergers"),
		strings.Contains(lower, "partnerships"):
		return models.SubcatCompany, true
	}

	return "", false
}

// isTechnologyNoise reports whether a heading is one of the generic
// TECHNOLOGY sub-headers that never name a subcategory.
func isTechnologyNoise(tok Token) bool {
	if !strings.HasPrefix(tok.Text, "##") {
		return false
	}

	lower := strings.ToLower(tok.Text)

	for _, header := range technologyNoiseHeaders {
		if strings.Contains(lower, strings.ToLower(header)) {
			return true
		}
	}

	return false
}

// isBusinessStray reports whether a standalone line duplicates a BUSINESS
// subcategory label.
func isBusinessStray(text string) bool {
	for _, name := range businessStrayHeaders {
		if text == name {
			return true
		}
	}

	return false
}

// itemHeader extracts the title (and leading description) from markdown and
// bold item-header lines.
func itemHeader(tok Token) (title, desc string, ok bool) {
	switch tok.Kind {
	case LineHeading:
		if !strings.HasPrefix(tok.Text, "###") {
			return "", "", false
		}

		return strings.TrimSpace(tok.Text[3:]), "", true
	case LineBold, LineBoldLead:
		bold, trailing := tok.BoldText()

		return bold, trailing, true
	}

	return "", "", false
}
