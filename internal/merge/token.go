package merge

import (
	"strings"

	"llmdigest/pkg/mdtext"
)

// Underline length thresholds. A dash underline longer than the heading
// threshold marks a subcategory heading; the longer title threshold marks a
// titled item.
const (
	headingUnderlineMin = 5
	titleUnderlineMin   = 10
)

// LineKind classifies one trimmed content line for the item parser.
type LineKind int

// Line kinds, in classification precedence order.
const (
	LineText LineKind = iota
	LineDelimiter
	LineDashHeading
	LineHeading
	LineBold
	LineBoldLead
	LineBullet
	LineBracket
)

// Token is one classified line plus the lookahead fact the parser needs: the
// dash length of the following line.
type Token struct {
	Text      string
	Kind      LineKind
	Underline int
}

// Classify assigns line its kind, using next for underline detection. Exactly
// one kind applies; the precedence is delimiter, dash-underlined heading,
// markdown heading, bold-wrapped, bold-led, bullet, bracket-led, plain text.
func Classify(line, next string) Token {
	tok := Token{Text: line, Kind: LineText, Underline: mdtext.DashLen(next)}

	switch {
	case mdtext.IsDelimiterLine(line):
		tok.Kind = LineDelimiter
	case tok.Underline > headingUnderlineMin:
		tok.Kind = LineDashHeading
	case strings.HasPrefix(line, "#"):
		tok.Kind = LineHeading
	case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		tok.Kind = LineBold
	case strings.HasPrefix(line, "**") && strings.Contains(line[2:], "**"):
		tok.Kind = LineBoldLead
	case strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*"):
		tok.Kind = LineBullet
	case strings.HasPrefix(line, "["):
		tok.Kind = LineBracket
	}

	return tok
}

// BoldText splits a bold-wrapped or bold-led line into the bold portion and
// whatever trails it.
func (t Token) BoldText() (bold, trailing string) {
	switch t.Kind {
	case LineBold:
		if len(t.Text) < 4 {
			return "", ""
		}

		return strings.TrimSpace(t.Text[2 : len(t.Text)-2]), ""
	case LineBoldLead:
		end := strings.Index(t.Text[2:], "**") + 2
		bold = strings.TrimSpace(t.Text[2:end])
		trailing = strings.TrimSpace(t.Text[end+2:])

		return bold, trailing
	}

	return "", ""
}

// BulletText returns the line with its leading bullet marker stripped.
func (t Token) BulletText() string {
	if t.Kind != LineBullet {
		return t.Text
	}

	if strings.HasPrefix(t.Text, "•") {
		return strings.TrimSpace(strings.TrimPrefix(t.Text, "•"))
	}

	return strings.TrimSpace(strings.TrimPrefix(t.Text, "*"))
}
