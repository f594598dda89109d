package merge

import (
	"strings"

	"llmdigest/internal/models"
)

// KeywordRule binds one subcategory to its trigger keywords.
type KeywordRule struct {
	Subcategory string
	Keywords    []string
}

// Taxonomy is the ordered keyword table for one grouped section. Rules are
// checked in order and the first keyword hit wins; Default applies when
// nothing matches.
type Taxonomy struct {
	Section string
	Rules   []KeywordRule
	Default string
}

// Subcategories returns the subcategory names in table order.
func (t Taxonomy) Subcategories() []string {
	names := make([]string, len(t.Rules))
	for i, rule := range t.Rules {
		names[i] = rule.Subcategory
	}

	return names
}

// Classify returns the first subcategory with a keyword substring match in
// text (case-insensitive), or the section default. It never fails.
func (t Taxonomy) Classify(text string) string {
	lower := strings.ToLower(text)

	for _, rule := range t.Rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Subcategory
			}
		}
	}

	return t.Default
}

// DefaultTaxonomies returns the built-in keyword tables for the grouped
// sections. Tables are keyed by section name and treated as immutable.
func DefaultTaxonomies() map[string]Taxonomy {
	return map[string]Taxonomy{
		models.SectionBusiness: {
			Section: models.SectionBusiness,
			Rules: []KeywordRule{
				{Subcategory: models.SubcatFunding, Keywords: []string{
					"funding", "investment", "arr", "revenue", "raised", "series", "million", "valuation", "fund",
				}},
				{Subcategory: models.SubcatCompany, Keywords: []string{
					"ceo", "launches", "announces", "introduces", "steps", "role", "leadership", "partnership", "acquires", "apology", "grok",
				}},
				{Subcategory: models.SubcatRegulatory, Keywords: []string{
					"antitrust", "complaint", "legislation", "eu", "regulatory", "legal",
				}},
				{Subcategory: models.SubcatMarket, Keywords: []string{
					"market", "trend", "industry", "companies", "race", "pay per", "analysis", "study", "mcp", "protocol", "shopping", "prime day",
				}},
			},
			Default: models.SubcatCompany,
		},
		models.SectionTechnology: {
			Section: models.SectionTechnology,
			Rules: []KeywordRule{
				{Subcategory: models.SubcatOpenSource, Keywords: []string{
					"github", "open-source", "stars", "repository", "langchain", "pytorch",
				}},
				{Subcategory: models.SubcatModels, Keywords: []string{
					"model", "dataset", "huggingface", "parameters", "instruct", "downloads",
				}},
				{Subcategory: models.SubcatDevTools, Keywords: []string{
					"demo", "space", "gradio", "docker", "interface", "likes",
				}},
			},
			Default: models.SubcatDevTools,
		},
		models.SectionResearch: {
			Section: models.SectionResearch,
			Rules: []KeywordRule{
				{Subcategory: models.SubcatPaperOfWeek, Keywords: []string{
					"paper of the day", "paper of the week",
				}},
				{Subcategory: models.SubcatNotableResearch, Keywords: []string{
					"notable research", "research",
				}},
			},
			Default: models.SubcatNotableResearch,
		},
	}
}

// technologyNoiseHeaders are generic sub-headers inside TECHNOLOGY that carry
// no subcategory information and get discarded.
var technologyNoiseHeaders = []string{
	"New and Notable Models",
	"Datasets",
	"Models",
	"Developer Tools",
	"Spaces",
}

// businessStrayHeaders are standalone lines inside BUSINESS that duplicate
// subcategory labels and get discarded.
var businessStrayHeaders = []string{
	"M&A",
	"Market Analysis",
	models.SubcatCompany,
	models.SubcatFunding,
	models.SubcatRegulatory,
	models.SubcatMarket,
}
