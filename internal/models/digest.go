// Package models defines the data structures shared by the digest pipeline.
package models

// Canonical section names, in document and output order.
const (
	SectionHighlights = "HIGHLIGHTS"
	SectionBusiness   = "BUSINESS"
	SectionProducts   = "PRODUCTS"
	SectionTechnology = "TECHNOLOGY"
	SectionResearch   = "RESEARCH"
)

// SectionNames lists the five canonical sections in their fixed order.
var SectionNames = []string{
	SectionHighlights,
	SectionBusiness,
	SectionProducts,
	SectionTechnology,
	SectionResearch,
}

// Subcategory display names for the grouped sections.
const (
	SubcatFunding    = "Funding & Investment"
	SubcatCompany    = "Company Updates"
	SubcatRegulatory = "Regulatory Developments"
	SubcatMarket     = "Market Trends"

	SubcatOpenSource = "Open Source Projects"
	SubcatModels     = "Models & Datasets"
	SubcatDevTools   = "Developer Tools & Demos"

	SubcatPaperOfWeek     = "Paper of the Week"
	SubcatNotableResearch = "Notable Research"
)

// Item represents one extracted news item.
type Item struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description"`
	ReferenceLink string `json:"reference_link,omitempty"`
}

// BusinessSection groups business items by subcategory.
type BusinessSection struct {
	FundingInvestment      []Item `json:"Funding & Investment"`
	CompanyUpdates         []Item `json:"Company Updates"`
	RegulatoryDevelopments []Item `json:"Regulatory Developments"`
	MarketTrends           []Item `json:"Market Trends"`
}

// TechnologySection groups technology items by subcategory.
type TechnologySection struct {
	OpenSourceProjects  []Item `json:"Open Source Projects"`
	ModelsDatasets      []Item `json:"Models & Datasets"`
	DeveloperToolsDemos []Item `json:"Developer Tools & Demos"`
}

// ResearchSection groups research items by subcategory.
type ResearchSection struct {
	PaperOfTheWeek  []Item `json:"Paper of the Week"`
	NotableResearch []Item `json:"Notable Research"`
}

// Digest is the merged output structure for one batch of newsletter days.
type Digest struct {
	Highlights []Item            `json:"HIGHLIGHTS"`
	Business   BusinessSection   `json:"BUSINESS"`
	Products   []Item            `json:"PRODUCTS"`
	Technology TechnologySection `json:"TECHNOLOGY"`
	Research   ResearchSection   `json:"RESEARCH"`
}

// NewDigest creates a digest with every section and subcategory seeded to an
// empty list, so absent content marshals as [] rather than null.
func NewDigest() *Digest {
	return &Digest{
		Highlights: make([]Item, 0),
		Business: BusinessSection{
			FundingInvestment:      make([]Item, 0),
			CompanyUpdates:         make([]Item, 0),
			RegulatoryDevelopments: make([]Item, 0),
			MarketTrends:           make([]Item, 0),
		},
		Products: make([]Item, 0),
		Technology: TechnologySection{
			OpenSourceProjects:  make([]Item, 0),
			ModelsDatasets:      make([]Item, 0),
			DeveloperToolsDemos: make([]Item, 0),
		},
		Research: ResearchSection{
			PaperOfTheWeek:  make([]Item, 0),
			NotableResearch: make([]Item, 0),
		},
	}
}

// FlatItems returns the flat item list for HIGHLIGHTS or PRODUCTS, or nil for
// other section names.
func (d *Digest) FlatItems(section string) *[]Item {
	switch section {
	case SectionHighlights:
		return &d.Highlights
	case SectionProducts:
		return &d.Products
	}

	return nil
}

// SubcategoryItems returns the item list for one subcategory of a grouped
// section, or nil when the pair is unknown.
func (d *Digest) SubcategoryItems(section, subcategory string) *[]Item {
	switch section {
	case SectionBusiness:
		switch subcategory {
		case SubcatFunding:
			return &d.Business.FundingInvestment
		case SubcatCompany:
			return &d.Business.CompanyUpdates
		case SubcatRegulatory:
			return &d.Business.RegulatoryDevelopments
		case SubcatMarket:
			return &d.Business.MarketTrends
		}
	case SectionTechnology:
		switch subcategory {
		case SubcatOpenSource:
			return &d.Technology.OpenSourceProjects
		case SubcatModels:
			return &d.Technology.ModelsDatasets
		case SubcatDevTools:
			return &d.Technology.DeveloperToolsDemos
		}
	case SectionResearch:
		switch subcategory {
		case SubcatPaperOfWeek:
			return &d.Research.PaperOfTheWeek
		case SubcatNotableResearch:
			return &d.Research.NotableResearch
		}
	}

	return nil
}

// ItemGroup addresses one item list inside a digest. Subcategory is empty for
// the flat sections.
type ItemGroup struct {
	Section     string
	Subcategory string
	Items       *[]Item
}

// Groups returns every item list in the digest in canonical order.
func (d *Digest) Groups() []ItemGroup {
	return []ItemGroup{
		{Section: SectionHighlights, Items: &d.Highlights},
		{Section: SectionBusiness, Subcategory: SubcatFunding, Items: &d.Business.FundingInvestment},
		{Section: SectionBusiness, Subcategory: SubcatCompany, Items: &d.Business.CompanyUpdates},
		{Section: SectionBusiness, Subcategory: SubcatRegulatory, Items: &d.Business.RegulatoryDevelopments},
		{Section: SectionBusiness, Subcategory: SubcatMarket, Items: &d.Business.MarketTrends},
		{Section: SectionProducts, Items: &d.Products},
		{Section: SectionTechnology, Subcategory: SubcatOpenSource, Items: &d.Technology.OpenSourceProjects},
		{Section: SectionTechnology, Subcategory: SubcatModels, Items: &d.Technology.ModelsDatasets},
		{Section: SectionTechnology, Subcategory: SubcatDevTools, Items: &d.Technology.DeveloperToolsDemos},
		{Section: SectionResearch, Subcategory: SubcatPaperOfWeek, Items: &d.Research.PaperOfTheWeek},
		{Section: SectionResearch, Subcategory: SubcatNotableResearch, Items: &d.Research.NotableResearch},
	}
}

// SectionCount returns the number of items held under one section.
func (d *Digest) SectionCount(section string) int {
	count := 0

	for _, g := range d.Groups() {
		if g.Section == section {
			count += len(*g.Items)
		}
	}

	return count
}

// TotalItems returns the number of items across all sections.
func (d *Digest) TotalItems() int {
	count := 0

	for _, g := range d.Groups() {
		count += len(*g.Items)
	}

	return count
}
