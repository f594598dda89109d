// Package report renders a merged digest as an HTML page, a markdown
// document or a plain run summary.
package report

import "llmdigest/internal/models"

// Supported report languages.
const (
	LangEnglish = "en"
	LangChinese = "zh"
)

// Localization holds the display strings for one report language.
type Localization struct {
	Title       string
	GeneratedOn string

	Highlights string
	Business   string
	Products   string
	Technology string
	Research   string

	FundingInvestment      string
	CompanyUpdates         string
	RegulatoryDevelopments string
	MarketTrends           string
	OpenSourceProjects     string
	ModelsDatasets         string
	DeveloperTools         string
	PaperOfWeek            string
	NotableResearch        string

	Source    string
	Copyright string
}

var locales = map[string]Localization{
	LangEnglish: {
		Title:       "GenAI Newsletter Report",
		GeneratedOn: "Generated on",

		Highlights: "Highlights",
		Business:   "Business",
		Products:   "Products",
		Technology: "Technology",
		Research:   "Research",

		FundingInvestment:      "Funding & Investment",
		CompanyUpdates:         "Company Updates",
		RegulatoryDevelopments: "Regulatory Developments",
		MarketTrends:           "Market Trends",
		OpenSourceProjects:     "Open Source Projects",
		ModelsDatasets:         "Models & Datasets",
		DeveloperTools:         "Developer Tools & Demos",
		PaperOfWeek:            "Paper of the Week",
		NotableResearch:        "Notable Research",

		Source:    "Source",
		Copyright: "GenAI Newsletter. All rights reserved.",
	},
	LangChinese: {
		Title:       "GenAI 新闻简报",
		GeneratedOn: "生成于",

		Highlights: "亮点",
		Business:   "商业",
		Products:   "产品",
		Technology: "技术",
		Research:   "研究",

		FundingInvestment:      "资金与投资",
		CompanyUpdates:         "公司动态",
		RegulatoryDevelopments: "监管发展",
		MarketTrends:           "市场趋势",
		OpenSourceProjects:     "开源项目",
		ModelsDatasets:         "模型与数据集",
		DeveloperTools:         "开发者工具与演示",
		PaperOfWeek:            "本周论文",
		NotableResearch:        "值得关注的研究",

		Source:    "来源",
		Copyright: "GenAI 新闻简报。保留所有权利。",
	},
}

// Locale returns the string table for a language, falling back to English
// for anything unrecognized.
func Locale(lang string) Localization {
	if l, ok := locales[lang]; ok {
		return l
	}

	return locales[LangEnglish]
}

// DetectLanguage samples a translated digest for CJK characters and reports
// the language the digest content is written in. It checks the first
// highlight description and the first company-updates title, the two spots a
// translated digest always fills first.
func DetectLanguage(d *models.Digest) string {
	samples := make([]string, 0, 2)

	if len(d.Highlights) > 0 {
		samples = append(samples, d.Highlights[0].Description)
	}

	if len(d.Business.CompanyUpdates) > 0 {
		samples = append(samples, d.Business.CompanyUpdates[0].Title)
	}

	for _, text := range samples {
		for _, r := range text {
			if r >= 0x4e00 && r <= 0x9fff {
				return LangChinese
			}
		}
	}

	return LangEnglish
}

// sectionTitle maps a canonical section name to its localized heading.
func sectionTitle(l Localization, section string) string {
	switch section {
	case models.SectionHighlights:
		return l.Highlights
	case models.SectionBusiness:
		return l.Business
	case models.SectionProducts:
		return l.Products
	case models.SectionTechnology:
		return l.Technology
	case models.SectionResearch:
		return l.Research
	}

	return section
}

// subcategoryTitle maps a canonical subcategory name to its localized
// heading.
func subcategoryTitle(l Localization, subcategory string) string {
	switch subcategory {
	case models.SubcatFunding:
		return l.FundingInvestment
	case models.SubcatCompany:
		return l.CompanyUpdates
	case models.SubcatRegulatory:
		return l.RegulatoryDevelopments
	case models.SubcatMarket:
		return l.MarketTrends
	case models.SubcatOpenSource:
		return l.OpenSourceProjects
	case models.SubcatModels:
		return l.ModelsDatasets
	case models.SubcatDevTools:
		return l.DeveloperTools
	case models.SubcatPaperOfWeek:
		return l.PaperOfWeek
	case models.SubcatNotableResearch:
		return l.NotableResearch
	}

	return subcategory
}
