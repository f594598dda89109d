package merge

import (
	"strings"
	"testing"

	"llmdigest/internal/models"
)

func TestParser_Highlights(t *testing.T) {
	content := `• OpenAI launches new model ([TechCrunch](https://techcrunch.com/a))
Plain line kept verbatim
# Heading dropped
•
* Star bullet item
* * *`

	res := NewParser().ParseSection(models.SectionHighlights, content)

	if res.Grouped != nil {
		t.Fatalf("HIGHLIGHTS should parse flat, got grouped %v", res.Grouped)
	}

	if len(res.Flat) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(res.Flat), res.Flat)
	}

	first := res.Flat[0]
	if first.Description != "OpenAI launches new model (TechCrunch)" {
		t.Errorf("Description = %q, want link markup stripped", first.Description)
	}

	if first.ReferenceLink != "https://techcrunch.com/a" {
		t.Errorf("ReferenceLink = %q, want https://techcrunch.com/a", first.ReferenceLink)
	}

	if res.Flat[1].Description != "Plain line kept verbatim" {
		t.Errorf("Description = %q, want the plain line", res.Flat[1].Description)
	}

	if res.Flat[2].Description != "Star bullet item" {
		t.Errorf("Description = %q, want the bullet marker stripped", res.Flat[2].Description)
	}

	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestParser_Products(t *testing.T) {
	content := `Ignored preamble line
Acme Guitar Tuner
-----------------
**Acme Guitar Tuner**
Acme released a tuner ([Product Hunt](https://ph.example/t)) for musicians.
More detail line.
Next Product
--------------
Short blurb.
Lonely Product
---------------
`

	res := NewParser().ParseSection(models.SectionProducts, content)

	if len(res.Flat) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(res.Flat), res.Flat)
	}

	first := res.Flat[0]
	if first.Title != "Acme Guitar Tuner" {
		t.Errorf("Title = %q, want Acme Guitar Tuner", first.Title)
	}

	want := "Acme released a tuner (Product Hunt) for musicians. More detail line."
	if first.Description != want {
		t.Errorf("Description = %q, want %q", first.Description, want)
	}

	if first.ReferenceLink != "https://ph.example/t" {
		t.Errorf("ReferenceLink = %q, want https://ph.example/t", first.ReferenceLink)
	}

	if res.Flat[1].Title != "Next Product" || res.Flat[1].Description != "Short blurb." {
		t.Errorf("second item = %+v, want Next Product / Short blurb.", res.Flat[1])
	}

	// A title with no body is reported, then promoted to a description.
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", res.Warnings)
	}

	if res.Warnings[0].Index != 3 || !strings.Contains(res.Warnings[0].Problem, "missing description") {
		t.Errorf("Warning = %+v, want missing description on item 3", res.Warnings[0])
	}

	if res.Flat[2].Title != "" || res.Flat[2].Description != "Lonely Product" {
		t.Errorf("third item = %+v, want promoted description", res.Flat[2])
	}
}

func TestParser_Products_SwallowsSingleBoldEcho(t *testing.T) {
	content := `Tool
------------
**Tool**
**Still bold**
Detail.
`

	res := NewParser().ParseSection(models.SectionProducts, content)

	if len(res.Flat) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(res.Flat), res.Flat)
	}

	// Only the bold echo directly after the title is dropped; later bold
	// lines are content.
	want := "**Still bold** Detail."
	if res.Flat[0].Description != want {
		t.Errorf("Description = %q, want %q", res.Flat[0].Description, want)
	}
}

func TestParser_Business(t *testing.T) {
	content := `## Funding & Investment

### Anthropic Raises Series D
* $3 billion at a $150 billion valuation ([Reuters](https://reuters.example/1))

### Mistral Closes New Round
European lab secures fresh capital.
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	if res.Flat != nil {
		t.Fatalf("BUSINESS should parse grouped, got flat %v", res.Flat)
	}

	funding := res.Grouped[models.SubcatFunding]
	if len(funding) != 2 {
		t.Fatalf("Funding & Investment = %+v, want 2 items", funding)
	}

	first := funding[0]
	if first.Title != "Anthropic Raises Series D" {
		t.Errorf("Title = %q, want Anthropic Raises Series D", first.Title)
	}

	// BUSINESS bullets extend the open item rather than opening new ones.
	if first.Description != "$3 billion at a $150 billion valuation (Reuters)" {
		t.Errorf("Description = %q, want the bullet folded in", first.Description)
	}

	if first.ReferenceLink != "https://reuters.example/1" {
		t.Errorf("ReferenceLink = %q, want https://reuters.example/1", first.ReferenceLink)
	}

	if funding[1].Title != "Mistral Closes New Round" {
		t.Errorf("second item = %+v, want Mistral Closes New Round", funding[1])
	}

	for _, name := range []string{models.SubcatCompany, models.SubcatRegulatory, models.SubcatMarket} {
		if len(res.Grouped[name]) != 0 {
			t.Errorf("%s = %+v, want empty", name, res.Grouped[name])
		}
	}
}

func TestParser_Business_OpenItemFollowsSubcategorySwitch(t *testing.T) {
	content := `## Funding & Investment
### Round Announced
Capital confirmed by the founders.

## Regulatory Developments
### Inquiry Opened
Antitrust pressure mounts.
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	// An item still open when a header switches the subcategory lands under
	// the new subcategory at its next flush.
	regulatory := res.Grouped[models.SubcatRegulatory]
	if len(regulatory) != 2 {
		t.Fatalf("Regulatory Developments = %+v, want both items", regulatory)
	}

	if regulatory[0].Title != "Round Announced" || regulatory[1].Title != "Inquiry Opened" {
		t.Errorf("titles = %q, %q, want Round Announced then Inquiry Opened",
			regulatory[0].Title, regulatory[1].Title)
	}

	if len(res.Grouped[models.SubcatFunding]) != 0 {
		t.Errorf("Funding & Investment = %+v, want empty", res.Grouped[models.SubcatFunding])
	}
}

func TestParser_Business_RedirectAndAutoClassify(t *testing.T) {
	content := `Acquisition Talks Intensify
---------------------------
Bigco acquires Smallco for talent ([WSJ](https://wsj.example/d)).

Market Analysis
---------------
* Analysts study the shopping agent trend ([FT](https://ft.example/m))
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	// The titled item opens before any header, the analysis heading then
	// redirects the cursor, and the trailing bullet extends the open item.
	market := res.Grouped[models.SubcatMarket]
	if len(market) != 1 {
		t.Fatalf("Market Trends = %+v, want one combined item", market)
	}

	item := market[0]
	if item.Title != "Acquisition Talks Intensify" {
		t.Errorf("Title = %q, want Acquisition Talks Intensify", item.Title)
	}

	if !strings.Contains(item.Description, "Bigco acquires Smallco") ||
		!strings.Contains(item.Description, "Analysts study the shopping agent trend") {
		t.Errorf("Description = %q, want both lines folded in", item.Description)
	}

	if item.ReferenceLink != "https://wsj.example/d" {
		t.Errorf("ReferenceLink = %q, want the first captured link", item.ReferenceLink)
	}
}

func TestParser_Business_RedirectShortUnderline(t *testing.T) {
	content := `Market Analysis
---
**Quiet quarter ahead** overall sentiment stays cautious.
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	// The analysis redirect takes a dash underline of any length, so the
	// short decoration still switches the cursor before the item opens.
	market := res.Grouped[models.SubcatMarket]
	if len(market) != 1 {
		t.Fatalf("Market Trends = %+v, want one item", market)
	}

	item := market[0]
	if item.Title != "Quiet quarter ahead" {
		t.Errorf("Title = %q, want Quiet quarter ahead", item.Title)
	}

	if item.Description != "overall sentiment stays cautious." {
		t.Errorf("Description = %q, want the trailing text", item.Description)
	}

	if len(res.Grouped[models.SubcatCompany]) != 0 {
		t.Errorf("Company Updates = %+v, want empty", res.Grouped[models.SubcatCompany])
	}
}

func TestParser_Business_MergersRedirectShortUnderline(t *testing.T) {
	content := `M&A Watch
----
**Bigco buys Smallco** integration planned for fall.
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	company := res.Grouped[models.SubcatCompany]
	if len(company) != 1 {
		t.Fatalf("Company Updates = %+v, want one item", company)
	}

	if company[0].Title != "Bigco buys Smallco" {
		t.Errorf("Title = %q, want Bigco buys Smallco", company[0].Title)
	}
}

func TestParser_Business_KeywordTitleClassification(t *testing.T) {
	content := `Funding Update
------------
See [here](https://x.com)
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	// "funding" in the title matches the first keyword table, so the item
	// lands there rather than in the Company Updates default.
	funding := res.Grouped[models.SubcatFunding]
	if len(funding) != 1 {
		t.Fatalf("Funding & Investment = %+v, want one item", funding)
	}

	item := funding[0]
	if item.Title != "Funding Update" {
		t.Errorf("Title = %q, want Funding Update", item.Title)
	}

	if item.Description != "See here" {
		t.Errorf("Description = %q, want the link text inlined", item.Description)
	}

	if item.ReferenceLink != "https://x.com" {
		t.Errorf("ReferenceLink = %q, want https://x.com", item.ReferenceLink)
	}
}

func TestParser_Business_DropsStrayLabels(t *testing.T) {
	content := `## Company Updates
### Grok Ships Voice Mode
Company Updates
xAI pushed the update broadly.
`

	res := NewParser().ParseSection(models.SectionBusiness, content)

	company := res.Grouped[models.SubcatCompany]
	if len(company) != 1 {
		t.Fatalf("Company Updates = %+v, want one item", company)
	}

	if company[0].Description != "xAI pushed the update broadly." {
		t.Errorf("Description = %q, want the stray label dropped", company[0].Description)
	}
}

func TestParser_Technology(t *testing.T) {
	content := `## New and Notable Models

**DeepSeek-R2** tops the open model leaderboard ([HF](https://hf.example/r2))
Weights hit 1M downloads in a week.

**Qwen3-VLM**
Vision checkpoints now on HuggingFace.
`

	res := NewParser().ParseSection(models.SectionTechnology, content)

	// The generic sub-header is noise; the first item's text then decides
	// the subcategory for the run.
	modelsGroup := res.Grouped[models.SubcatModels]
	if len(modelsGroup) != 2 {
		t.Fatalf("Models & Datasets = %+v, want 2 items", modelsGroup)
	}

	first := modelsGroup[0]
	if first.Title != "DeepSeek-R2" {
		t.Errorf("Title = %q, want DeepSeek-R2", first.Title)
	}

	want := "tops the open model leaderboard (HF) Weights hit 1M downloads in a week."
	if first.Description != want {
		t.Errorf("Description = %q, want %q", first.Description, want)
	}

	if first.ReferenceLink != "https://hf.example/r2" {
		t.Errorf("ReferenceLink = %q, want https://hf.example/r2", first.ReferenceLink)
	}

	if modelsGroup[1].Title != "Qwen3-VLM" {
		t.Errorf("second item = %+v, want Qwen3-VLM", modelsGroup[1])
	}

	if len(res.Grouped[models.SubcatOpenSource]) != 0 || len(res.Grouped[models.SubcatDevTools]) != 0 {
		t.Errorf("unexpected items outside Models & Datasets: %v", res.Grouped)
	}
}

func TestParser_Research(t *testing.T) {
	content := `## Paper of the Day

[Scaling Laws for Tool Use](https://arxiv.example/2507.1234) (2025-07-06)
**Authors:** A. Researcher, B. Scholar
The paper maps compute tradeoffs for agentic tool chains.

Notable Research
----------------
[Sparse Memory Transformers](https://arxiv.example/2507.5678) (2025-07-05)
Compresses context without quality loss.
`

	res := NewParser().ParseSection(models.SectionResearch, content)

	papers := res.Grouped[models.SubcatPaperOfWeek]
	if len(papers) != 1 {
		t.Fatalf("Paper of the Week = %+v, want one item", papers)
	}

	paper := papers[0]
	if paper.Title != "Scaling Laws for Tool Use" {
		t.Errorf("Title = %q, want the date suffix stripped", paper.Title)
	}

	if paper.ReferenceLink != "https://arxiv.example/2507.1234" {
		t.Errorf("ReferenceLink = %q, want the arXiv link", paper.ReferenceLink)
	}

	if !strings.Contains(paper.Description, "**Authors:** A. Researcher, B. Scholar") {
		t.Errorf("Description = %q, want the authors line folded in", paper.Description)
	}

	notable := res.Grouped[models.SubcatNotableResearch]
	if len(notable) != 1 {
		t.Fatalf("Notable Research = %+v, want one item", notable)
	}

	if notable[0].Title != "Sparse Memory Transformers" {
		t.Errorf("Title = %q, want Sparse Memory Transformers", notable[0].Title)
	}

	if notable[0].Description != "Compresses context without quality loss." {
		t.Errorf("Description = %q, want the summary line", notable[0].Description)
	}
}

func TestParser_Research_DefaultsToPaperOfWeek(t *testing.T) {
	content := `[First Paper](https://arxiv.example/1)
Short summary.
`

	res := NewParser().ParseSection(models.SectionResearch, content)

	if len(res.Grouped[models.SubcatPaperOfWeek]) != 1 {
		t.Fatalf("Paper of the Week = %+v, want the headerless paper", res.Grouped[models.SubcatPaperOfWeek])
	}
}

func TestParser_UnknownSectionParsesFlat(t *testing.T) {
	res := NewParser().ParseSection("COMMUNITY", "Some line\n")

	if res.Grouped != nil {
		t.Fatalf("unknown section should parse flat, got %v", res.Grouped)
	}

	if len(res.Flat) != 1 || res.Flat[0].Description != "Some line" {
		t.Errorf("Flat = %+v, want the single line", res.Flat)
	}
}
