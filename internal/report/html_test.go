package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"llmdigest/internal/models"
)

var reportTime = time.Date(2025, time.July, 12, 10, 30, 0, 0, time.UTC)

// sampleDigest builds a small English digest touching every section kind:
// flat lists, populated subcategories and empty ones.
func sampleDigest() *models.Digest {
	d := models.NewDigest()

	d.Highlights = append(d.Highlights,
		models.Item{Description: "First major development of the week."},
		models.Item{Description: "Second major development of the week."},
	)

	d.Business.FundingInvestment = append(d.Business.FundingInvestment, models.Item{
		Title:         "Acme raises $40M",
		Description:   "Acme closed a Series B round to scale its inference platform.",
		ReferenceLink: "https://example.com/acme",
	})

	d.Business.CompanyUpdates = append(d.Business.CompanyUpdates, models.Item{
		Title:       "BigCo reorganizes its AI lab",
		Description: "BigCo folded its research group into the product org.",
	})

	d.Products = append(d.Products, models.Item{
		Description:   "A new coding assistant reached general availability.",
		ReferenceLink: "https://example.com/assistant",
	})

	d.Research.PaperOfTheWeek = append(d.Research.PaperOfTheWeek, models.Item{
		Title:       "Scaling Laws Revisited",
		Description: "The paper re-examines compute-optimal training.",
	})

	return d
}

func chineseDigest() *models.Digest {
	d := models.NewDigest()

	d.Highlights = append(d.Highlights, models.Item{Description: "本周最重要的进展。"})

	d.Business.FundingInvestment = append(d.Business.FundingInvestment, models.Item{
		Title:         "Acme 完成 4000 万美元融资",
		Description:   "Acme 宣布完成 B 轮融资。",
		ReferenceLink: "https://example.com/acme",
	})

	return d
}

func TestHTMLReport_English(t *testing.T) {
	page, err := HTMLReport(sampleDigest(), reportTime)
	if err != nil {
		t.Fatalf("HTMLReport failed: %v", err)
	}

	for _, want := range []string{
		`<html lang="en">`,
		"<title>GenAI Newsletter Report</title>",
		"Generated on: 2025-07-12",
		`<a href="#highlights">Highlights</a>`,
		`<a href="#business">Business</a>`,
		`<a href="#products">Products</a>`,
		`<a href="#technology">Technology</a>`,
		`<a href="#research">Research</a>`,
		`<div class="highlight-item"><p>First major development of the week.</p></div>`,
		"<h3>Funding &amp; Investment</h3>",
		"<h4>Acme raises $40M</h4>",
		`<a href="https://example.com/acme" target="_blank">[Source]</a>`,
		"<h3>Paper of the Week</h3>",
		"&copy; 2025 GenAI Newsletter. All rights reserved.",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page is missing %q", want)
		}
	}

	// The highlights section counts both items.
	if !strings.Contains(page, "Total items: <strong>2</strong>") {
		t.Error("page is missing the highlights item count")
	}
}

func TestHTMLReport_SkipsEmptySubcategories(t *testing.T) {
	page, err := HTMLReport(sampleDigest(), reportTime)
	if err != nil {
		t.Fatalf("HTMLReport failed: %v", err)
	}

	for _, absent := range []string{
		"<h3>Market Trends</h3>",
		"<h3>Regulatory Developments</h3>",
		"<h3>Notable Research</h3>",
	} {
		if strings.Contains(page, absent) {
			t.Errorf("page contains %q for an empty subcategory", absent)
		}
	}

	// The section itself still renders, with its anchor and total.
	if !strings.Contains(page, `<section id="technology">`) {
		t.Error("page is missing the empty technology section")
	}
}

func TestHTMLReport_Chinese(t *testing.T) {
	page, err := HTMLReport(chineseDigest(), reportTime)
	if err != nil {
		t.Fatalf("HTMLReport failed: %v", err)
	}

	for _, want := range []string{
		`<html lang="zh">`,
		"<title>GenAI 新闻简报</title>",
		"生成于: 2025-07-12",
		`<a href="#highlights">亮点</a>`,
		"<h3>资金与投资</h3>",
		">[来源]</a>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestHTMLReport_EscapesMarkup(t *testing.T) {
	d := models.NewDigest()
	d.Highlights = append(d.Highlights, models.Item{
		Description: `Researchers used <b>bold claims</b> & raw HTML.`,
	})

	page, err := HTMLReport(d, reportTime)
	if err != nil {
		t.Fatalf("HTMLReport failed: %v", err)
	}

	if strings.Contains(page, "<b>bold claims</b>") {
		t.Error("item markup was not escaped")
	}

	if !strings.Contains(page, "&lt;b&gt;bold claims&lt;/b&gt; &amp; raw HTML.") {
		t.Error("page is missing the escaped item text")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	if err := WriteHTML(path, sampleDigest(), reportTime); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report failed: %v", err)
	}

	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Error("report does not start with a doctype")
	}
}
