package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadDigestFile_RoundTrip(t *testing.T) {
	d := NewDigest()
	d.Highlights = append(d.Highlights, Item{
		Description:   "模型上线 with a tracked link",
		ReferenceLink: "https://example.com/a?b=1&c=2",
	})
	d.Business.FundingInvestment = append(d.Business.FundingInvestment, Item{
		Title:       "Round Closed",
		Description: "Series D confirmed",
	})

	path := filepath.Join(t.TempDir(), "out", "merged_data.json")

	if err := WriteDigestFile(path, d); err != nil {
		t.Fatalf("WriteDigestFile failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}

	// URLs and non-ASCII text are written as-is.
	if strings.Contains(string(raw), `&`) {
		t.Error("ampersand was HTML-escaped in output")
	}

	if !strings.Contains(string(raw), "模型上线") {
		t.Error("non-ASCII text was not preserved verbatim")
	}

	got, err := ReadDigestFile(path)
	if err != nil {
		t.Fatalf("ReadDigestFile failed: %v", err)
	}

	if len(got.Highlights) != 1 || got.Highlights[0].ReferenceLink != "https://example.com/a?b=1&c=2" {
		t.Errorf("Highlights = %+v, want the original item back", got.Highlights)
	}

	if len(got.Business.FundingInvestment) != 1 || got.Business.FundingInvestment[0].Title != "Round Closed" {
		t.Errorf("Funding & Investment = %+v, want the original item back", got.Business.FundingInvestment)
	}
}

func TestWriteDigestFileCompact_SingleLine(t *testing.T) {
	d := NewDigest()
	d.Products = append(d.Products, Item{Title: "Tool", Description: "Ships today"})

	path := filepath.Join(t.TempDir(), "compact.json")

	if err := WriteDigestFileCompact(path, d); err != nil {
		t.Fatalf("WriteDigestFileCompact failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}

	if n := strings.Count(strings.TrimRight(string(raw), "\n"), "\n"); n != 0 {
		t.Errorf("compact output spans %d extra lines, want single line", n)
	}

	got, err := ReadDigestFile(path)
	if err != nil {
		t.Fatalf("ReadDigestFile failed: %v", err)
	}

	if len(got.Products) != 1 || got.Products[0].Title != "Tool" {
		t.Errorf("PRODUCTS = %+v, want the original item back", got.Products)
	}
}

func TestReadDigestFile_PartialDocumentStaysSeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	partial := `{"HIGHLIGHTS": [{"description": "only section present"}]}`

	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	d, err := ReadDigestFile(path)
	if err != nil {
		t.Fatalf("ReadDigestFile failed: %v", err)
	}

	if len(d.Highlights) != 1 {
		t.Fatalf("Highlights = %+v, want one item", d.Highlights)
	}

	// Sections absent from the file stay seeded as empty lists.
	for _, g := range d.Groups() {
		if *g.Items == nil {
			t.Errorf("%s/%s is nil after partial read", g.Section, g.Subcategory)
		}
	}
}

func TestReadDigestFile_Missing(t *testing.T) {
	if _, err := ReadDigestFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
