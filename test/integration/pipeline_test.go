package integration

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"llmdigest/internal/config"
	"llmdigest/internal/merge"
	"llmdigest/internal/models"
	"llmdigest/internal/report"
)

func readFixture(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join("..", "fixtures", name))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func TestPipeline_MergeToReports(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2025, time.July, 13, 9, 0, 0, 0, time.UTC)

	// Phases 1 & 2: load the batch and merge it (what 'worker' does
	// after fetching).
	docs, err := merge.LoadDocuments(filepath.Join("..", "fixtures"))
	if err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}

	ex := merge.NewEngine().MergeAt("7.6-7.12", 2025, docs)

	// The merged digest survives a disk round trip unchanged.
	mergedPath := filepath.Join(tmp, "merged_data.json")
	if err := models.WriteDigestFile(mergedPath, ex.Digest); err != nil {
		t.Fatalf("WriteDigestFile failed: %v", err)
	}

	reread, err := models.ReadDigestFile(mergedPath)
	if err != nil {
		t.Fatalf("ReadDigestFile failed: %v", err)
	}

	if !reflect.DeepEqual(ex.Digest, reread) {
		t.Fatal("Digest changed across the JSON round trip")
	}

	// Phase 4: reports from the merged digest.
	htmlPath := filepath.Join(tmp, "report.html")
	if err := report.WriteHTML(htmlPath, reread, now); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("Failed to read HTML report: %v", err)
	}

	page := string(html)

	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Error("Expected report to start with the doctype")
	}

	for _, want := range []string{
		"GenAI Newsletter Report",
		"Generated on: 2025-07-13",
		"Total items: <strong>3</strong>",
		"PhotonCode (New IDE Plugin)",
		"Scaling Laws for Sparse Mixtures",
		`href="https://news.example/acme-series-b"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML report missing %q", want)
		}
	}

	mdPath := filepath.Join(tmp, "report.md")
	if err := report.WriteMarkdown(mdPath, reread, now); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("Failed to read markdown report: %v", err)
	}

	doc := string(md)

	for _, want := range []string{
		"# GenAI Newsletter Report",
		"### Funding & Investment",
		"- **Acme AI raises $40M Series B**",
		"| Total",
		"| 13",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("Markdown report missing %q", want)
		}
	}

	// Run summary and warning text the merger prints.
	summary := report.Summary("7.6-7.12", ex)

	for _, want := range []string{
		"Processed date range from folder: 7.6-7.12",
		"7-6.md: LLM Daily - July 06, 2025",
		"HIGHLIGHTS: 3 items",
		"Funding & Investment: 2 items",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary missing %q", want)
		}
	}

	warnings := report.Warnings(ex)
	if !strings.Contains(warnings, "VALIDATION WARNINGS for BUSINESS section") {
		t.Errorf("Warnings = %q, want the BUSINESS header", warnings)
	}
}

func TestPipeline_ShippedConfigLoads(t *testing.T) {
	// The example config in configs/ must pass validation as shipped.
	cfg, err := config.LoadConfig(filepath.Join("..", "..", "configs", "digest.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Digest.Fetch.Days != 7 {
		t.Errorf("fetch.days = %d, want 7", cfg.Digest.Fetch.Days)
	}

	sel := cfg.Digest.Selection

	if got := sel.LimitFor("HIGHLIGHTS", ""); got != 3 {
		t.Errorf("HIGHLIGHTS limit = %d, want 3", got)
	}

	if got := sel.LimitFor("BUSINESS", "Funding & Investment"); got != 3 {
		t.Errorf("Funding & Investment limit = %d, want 3", got)
	}

	// A mapped section has no flat count; lookups fall to the default.
	if got := sel.LimitFor("BUSINESS", ""); got != sel.DefaultLimit {
		t.Errorf("BUSINESS flat limit = %d, want the default %d", got, sel.DefaultLimit)
	}

	if got := sel.LimitFor("RESEARCH", "Paper of the Week"); got != 1 {
		t.Errorf("Paper of the Week limit = %d, want 1", got)
	}
}
