package docmeta

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleDoc = `Title: LLM Daily - July 06, 2025

HIGHLIGHTS
----------
• Something happened
`

func TestSignAndVerify(t *testing.T) {
	fetchedAt := time.Date(2025, 7, 6, 12, 30, 0, 0, time.UTC)
	signed := Sign(sampleDoc, "https://buttondown.com/agent-k/archive/llm-daily-july-06-2025/", fetchedAt)

	if !strings.Contains(signed, TagStart) || !strings.Contains(signed, TagEnd) {
		t.Fatal("signed content missing metadata tags")
	}

	valid, err := Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Error("freshly signed content should verify")
	}

	meta, clean := Extract(signed)
	if meta == nil {
		t.Fatal("Extract returned no metadata")
	}

	if meta.SourceURL != "https://buttondown.com/agent-k/archive/llm-daily-july-06-2025/" {
		t.Errorf("SourceURL = %q", meta.SourceURL)
	}

	if !meta.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", meta.FetchedAt, fetchedAt)
	}

	if strings.Contains(clean, "DIGEST_META") {
		t.Error("cleaned content still contains the metadata block")
	}
}

func TestVerify_TamperedContent(t *testing.T) {
	signed := Sign(sampleDoc, "https://example.com/src", time.Now())
	tampered := strings.Replace(signed, "Something happened", "Something else", 1)

	valid, err := Verify(tampered)
	if valid {
		t.Error("tampered content should not verify")
	}

	if !errors.Is(err, ErrHashChanged) {
		t.Errorf("err = %v, want ErrHashChanged", err)
	}
}

func TestVerify_NoBlock(t *testing.T) {
	_, err := Verify(sampleDoc)
	if !errors.Is(err, ErrNoMetaBlock) {
		t.Errorf("err = %v, want ErrNoMetaBlock", err)
	}
}

func TestSign_ReplacesExistingBlock(t *testing.T) {
	first := Sign(sampleDoc, "https://example.com/a", time.Now())
	second := Sign(first, "https://example.com/b", time.Now())

	if got := strings.Count(second, TagStart); got != 1 {
		t.Errorf("got %d metadata blocks, want 1", got)
	}

	meta, _ := Extract(second)
	if meta.SourceURL != "https://example.com/b" {
		t.Errorf("SourceURL = %q, want the re-signed value", meta.SourceURL)
	}
}

func TestHash_IgnoresMetadataBlock(t *testing.T) {
	signed := Sign(sampleDoc, "https://example.com/a", time.Now())

	if Hash(signed) != Hash(sampleDoc) {
		t.Error("hash should not depend on the metadata block")
	}
}
