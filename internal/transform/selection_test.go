package transform

import (
	"context"
	"strings"
	"testing"

	"llmdigest/internal/models"
)

func TestParseItemsJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			"bare array",
			`[{"title": "A", "description": "first"}, {"description": "second"}]`,
			2,
			false,
		},
		{
			"fenced with language tag",
			"```json\n[{\"description\": \"only one\"}]\n```",
			1,
			false,
		},
		{
			"fenced without language tag",
			"```\n[{\"description\": \"still one\"}]\n```",
			1,
			false,
		},
		{
			"object instead of array",
			`{"description": "not a list"}`,
			0,
			true,
		},
		{
			"prose response",
			"Here are your top items: none.",
			0,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseItemsJSON(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseItemsJSON succeeded with %d items, want error", len(items))
				}
				return
			}

			if err != nil {
				t.Fatalf("parseItemsJSON failed: %v", err)
			}

			if len(items) != tt.want {
				t.Errorf("parsed %d items, want %d", len(items), tt.want)
			}
		})
	}
}

func TestParseItemsJSON_KeepsFields(t *testing.T) {
	items, err := parseItemsJSON(`[{"title": "T", "description": "D", "reference_link": "https://example.com"}]`)
	if err != nil {
		t.Fatalf("parseItemsJSON failed: %v", err)
	}

	if items[0].Title != "T" || items[0].Description != "D" || items[0].ReferenceLink != "https://example.com" {
		t.Errorf("item = %+v, want all three fields populated", items[0])
	}
}

func TestMarshalItems_NoHTMLEscaping(t *testing.T) {
	out, err := marshalItems([]models.Item{
		{Description: "tracked", ReferenceLink: "https://example.com/a?b=1&c=2"},
	})
	if err != nil {
		t.Fatalf("marshalItems failed: %v", err)
	}

	if strings.Contains(out, `&`) {
		t.Error("ampersand was escaped in the selection payload")
	}

	if !strings.Contains(out, "reference_link") {
		t.Error("payload is missing the reference_link key")
	}
}

func TestSelectTop_AtOrUnderLimitSkipsAPI(t *testing.T) {
	s := &Service{}

	items := []models.Item{
		{Description: "one"},
		{Description: "two"},
	}

	var u Usage

	got := s.SelectTop(context.Background(), "HIGHLIGHTS", items, 5, &u)
	if len(got) != 2 {
		t.Fatalf("SelectTop returned %d items, want all 2", len(got))
	}

	if u.Total() != 0 {
		t.Errorf("usage = %+v without an API call, want zero", u)
	}

	// Empty groups pass straight through too.
	if got := s.SelectTop(context.Background(), "PRODUCTS", nil, 5, &u); len(got) != 0 {
		t.Errorf("SelectTop(nil) returned %d items, want 0", len(got))
	}
}

func TestSelectionPrompt(t *testing.T) {
	prompt := selectionPrompt("BUSINESS-Funding & Investment", `[{"description": "x"}]`, 3)

	if !strings.Contains(prompt, "BUSINESS-Funding & Investment") {
		t.Error("prompt is missing the group label")
	}

	if !strings.Contains(prompt, "TOP 3 most impactful") {
		t.Error("prompt is missing the limit")
	}

	if !strings.Contains(prompt, `[{"description": "x"}]`) {
		t.Error("prompt does not embed the items JSON")
	}

	if !strings.Contains(prompt, "Select exactly 3 items") {
		t.Error("prompt is missing the exact-count instruction")
	}
}
