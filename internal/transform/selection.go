package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"llmdigest/internal/models"
)

// SelectTop ranks a group's items and keeps the most impactful limit of
// them. Groups already at or under the limit are returned untouched with
// no API call; unusable responses fall back to the first limit items.
func (s *Service) SelectTop(ctx context.Context, label string, items []models.Item, limit int, usage *Usage) []models.Item {
	if len(items) <= limit {
		return items
	}

	payload, err := marshalItems(items)
	if err != nil {
		s.log.Warn("failed to encode items for selection", "group", label, "error", err)
		return items[:limit]
	}

	s.log.Info("selecting top items", "group", label, "available", len(items), "limit", limit)

	out, err := s.generate(ctx, s.rank, selectionPrompt(label, payload, limit), usage)
	if err != nil || out == "" {
		s.log.Warn("selection failed, keeping leading items", "group", label, "error", err)
		return items[:limit]
	}

	selected, err := parseItemsJSON(out)
	if err != nil {
		s.log.Warn("unparseable selection response, keeping leading items", "group", label, "error", err)
		return items[:limit]
	}

	if len(selected) > limit {
		selected = selected[:limit]
	}

	return selected
}

// SelectDigest reduces every group to its configured limit. Flat sections
// rank as one unit; grouped sections rank per subcategory under a
// "SECTION-Subcategory" label.
func (s *Service) SelectDigest(ctx context.Context, d *models.Digest) (Usage, error) {
	var total Usage

	for _, g := range d.Groups() {
		label := g.Section
		if g.Subcategory != "" {
			label = fmt.Sprintf("%s-%s", g.Section, g.Subcategory)
		}

		var u Usage

		limit := s.limits.LimitFor(g.Section, g.Subcategory)
		*g.Items = s.SelectTop(ctx, label, *g.Items, limit, &u)
		total.Add(u)

		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}

	return total, nil
}

// marshalItems renders items as indented JSON with HTML escaping off, the
// same shape the digest files use.
func marshalItems(items []models.Item) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(items); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// parseItemsJSON reads a JSON item array, tolerating a fenced code block
// around it.
func parseItemsJSON(text string) ([]models.Item, error) {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		parts := strings.Split(cleaned, "```")
		if len(parts) > 1 {
			cleaned = parts[1]
		}

		cleaned = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cleaned), "json"))
	}

	var items []models.Item
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("failed to parse selection JSON: %w", err)
	}

	return items, nil
}
