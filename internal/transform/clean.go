package transform

import (
	"context"
	"strings"

	"llmdigest/internal/models"
)

// minCleanLen is the threshold below which texts are left alone; anything
// that short is a name or a label, not prose worth a model call.
const minCleanLen = 20

// CleanText strips markdown noise and merge accidents from one text. Short
// texts come back unchanged, and so does the input when the API fails.
func (s *Service) CleanText(ctx context.Context, text string, usage *Usage) string {
	if len(strings.TrimSpace(text)) < minCleanLen {
		return text
	}

	out, err := s.generate(ctx, s.clean, cleaningPrompt(text), usage)
	if err != nil {
		s.log.Warn("cleanup failed, keeping original", "error", err)
		return text
	}

	if out == "" {
		return text
	}

	return out
}

// CleanItem cleans an item's description, and its title when it is long
// enough to be prose rather than a name.
func (s *Service) CleanItem(ctx context.Context, item models.Item, usage *Usage) models.Item {
	item.Description = s.CleanText(ctx, item.Description, usage)

	if len(strings.TrimSpace(item.Title)) > minCleanLen {
		item.Title = s.CleanText(ctx, item.Title, usage)
	}

	return item
}

// CleanDigest cleans every item in place, working through each group with a
// bounded worker pool. It aborts between groups when ctx is cancelled.
func (s *Service) CleanDigest(ctx context.Context, d *models.Digest) (Usage, error) {
	var total Usage

	for _, g := range d.Groups() {
		if len(*g.Items) == 0 {
			continue
		}

		s.log.Info("cleaning items", "section", g.Section, "subcategory", g.Subcategory, "items", len(*g.Items))
		total.Add(s.mapItems(ctx, *g.Items, s.CleanItem))

		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}

	return total, nil
}
