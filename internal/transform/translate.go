package transform

import (
	"context"
	"strings"

	"llmdigest/internal/models"
)

// minTranslateLen is the threshold below which texts are left alone; very
// short strings are usually technical terms that must not be translated.
const minTranslateLen = 10

// TranslateText translates one text to Chinese, preserving technical
// terms. Short texts come back unchanged, and so does the input when the
// API fails.
func (s *Service) TranslateText(ctx context.Context, text string, usage *Usage) string {
	if len(strings.TrimSpace(text)) < minTranslateLen {
		return text
	}

	out, err := s.generate(ctx, s.translate, translationPrompt(text), usage)
	if err != nil {
		s.log.Warn("translation failed, keeping original", "error", err)
		return text
	}

	if out == "" {
		return text
	}

	return out
}

// TranslateItem translates an item's description and title. Research paper
// titles stay in their original language.
func (s *Service) TranslateItem(ctx context.Context, section string, item models.Item, usage *Usage) models.Item {
	item.Description = s.TranslateText(ctx, item.Description, usage)

	if section != models.SectionResearch && len(strings.TrimSpace(item.Title)) > minTranslateLen {
		item.Title = s.TranslateText(ctx, item.Title, usage)
	}

	return item
}

// TranslateSection translates every item under one section in place.
func (s *Service) TranslateSection(ctx context.Context, d *models.Digest, section string) (Usage, error) {
	var total Usage

	for _, g := range d.Groups() {
		if g.Section != section || len(*g.Items) == 0 {
			continue
		}

		s.log.Info("translating items", "section", g.Section, "subcategory", g.Subcategory, "items", len(*g.Items))
		total.Add(s.mapItems(ctx, *g.Items, func(ctx context.Context, item models.Item, u *Usage) models.Item {
			return s.TranslateItem(ctx, section, item, u)
		}))

		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}

	return total, nil
}

// TranslateDigest translates every item in place, section by section.
func (s *Service) TranslateDigest(ctx context.Context, d *models.Digest) (Usage, error) {
	var total Usage

	for _, section := range models.SectionNames {
		u, err := s.TranslateSection(ctx, d, section)
		total.Add(u)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}
