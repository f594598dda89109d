package merge

import (
	"llmdigest/internal/models"
)

// Extraction is the outcome of merging one batch of documents.
type Extraction struct {
	Digest    *models.Digest
	Documents []models.Document
	Range     models.DateRange
	Warnings  []Warning
}

// Engine folds a batch of newsletter documents into a single digest. It is
// stateless between runs; the same batch always merges to the same digest.
type Engine struct {
	parser *Parser
}

// NewEngine creates an engine with the default parser.
func NewEngine() *Engine {
	return &Engine{parser: NewParser()}
}

// Merge resolves the batch date range against the current year, orders the
// documents chronologically and folds every section into one digest.
func (e *Engine) Merge(batchID string, docs []models.Document) *Extraction {
	return e.merge(ResolveRange(batchID), docs)
}

// MergeAt is Merge with an explicit reference year, for reproducible runs.
func (e *Engine) MergeAt(batchID string, year int, docs []models.Document) *Extraction {
	return e.merge(ResolveRangeAt(batchID, year), docs)
}

func (e *Engine) merge(r models.DateRange, docs []models.Document) *Extraction {
	ordered := OrderDocuments(docs, r)

	ex := &Extraction{
		Digest:    models.NewDigest(),
		Documents: make([]models.Document, 0, len(ordered)),
		Range:     r,
	}

	for _, doc := range ordered {
		doc.Title = DocumentTitle(doc.Raw)
		ex.Documents = append(ex.Documents, doc)

		sections := SplitSections(doc.Raw)

		for _, section := range models.SectionNames {
			content := sections[section]
			if content == "" {
				continue
			}

			parsed := e.parser.ParseSection(section, content)
			ex.Warnings = append(ex.Warnings, parsed.Warnings...)
			extend(ex.Digest, section, parsed)
		}
	}

	return ex
}

// extend appends one section's parsed items onto the digest, preserving
// document order within every list.
func extend(d *models.Digest, section string, parsed SectionItems) {
	if parsed.Grouped != nil {
		for name, items := range parsed.Grouped {
			if dst := d.SubcategoryItems(section, name); dst != nil {
				*dst = append(*dst, items...)
			}
		}

		return
	}

	if dst := d.FlatItems(section); dst != nil {
		*dst = append(*dst, parsed.Flat...)
	}
}
