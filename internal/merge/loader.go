package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"llmdigest/internal/models"
	"llmdigest/pkg/docmeta"
)

// ErrNoDocuments means the batch directory holds no markdown files.
var ErrNoDocuments = errors.New("no markdown files found")

// LoadDocuments reads every markdown file in dir and returns one document
// per file, in file name order. A signed metadata trailer left by the
// fetcher is stripped from the content; chronological ordering happens
// later, during the merge.
func LoadDocuments(dir string) ([]models.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch directory: %w", err)
	}

	var docs []models.Document

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		_, content := docmeta.Extract(string(data))

		docs = append(docs, models.Document{Name: entry.Name(), Raw: content})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	return docs, nil
}
