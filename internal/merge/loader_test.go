package merge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"llmdigest/pkg/docmeta"
)

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()

	plain := "Title: LLM Daily: July 06, 2025\n\n## HIGHLIGHTS\n\n- One thing happened.\n"
	signed := docmeta.Sign(
		"Title: LLM Daily: July 07, 2025\n\n## HIGHLIGHTS\n\n- Another thing happened.\n",
		"https://example.com/llm-daily-july-07-2025/",
		time.Date(2025, time.July, 7, 12, 0, 0, 0, time.UTC),
	)

	writeFile := func(name, content string) {
		t.Helper()

		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing %s failed: %v", name, err)
		}
	}

	writeFile("7-6.md", plain)
	writeFile("7-7.md", signed)
	writeFile("notes.txt", "not a report")

	docs, err := LoadDocuments(dir)
	if err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("loaded %d documents, want 2", len(docs))
	}

	if docs[0].Name != "7-6.md" || docs[1].Name != "7-7.md" {
		t.Errorf("document order = %s, %s, want name order", docs[0].Name, docs[1].Name)
	}

	for _, doc := range docs {
		if strings.Contains(doc.Raw, docmeta.TagStart) {
			t.Errorf("%s still carries a metadata trailer", doc.Name)
		}
	}

	if !strings.Contains(docs[1].Raw, "Another thing happened.") {
		t.Error("signed document lost its content when the trailer was stripped")
	}
}

func TestLoadDocuments_EmptyDirectory(t *testing.T) {
	_, err := LoadDocuments(t.TempDir())

	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("LoadDocuments() error = %v, want ErrNoDocuments", err)
	}
}

func TestLoadDocuments_MissingDirectory(t *testing.T) {
	_, err := LoadDocuments(filepath.Join(t.TempDir(), "absent"))

	if err == nil {
		t.Error("Expected an error for a missing directory, got nil")
	}
}
