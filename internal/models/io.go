package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDigestFile writes the digest as indented JSON, creating parent
// directories as needed. HTML escaping is disabled so URLs keep their
// ampersands.
func WriteDigestFile(path string, d *Digest) error {
	return writeDigest(path, d, true)
}

// WriteDigestFileCompact writes the digest without indentation.
func WriteDigestFileCompact(path string, d *Digest) error {
	return writeDigest(path, d, false)
}

func writeDigest(path string, d *Digest, pretty bool) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode digest: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ReadDigestFile loads a digest written by WriteDigestFile. Sections absent
// from the file come back as empty lists, never nil.
func ReadDigestFile(path string) (*Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	d := NewDigest()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse digest JSON: %w", err)
	}

	return d, nil
}
