// Package docmeta stamps downloaded newsletter files with provenance metadata
// and verifies them on later runs.
package docmeta

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart opens the metadata trailer block.
	TagStart = "<!-- DIGEST_META_START"
	// TagEnd closes the metadata trailer block.
	TagEnd = "DIGEST_META_END -->"
)

// Verification errors.
var (
	ErrNoMetaBlock = errors.New("no metadata block found")
	ErrNoHash      = errors.New("no hash found in metadata")
	ErrHashChanged = errors.New("content hash mismatch")
)

// Meta records where and when a document was fetched.
type Meta struct {
	SourceURL string
	FetchedAt time.Time
	Hash      string
}

// blockPattern matches the entire metadata block including tags.
var blockPattern = regexp.MustCompile(`(?s)<!--\s*DIGEST_META_START\s*\n(.*?)\n\s*DIGEST_META_END\s*-->`)

// Extract removes the metadata block from content and returns the parsed
// fields alongside the cleaned content. The cleaned content is what gets
// hashed; callers parse it, never the stamped form.
func Extract(content string) (*Meta, string) {
	match := blockPattern.FindStringSubmatch(content)
	clean := blockPattern.ReplaceAllString(content, "")
	clean = strings.TrimRight(clean, "\n")

	if len(match) < 2 {
		return nil, clean
	}

	meta := &Meta{}

	for _, line := range strings.Split(match[1], "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "SOURCE_URL":
			meta.SourceURL = val
		case "FETCHED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.FetchedAt = t
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, clean
}

// Hash computes the SHA-256 hash of the content with any metadata block
// stripped first.
func Hash(content string) string {
	_, clean := Extract(content)
	sum := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(sum[:])
}

// Sign appends or replaces the metadata block with a fresh hash and timestamp.
func Sign(content, sourceURL string, fetchedAt time.Time) string {
	_, clean := Extract(content)
	hash := Hash(clean)

	block := fmt.Sprintf("\n\n%s\nSOURCE_URL: %s\nFETCHED_AT: %s\nHASH: %s\n%s",
		TagStart, sourceURL, fetchedAt.UTC().Format(time.RFC3339), hash, TagEnd)

	return clean + block
}

// Verify checks that the content still matches the hash recorded in its
// metadata block.
func Verify(content string) (bool, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return false, ErrNoMetaBlock
	}

	if meta.Hash == "" {
		return false, ErrNoHash
	}

	calculated := Hash(clean)
	if calculated != meta.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashChanged, meta.Hash, calculated)
	}

	return true, nil
}
