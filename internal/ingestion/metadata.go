package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume document
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	Format    string `json:"format,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw document
	Bytes     int    `json:"bytes"`
	Runes     int    `json:"runes"` // rune count of the extracted text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, raw []byte, text string) *Metadata {
	format, _ := DetectFormat(filename)
	return &Metadata{
		Filename:  filename,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
		Bytes:     len(raw),
		Runes:     utf8.RuneCountInString(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
