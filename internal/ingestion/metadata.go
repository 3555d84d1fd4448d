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
	FileName   string `json:"file_name,omitempty"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the normalized text
	Pages      int    `json:"pages"`
	TextLength int    `json:"text_length"` // in runes
}

// NewMetadata creates metadata for normalized text with the current timestamp
func NewMetadata(fileName, text string, pages int) *Metadata {
	return &Metadata{
		FileName:   fileName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(text),
		Pages:      pages,
		TextLength: utf8.RuneCountInString(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
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
