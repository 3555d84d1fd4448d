package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-importer/internal/types"
)

// DefaultListLimit is used when a non-positive limit is passed to ListImports
const DefaultListLimit = 50

// MaxListLimit caps ListImports page sizes
const MaxListLimit = 500

// Import is a stored resume import
type Import struct {
	ID         uuid.UUID           `json:"id"`
	FileName   string              `json:"file_name"`
	TextHash   string              `json:"text_hash"`
	Pages      int                 `json:"pages"`
	TextLength int                 `json:"text_length"`
	Confidence float64             `json:"confidence"`
	Resume     *types.ParsedResume `json:"resume"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ImportSummary is an import without its record, used in listings
type ImportSummary struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	TextHash   string    `json:"text_hash"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImportInput contains the fields needed to store an import
type ImportInput struct {
	FileName   string
	TextHash   string
	Pages      int
	TextLength int
	Resume     *types.ParsedResume
}
