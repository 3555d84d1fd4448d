// Package importer wires extraction, parsing, validation and storage into a
// single resume import operation.
package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/rs/zerolog"
)

// Store persists parsed records. *db.DB satisfies it.
type Store interface {
	SaveImport(ctx context.Context, input *db.ImportInput) (*db.Import, error)
}

var _ Store = (*db.DB)(nil)

// Parser turns document text into a record. *parsing.Parser satisfies it.
type Parser interface {
	Parse(ctx context.Context, text string) (*types.ParsedResume, error)
}

var _ Parser = (*parsing.Parser)(nil)

// Result is the outcome of one import
type Result struct {
	// ID is set only when the record was stored
	ID       *uuid.UUID          `json:"id,omitempty"`
	Metadata *ingestion.Metadata `json:"metadata"`
	Resume   *types.ParsedResume `json:"resume"`
}

// Service runs resume imports
type Service struct {
	parser    Parser
	extractor ingestion.TextExtractor
	store     Store
}

// Option configures a Service
type Option func(*Service)

// WithExtractor replaces the PDF extractor
func WithExtractor(extractor ingestion.TextExtractor) Option {
	return func(s *Service) {
		s.extractor = extractor
	}
}

// WithParser replaces the parser passed to New
func WithParser(parser Parser) Option {
	return func(s *Service) {
		s.parser = parser
	}
}

// WithStore enables persistence of successful imports
func WithStore(store Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// New creates a Service. A nil parser uses parsing defaults.
func New(parser *parsing.Parser, opts ...Option) *Service {
	if parser == nil {
		parser = parsing.New()
	}
	s := &Service{
		parser:    parser,
		extractor: ingestion.NewPDFExtractor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stores reports whether imports are persisted
func (s *Service) Stores() bool {
	return s.store != nil
}

// ImportFile validates an upload, extracts its text and parses it
func (s *Service) ImportFile(ctx context.Context, filename string, data []byte) (*Result, error) {
	kind, err := ingestion.ValidateUpload(filename, data)
	if err != nil {
		return nil, err
	}

	doc, err := ingestion.ExtractorFor(kind, s.extractor).ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.importDocument(ctx, filename, doc)
}

// ImportText parses text that was already extracted
func (s *Service) ImportText(ctx context.Context, text string) (*Result, error) {
	return s.importDocument(ctx, "", &ingestion.Document{Text: text, Pages: 1})
}

func (s *Service) importDocument(ctx context.Context, filename string, doc *ingestion.Document) (*Result, error) {
	start := time.Now()
	log := zerolog.Ctx(ctx)

	resume, err := s.parser.Parse(ctx, doc.Text)
	if err != nil {
		return nil, err
	}

	if err := resume.Validate(); err != nil {
		return nil, &RecordError{Message: "parsed record violates invariants", Cause: err}
	}
	if err := schemas.ValidateRecord(resume); err != nil {
		return nil, &RecordError{Message: "parsed record violates schema", Cause: err}
	}

	result := &Result{
		Metadata: ingestion.NewMetadata(filename, ingestion.NormalizeText(doc.Text), doc.Pages),
		Resume:   resume,
	}

	if s.store != nil {
		saved, err := s.store.SaveImport(ctx, &db.ImportInput{
			FileName:   filename,
			TextHash:   result.Metadata.Hash,
			Pages:      result.Metadata.Pages,
			TextLength: result.Metadata.TextLength,
			Resume:     resume,
		})
		if err != nil {
			return nil, &StoreError{Message: "failed to save import", Cause: err}
		}
		result.ID = &saved.ID
	}

	log.Info().
		Str("file", filename).
		Int("pages", doc.Pages).
		Float64("confidence", resume.Confidence).
		Bool("stored", result.ID != nil).
		Dur("elapsed", time.Since(start)).
		Msg("resume imported")

	return result, nil
}
