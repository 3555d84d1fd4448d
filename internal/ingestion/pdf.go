package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// Document is the text pulled out of an uploaded file
type Document struct {
	Text  string
	Pages int
}

// TextExtractor turns a document binary into one concatenated text blob
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (*Document, error)
}

// PDFExtractor extracts text from PDF files row by row so that line
// breaks survive for the downstream line heuristics.
type PDFExtractor struct {
	timeout time.Duration
}

// PDFOption configures a PDFExtractor
type PDFOption func(*PDFExtractor)

// WithTimeout bounds a single extraction
func WithTimeout(timeout time.Duration) PDFOption {
	return func(e *PDFExtractor) {
		e.timeout = timeout
	}
}

var _ TextExtractor = (*PDFExtractor)(nil)

// NewPDFExtractor creates a PDF extractor with a 30 second default timeout
func NewPDFExtractor(options ...PDFOption) *PDFExtractor {
	e := &PDFExtractor{timeout: 30 * time.Second}
	for _, option := range options {
		option(e)
	}
	return e
}

// ExtractText decodes data as a PDF and returns its text, pages joined by
// blank lines. Encrypted documents yield ErrEncryptedDocument.
func (e *PDFExtractor) ExtractText(ctx context.Context, data []byte) (doc *Document, err error) {
	start := time.Now()
	log := zerolog.Ctx(ctx)

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// the decoder panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ExtractionError{Source: "pdf", Message: "malformed document", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) || strings.Contains(err.Error(), "encrypted") {
			return nil, &ExtractionError{Source: "pdf", Message: "cannot decrypt document", Cause: ErrEncryptedDocument}
		}
		return nil, &ExtractionError{Source: "pdf", Message: "cannot open document", Cause: err}
	}

	var pages []string
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			return nil, &ExtractionError{Source: "pdf", Message: fmt.Sprintf("cannot read page %d", i), Cause: err}
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	full := strings.Join(pages, "\n\n")
	if strings.TrimSpace(full) == "" {
		return nil, &ExtractionError{Source: "pdf", Message: "no text layer", Cause: ErrNoText}
	}

	log.Debug().
		Int("pages", total).
		Int("chars", len(full)).
		Dur("elapsed", time.Since(start)).
		Msg("pdf text extracted")

	return &Document{Text: full, Pages: total}, nil
}

// pageText renders a page as one line per text row, top to bottom
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}

// PlainTextExtractor passes UTF-8 text uploads through unchanged
type PlainTextExtractor struct{}

var _ TextExtractor = PlainTextExtractor{}

// ExtractText returns data as text
func (PlainTextExtractor) ExtractText(_ context.Context, data []byte) (*Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &ExtractionError{Source: "text", Message: "empty upload", Cause: ErrNoText}
	}
	return &Document{Text: string(data), Pages: 1}, nil
}
