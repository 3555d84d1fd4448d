package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractor_InvalidDocument(t *testing.T) {
	extractor := NewPDFExtractor()

	doc, err := extractor.ExtractText(context.Background(), []byte("%PDF-1.4 truncated"))
	require.Error(t, err)
	assert.Nil(t, doc)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "pdf", extractionErr.Source)
}

func TestPDFExtractor_EmptyInput(t *testing.T) {
	_, err := NewPDFExtractor().ExtractText(context.Background(), nil)

	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestNewPDFExtractor_Options(t *testing.T) {
	assert.Equal(t, 30*time.Second, NewPDFExtractor().timeout)
	assert.Equal(t, time.Second, NewPDFExtractor(WithTimeout(time.Second)).timeout)
}

func TestPlainTextExtractor(t *testing.T) {
	doc, err := PlainTextExtractor{}.ExtractText(context.Background(), []byte("John Doe\nEngineer"))
	require.NoError(t, err)
	assert.Equal(t, "John Doe\nEngineer", doc.Text)
	assert.Equal(t, 1, doc.Pages)

	_, err = PlainTextExtractor{}.ExtractText(context.Background(), []byte("  \n "))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractionError(t *testing.T) {
	err := &ExtractionError{Source: "pdf", Message: "cannot decrypt document", Cause: ErrEncryptedDocument}

	assert.Equal(t, "extraction error (pdf): cannot decrypt document: document is encrypted", err.Error())
	assert.ErrorIs(t, err, ErrEncryptedDocument)
	assert.Equal(t, "extraction error (text): empty", (&ExtractionError{Source: "text", Message: "empty"}).Error())
}
