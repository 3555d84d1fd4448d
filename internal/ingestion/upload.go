package ingestion

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind identifies how an upload is turned into text
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindText Kind = "text"
)

var pdfMagic = []byte("%PDF")

// ValidateUpload checks the extension whitelist and that the content
// matches the extension.
func ValidateUpload(filename string, data []byte) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		if !bytes.HasPrefix(data, pdfMagic) {
			return "", fmt.Errorf("%w: content of %q is not a PDF", ErrUnsupportedFile, filename)
		}
		return KindPDF, nil
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %q is not valid UTF-8 text", ErrUnsupportedFile, filename)
		}
		return KindText, nil
	case "":
		if bytes.HasPrefix(data, pdfMagic) {
			return KindPDF, nil
		}
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFile, filename)
	default:
		return "", fmt.Errorf("%w: extension %s not allowed", ErrUnsupportedFile, ext)
	}
}

// ExtractorFor returns the extractor for an upload kind
func ExtractorFor(kind Kind, pdfExtractor TextExtractor) TextExtractor {
	if kind == KindText {
		return PlainTextExtractor{}
	}
	return pdfExtractor
}
