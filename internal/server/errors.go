package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/logger"
	"github.com/jonathan/resume-importer/internal/parsing"
)

// errStorageDisabled is returned by history endpoints when no database is configured
var errStorageDisabled = errors.New("import history is disabled: no database configured")

// HTTPStatus maps an import error to a response status
func HTTPStatus(err error) int {
	var tooLarge *http.MaxBytesError
	var extractErr *ingestion.ExtractionError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingestion.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrImportNotFound):
		return http.StatusNotFound
	case errors.Is(err, parsing.ErrEmptyDocument),
		errors.Is(err, ingestion.ErrEncryptedDocument),
		errors.Is(err, ingestion.ErrNoText),
		errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server-side failures and writes the mapped status.
// Internal error details are not exposed to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = http.StatusText(status)
	}
	s.errorResponse(w, status, message)
}
