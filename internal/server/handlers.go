package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/importer"
)

// TextImportRequest is the body of POST /imports/text
type TextImportRequest struct {
	Text string `json:"text"`
}

// ListImportsResponse is the body of GET /imports
type ListImportsResponse struct {
	Imports []db.ImportSummary `json:"imports"`
	Count   int                `json:"count"`
}

// handleImportFile parses an uploaded PDF or text file from the multipart field "file"
func (s *Server) handleImportFile(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		s.writeError(w, r, &http.MaxBytesError{Limit: s.maxUploadBytes})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.importer.ImportFile(r.Context(), header.Filename, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, resultStatus(result), result)
}

// handleImportText parses already extracted text
func (s *Server) handleImportText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req TextImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := s.importer.ImportText(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, resultStatus(result), result)
}

// handleGetImport returns a stored import with its record
func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		s.writeError(w, r, errStorageDisabled)
		return
	}
	id, ok := s.importID(w, r)
	if !ok {
		return
	}

	imp, err := s.repo.GetImport(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, imp)
}

// handleListImports returns recent imports, newest first
func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		s.writeError(w, r, errStorageDisabled)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	imports, err := s.repo.ListImports(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListImportsResponse{Imports: imports, Count: len(imports)})
}

// handleDeleteImport removes a stored import
func (s *Server) handleDeleteImport(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		s.writeError(w, r, errStorageDisabled)
		return
	}
	id, ok := s.importID(w, r)
	if !ok {
		return
	}

	if err := s.repo.DeleteImport(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// importID parses the {id} path value, writing a 400 when it is malformed
func (s *Server) importID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid import ID")
		return uuid.Nil, false
	}
	return id, true
}

// resultStatus is 201 when the import was stored and 200 otherwise
func resultStatus(result *importer.Result) int {
	if result.ID != nil {
		return http.StatusCreated
	}
	return http.StatusOK
}
