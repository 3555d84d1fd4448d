package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/importer"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/server/ratelimit"
	"github.com/jonathan/resume-importer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `JANE SMITH | Platform Engineer
jane.smith@example.com | (415) 555-0199 | Austin, TX

Summary
Platform engineer focused on developer tooling, CI pipelines and reliable infrastructure.

Experience
Platform Engineer at Initech | Mar 2021 - Present
- Rebuilt the deployment pipeline.

Skills
Go, Terraform, Kubernetes
`

// mockRepo is an in-memory Repository and importer.Store
type mockRepo struct {
	imports map[uuid.UUID]*db.Import
	pingErr error
	limit   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{imports: make(map[uuid.UUID]*db.Import)}
}

func (m *mockRepo) SaveImport(_ context.Context, input *db.ImportInput) (*db.Import, error) {
	imp := &db.Import{
		ID:         uuid.New(),
		FileName:   input.FileName,
		TextHash:   input.TextHash,
		Confidence: input.Resume.Confidence,
		Resume:     input.Resume,
		CreatedAt:  time.Now(),
	}
	m.imports[imp.ID] = imp
	return imp, nil
}

func (m *mockRepo) GetImport(_ context.Context, id uuid.UUID) (*db.Import, error) {
	imp, ok := m.imports[id]
	if !ok {
		return nil, db.ErrImportNotFound
	}
	return imp, nil
}

func (m *mockRepo) ListImports(_ context.Context, limit int) ([]db.ImportSummary, error) {
	m.limit = limit
	out := []db.ImportSummary{}
	for _, imp := range m.imports {
		out = append(out, db.ImportSummary{ID: imp.ID, FileName: imp.FileName, Confidence: imp.Confidence})
	}
	return out, nil
}

func (m *mockRepo) DeleteImport(_ context.Context, id uuid.UUID) error {
	if _, ok := m.imports[id]; !ok {
		return db.ErrImportNotFound
	}
	delete(m.imports, id)
	return nil
}

func (m *mockRepo) Ping(context.Context) error {
	return m.pingErr
}

// stubExtractor returns a fixed document or error for PDF uploads
type stubExtractor struct {
	doc *ingestion.Document
	err error
}

func (s stubExtractor) ExtractText(context.Context, []byte) (*ingestion.Document, error) {
	return s.doc, s.err
}

func newTestHandler(t *testing.T, repo Repository, opts ...importer.Option) http.Handler {
	t.Helper()
	s := New(Config{
		MaxUploadBytes: 1 << 20,
		RateLimit:      &ratelimit.Config{Enabled: false},
	}, importer.New(nil, opts...), repo)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/imports", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHealth_NoStorage(t *testing.T) {
	h := newTestHandler(t, nil)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "disabled", resp["storage"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	repo := newMockRepo()
	repo.pingErr = errors.New("connection refused")
	h := newTestHandler(t, repo)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestImportFile_TextUpload(t *testing.T) {
	h := newTestHandler(t, nil)

	w := serve(h, multipartRequest(t, "file", "resume.txt", []byte(sampleResume)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result importer.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Nil(t, result.ID)
	assert.Equal(t, "resume.txt", result.Metadata.FileName)
	require.NotNil(t, result.Resume)
	require.NotNil(t, result.Resume.PersonalInfo)
	assert.Equal(t, "jane.smith@example.com", result.Resume.PersonalInfo.Email)
}

func TestImportFile_PDFStored(t *testing.T) {
	repo := newMockRepo()
	extractor := stubExtractor{doc: &ingestion.Document{Text: sampleResume, Pages: 1}}
	h := newTestHandler(t, repo, importer.WithExtractor(extractor), importer.WithStore(repo))

	w := serve(h, multipartRequest(t, "file", "resume.pdf", []byte("%PDF-1.7 stub")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result importer.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.ID)
	assert.Contains(t, repo.imports, *result.ID)
}

func TestImportFile_Errors(t *testing.T) {
	encrypted := &ingestion.ExtractionError{Source: "pdf", Message: "cannot decrypt document", Cause: ingestion.ErrEncryptedDocument}

	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		expected int
	}{
		{
			name:     "Missing file field",
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "upload", "resume.txt", []byte(sampleResume)) },
			expected: http.StatusBadRequest,
		},
		{
			name:     "Unsupported extension",
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "file", "resume.docx", []byte("PK")) },
			expected: http.StatusBadRequest,
		},
		{
			name:     "PDF extension with text content",
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "file", "resume.pdf", []byte(sampleResume)) },
			expected: http.StatusBadRequest,
		},
		{
			name:     "Encrypted PDF",
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "file", "resume.pdf", []byte("%PDF-1.4")) },
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "Too little text",
			req:      func(t *testing.T) *http.Request { return multipartRequest(t, "file", "resume.txt", []byte("Jane Smith")) },
			expected: http.StatusUnprocessableEntity,
		},
		{
			name: "Not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/imports", strings.NewReader("plain"))
			},
			expected: http.StatusBadRequest,
		},
	}

	h := newTestHandler(t, nil, importer.WithExtractor(stubExtractor{err: encrypted}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, tt.req(t))
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
			assert.NotEmpty(t, decodeError(t, w))
		})
	}
}

func TestImportFile_TooLarge(t *testing.T) {
	s := New(Config{MaxUploadBytes: 256, RateLimit: &ratelimit.Config{Enabled: false}}, importer.New(nil), nil)
	t.Cleanup(s.rateLimiter.Stop)

	w := serve(s.Handler(), multipartRequest(t, "file", "resume.txt", []byte(strings.Repeat("a", 1024))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestImportText(t *testing.T) {
	h := newTestHandler(t, nil)

	body, err := json.Marshal(TextImportRequest{Text: sampleResume})
	require.NoError(t, err)
	w := serve(h, httptest.NewRequest(http.MethodPost, "/imports/text", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result importer.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.Metadata.FileName)
	assert.Equal(t, 1, result.Metadata.Pages)
	assert.NotEmpty(t, result.Resume.Skills)
}

func TestImportText_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "Malformed JSON", body: `{"text":`, expected: http.StatusBadRequest},
		{name: "Empty text", body: `{"text": "   "}`, expected: http.StatusBadRequest},
		{name: "Too short", body: `{"text": "Jane Smith\njane@example.com"}`, expected: http.StatusUnprocessableEntity},
	}

	h := newTestHandler(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, httptest.NewRequest(http.MethodPost, "/imports/text", strings.NewReader(tt.body)))
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestGetImport(t *testing.T) {
	repo := newMockRepo()
	saved, err := repo.SaveImport(context.Background(), &db.ImportInput{FileName: "a.pdf", Resume: types.NewParsedResume()})
	require.NoError(t, err)
	h := newTestHandler(t, repo)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/imports/"+saved.ID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got db.Import
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "a.pdf", got.FileName)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/imports/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/imports/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListImports(t *testing.T) {
	repo := newMockRepo()
	_, err := repo.SaveImport(context.Background(), &db.ImportInput{Resume: types.NewParsedResume()})
	require.NoError(t, err)
	h := newTestHandler(t, repo)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/imports?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp ListImportsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 5, repo.limit)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/imports?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = serve(h, httptest.NewRequest(http.MethodGet, "/imports?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImport(t *testing.T) {
	repo := newMockRepo()
	saved, err := repo.SaveImport(context.Background(), &db.ImportInput{Resume: types.NewParsedResume()})
	require.NoError(t, err)
	h := newTestHandler(t, repo)

	w := serve(h, httptest.NewRequest(http.MethodDelete, "/imports/"+saved.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.imports)

	w = serve(h, httptest.NewRequest(http.MethodDelete, "/imports/"+saved.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryEndpoints_NoStorage(t *testing.T) {
	h := newTestHandler(t, nil)
	id := uuid.NewString()

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/imports", nil),
		httptest.NewRequest(http.MethodGet, "/imports/"+id, nil),
		httptest.NewRequest(http.MethodDelete, "/imports/"+id, nil),
	} {
		w := serve(h, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, "%s %s", req.Method, req.URL.Path)
	}
}

func TestMiddleware_CORSPreflight(t *testing.T) {
	h := newTestHandler(t, nil)

	w := serve(h, httptest.NewRequest(http.MethodOptions, "/imports", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestMiddleware_RequestID(t *testing.T) {
	h := newTestHandler(t, nil)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = serve(h, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestMiddleware_RateLimit(t *testing.T) {
	s := New(Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules:         []ratelimit.Rule{{Method: "POST", Path: "/imports/text", Limit: 1, Window: time.Hour}},
	}}, importer.New(nil), nil)
	t.Cleanup(s.rateLimiter.Stop)
	h := s.Handler()

	body := fmt.Sprintf(`{"text": %q}`, sampleResume)
	w := serve(h, httptest.NewRequest(http.MethodPost, "/imports/text", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = serve(h, httptest.NewRequest(http.MethodPost, "/imports/text", strings.NewReader(body)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// other routes use the default bucket
	w = serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unsupported", fmt.Errorf("%w: extension .doc not allowed", ingestion.ErrUnsupportedFile), http.StatusBadRequest},
		{"not found", db.ErrImportNotFound, http.StatusNotFound},
		{"empty document", &parsing.EmptyDocumentError{Length: 3, Minimum: 100}, http.StatusUnprocessableEntity},
		{"extraction", &ingestion.ExtractionError{Source: "pdf", Message: "cannot open document"}, http.StatusUnprocessableEntity},
		{"storage disabled", errStorageDisabled, http.StatusServiceUnavailable},
		{"deadline", fmt.Errorf("extract: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"store failure", &importer.StoreError{Message: "failed to save import", Cause: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()
	s.writeError(w, httptest.NewRequest(http.MethodGet, "/imports", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, w))
}
