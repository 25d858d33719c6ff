package documents

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
		LLM:   llm.PlaceholderClient{},
	}

	router := gin.New()
	api := router.Group("/api")
	NewHandler(svc).RegisterRoutes(api)
	return router, svc
}

func multipartUpload(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

const sampleText = "Ada Lovelace\nada@example.com\n555-123-4567\n\nEXPERIENCE\nAnalytical Engines Ltd"

func TestUploadTxtResume(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "resume.txt", sampleText)
	req := httptest.NewRequest(http.MethodPost, "/api/resume", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DocID == "" {
		t.Error("doc_id missing")
	}
	if resp.Filename != "resume.txt" {
		t.Errorf("filename = %q", resp.Filename)
	}
	if resp.TextChars != len(sampleText) {
		t.Errorf("text_chars = %d, want %d", resp.TextChars, len(sampleText))
	}
	if resp.TextPreview == "" {
		t.Error("text_preview missing")
	}
}

func TestUploadUnsupportedType(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "resume.png", "binary junk")
	req := httptest.NewRequest(http.MethodPost, "/api/resume", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errBody.Detail == "" {
		t.Error("error body must carry detail")
	}
}

func TestUploadMissingFileField(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/resume", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestParseAfterUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "resume.txt", sampleText)
	req := httptest.NewRequest(http.MethodPost, "/api/resume", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rec.Code)
	}
	var uploaded UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode upload: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/resume/"+uploaded.DocID+"/parse", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("parse status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var parsed ParseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode parse: %v", err)
	}
	if parsed.Resume.Header.Name != "Ada Lovelace" {
		t.Errorf("name = %q", parsed.Resume.Header.Name)
	}
	if parsed.Resume.Header.Email != "ada@example.com" {
		t.Errorf("email = %q", parsed.Resume.Header.Email)
	}
}

func TestParseUnknownDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/resume/nope/parse", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errBody.Detail != "document not found" {
		t.Errorf("detail = %q", errBody.Detail)
	}
}
