// Package client is a typed Go client for the tailor backend: a transport
// layer over the REST surface plus a Conversation controller that owns the
// chat state a UI would render.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client issues typed HTTP calls against a backend base URL. Every method
// makes exactly one network call; there are no retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client. Trailing slashes on baseURL are stripped.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// WithHTTPClient swaps the underlying HTTP client, e.g. for tests.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

// APIError is the single failure shape every call collapses to: transport
// errors, structured error bodies, and unstructured error bodies alike.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string { return e.Detail }

// UploadResult is the response of a resume upload.
type UploadResult struct {
	DocID       string `json:"doc_id"`
	FileName    string `json:"filename"`
	TextPreview string `json:"text_preview"`
	TextChars   int    `json:"text_chars"`

	// Raw holds the body when a 2xx response was not valid JSON.
	Raw string `json:"-"`
}

// ParseResult is the response of a heuristic parse.
type ParseResult struct {
	DocID  string          `json:"doc_id"`
	Resume json.RawMessage `json:"resume"`

	Raw string `json:"-"`
}

// ChatResult is the outcome of a chat turn.
type ChatResult struct {
	AssistantMessage  string `json:"assistant_message"`
	NeedsConfirmation bool   `json:"needs_confirmation"`
	Status            string `json:"status"`

	Raw string `json:"-"`
}

// TailorResult is the outcome of a tailoring turn.
type TailorResult struct {
	AssistantMessage  string   `json:"assistant_message"`
	EditsSummary      []string `json:"edits_summary"`
	NeedsConfirmation bool     `json:"needs_confirmation"`
	Status            string   `json:"status"`

	Raw string `json:"-"`
}

// ExportResult describes a rendered export artifact.
type ExportResult struct {
	DocID            string `json:"doc_id"`
	ExportKey        string `json:"export_key"`
	DownloadURL      string `json:"download_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`

	Raw string `json:"-"`
}

// JobSearchRequest is the search form. MinSalaryUSD deliberately has no
// omitempty: the backend expects the key present, as a number or null.
type JobSearchRequest struct {
	Role         string  `json:"role"`
	Location     *string `json:"location,omitempty"`
	MinSalaryUSD *int    `json:"min_salary_usd"`
	Limit        int     `json:"limit"`
}

// Job is one listing from a search.
type Job struct {
	JobID       string `json:"job_id"`
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	ApplyURL    string `json:"apply_url"`
	Description string `json:"description"`
	DatePosted  string `json:"date_posted"`
}

// JobSearchResult is the response of a job search.
type JobSearchResult struct {
	Role    string `json:"role"`
	Results []Job  `json:"results"`

	Raw string `json:"-"`
}

// UploadResume uploads a resume file and returns the extraction summary.
func (c *Client) UploadResume(ctx context.Context, fileName string, content io.Reader) (UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return UploadResult{}, &APIError{Detail: err.Error()}
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, &APIError{Detail: err.Error()}
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, &APIError{Detail: err.Error()}
	}

	var out UploadResult
	err = c.do(ctx, http.MethodPost, "/api/resume", writer.FormDataContentType(), &body, "resume upload failed", &out, &out.Raw)
	return out, err
}

// ParseResume runs the heuristic parse for an uploaded document.
func (c *Client) ParseResume(ctx context.Context, docID string) (ParseResult, error) {
	var out ParseResult
	err := c.postJSON(ctx, "/api/resume/"+docID+"/parse", nil, "resume parse failed", &out, &out.Raw)
	return out, err
}

// UploadAndParse uploads then parses, sequentially. Dependent operations are
// only meaningful once both steps complete.
func (c *Client) UploadAndParse(ctx context.Context, fileName string, content io.Reader) (UploadResult, ParseResult, error) {
	uploaded, err := c.UploadResume(ctx, fileName, content)
	if err != nil {
		return UploadResult{}, ParseResult{}, err
	}
	parsed, err := c.ParseResume(ctx, uploaded.DocID)
	if err != nil {
		return uploaded, ParseResult{}, err
	}
	return uploaded, parsed, nil
}

// Chat sends one conversational message for a document.
func (c *Client) Chat(ctx context.Context, docID, message string) (ChatResult, error) {
	var out ChatResult
	err := c.postJSON(ctx, "/api/resume/"+docID+"/chat", map[string]string{"message": message}, "chat failed", &out, &out.Raw)
	return out, err
}

// Tailor requests a resume rewrite against a job description.
func (c *Client) Tailor(ctx context.Context, docID, jobDescription string) (TailorResult, error) {
	var out TailorResult
	err := c.postJSON(ctx, "/api/resume/"+docID+"/tailor", map[string]string{"job_description": jobDescription}, "tailoring failed", &out, &out.Raw)
	return out, err
}

// Export renders the latest draft and returns a download URL.
func (c *Client) Export(ctx context.Context, docID string) (ExportResult, error) {
	var out ExportResult
	err := c.postJSON(ctx, "/api/resume/"+docID+"/export", nil, "export failed", &out, &out.Raw)
	return out, err
}

// SearchJobs proxies a role search to the backend.
func (c *Client) SearchJobs(ctx context.Context, req JobSearchRequest) (JobSearchResult, error) {
	var out JobSearchResult
	err := c.postJSON(ctx, "/api/jobs/search", req, "job search failed", &out, &out.Raw)
	return out, err
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, genericMsg string, out any, raw *string) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Detail: err.Error()}
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPost, path, contentType, body, genericMsg, out, raw)
}

// do performs one request and normalizes every failure into *APIError. A 2xx
// body that is not valid JSON is tolerated: the raw text is kept and the
// typed result stays zero.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, genericMsg string, out any, raw *string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Detail: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Detail: deriveErrorMessage(data, genericMsg)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		*raw = string(data)
	}
	return nil
}

// deriveErrorMessage prefers a JSON `detail` field, then the raw body text,
// then the generic per-operation message.
func deriveErrorMessage(body []byte, genericMsg string) string {
	var structured struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Detail != "" {
		return structured.Detail
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return genericMsg
}
