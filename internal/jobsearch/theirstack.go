package jobsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrProviderUnavailable wraps transport and non-2xx failures from the
// upstream job board.
var ErrProviderUnavailable = errors.New("job search provider unavailable")

// ErrNotConfigured means no API key is set.
var ErrNotConfigured = errors.New("job search is not configured")

// Searcher finds job listings for a role.
type Searcher interface {
	Search(ctx context.Context, req JobSearchRequest) ([]JobResult, error)
}

// maxPostedAgeDays keeps results fresh; stale listings are rarely worth
// tailoring a resume for.
const maxPostedAgeDays = 14

// TheirStackClient calls the TheirStack jobs API.
type TheirStackClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewTheirStackClient constructs a client. baseURL defaults to the public
// API host when empty.
func NewTheirStackClient(baseURL, apiKey string) *TheirStackClient {
	if baseURL == "" {
		baseURL = "https://api.theirstack.com"
	}
	return &TheirStackClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type searchPayload struct {
	Page                 int      `json:"page"`
	Limit                int      `json:"limit"`
	PostedAtMaxAgeDays   int      `json:"posted_at_max_age_days"`
	JobCountryCodeOr     []string `json:"job_country_code_or"`
	JobTitleOr           []string `json:"job_title_or"`
	JobLocationPatternOr []string `json:"job_location_pattern_or,omitempty"`
	MinAnnualSalaryUSD   int      `json:"min_annual_salary_usd,omitempty"`
}

type rawCompany struct {
	Name string `json:"name"`
}

// rawJob tolerates the provider's shifting field names.
type rawJob struct {
	ID              json.Number `json:"id"`
	JobTitle        string      `json:"job_title"`
	Company         string      `json:"company"`
	CompanyName     string      `json:"company_name"`
	CompanyObject   rawCompany  `json:"company_object"`
	Location        string      `json:"location"`
	ShortLocation   string      `json:"short_location"`
	SalaryString    string      `json:"salary_string"`
	MinAnnualSalary json.Number `json:"min_annual_salary_usd"`
	MaxAnnualSalary json.Number `json:"max_annual_salary_usd"`
	URL             string      `json:"url"`
	FinalURL        string      `json:"final_url"`
	Description     string      `json:"description"`
	DatePosted      string      `json:"date_posted"`
}

type searchResponse struct {
	Data    []rawJob `json:"data"`
	Jobs    []rawJob `json:"jobs"`
	Results []rawJob `json:"results"`
}

// Search posts the role query and normalizes the listings.
func (c *TheirStackClient) Search(ctx context.Context, req JobSearchRequest) ([]JobResult, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	payload := searchPayload{
		Page:               0,
		Limit:              req.Limit,
		PostedAtMaxAgeDays: maxPostedAgeDays,
		JobCountryCodeOr:   []string{"US"},
		JobTitleOr:         []string{req.Role},
	}
	if req.Location != nil {
		payload.JobLocationPatternOr = []string{*req.Location}
	}
	if req.MinSalaryUSD != nil {
		payload.MinAnnualSalaryUSD = *req.MinSalaryUSD
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrProviderUnavailable, err)
	}

	raw := parsed.Data
	if len(raw) == 0 {
		raw = parsed.Jobs
	}
	if len(raw) == 0 {
		raw = parsed.Results
	}

	results := make([]JobResult, 0, len(raw))
	for _, job := range raw {
		results = append(results, normalizeJob(job))
	}
	return results, nil
}

func normalizeJob(job rawJob) JobResult {
	return JobResult{
		JobID:       job.ID.String(),
		JobTitle:    job.JobTitle,
		Company:     companyName(job),
		Location:    firstNonEmpty(job.ShortLocation, job.Location),
		Salary:      salaryString(job),
		ApplyURL:    firstNonEmpty(job.FinalURL, job.URL),
		Description: job.Description,
		DatePosted:  job.DatePosted,
	}
}

func companyName(job rawJob) string {
	return firstNonEmpty(job.CompanyObject.Name, job.CompanyName, job.Company)
}

// salaryString prefers the provider's own formatting and falls back to
// synthesizing a range from the annual bounds.
func salaryString(job rawJob) string {
	if job.SalaryString != "" {
		return job.SalaryString
	}
	min := salaryNumber(job.MinAnnualSalary)
	max := salaryNumber(job.MaxAnnualSalary)
	switch {
	case min != "" && max != "" && min != max:
		return "$" + min + " - $" + max
	case min != "":
		return "$" + min + "+"
	case max != "":
		return "up to $" + max
	default:
		return ""
	}
}

func salaryNumber(n json.Number) string {
	if n.String() == "" {
		return ""
	}
	if f, err := n.Float64(); err == nil && f > 0 {
		return strconv.FormatInt(int64(f), 10)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
