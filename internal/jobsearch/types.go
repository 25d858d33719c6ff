package jobsearch

import (
	"fmt"
	"strings"
)

// JobSearchRequest is the search form forwarded to the provider.
type JobSearchRequest struct {
	Role         string  `json:"role"`
	Location     *string `json:"location,omitempty"`
	MinSalaryUSD *int    `json:"min_salary_usd"`
	Limit        int     `json:"limit,omitempty"`
}

// DefaultLimit applies when the caller omits limit.
const DefaultLimit = 10

// usStates covers the two-letter codes accepted in "City, ST" locations.
var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {},
}

// Validate normalizes the request in place and reports the first problem.
func (r *JobSearchRequest) Validate() error {
	r.Role = strings.TrimSpace(r.Role)
	if r.Role == "" {
		return fmt.Errorf("role is required")
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must be positive")
	}
	if r.MinSalaryUSD != nil && *r.MinSalaryUSD <= 0 {
		return fmt.Errorf("min_salary_usd must be positive")
	}
	if r.Location != nil {
		loc := strings.TrimSpace(*r.Location)
		if loc == "" {
			r.Location = nil
			return nil
		}
		city, state, ok := splitLocation(loc)
		if !ok {
			return fmt.Errorf("location must look like \"City, ST\"")
		}
		if _, known := usStates[state]; !known {
			return fmt.Errorf("unknown US state code %q", state)
		}
		normalized := city + ", " + state
		r.Location = &normalized
	}
	return nil
}

func splitLocation(loc string) (city, state string, ok bool) {
	idx := strings.LastIndex(loc, ",")
	if idx < 0 {
		return "", "", false
	}
	city = strings.TrimSpace(loc[:idx])
	state = strings.ToUpper(strings.TrimSpace(loc[idx+1:]))
	if city == "" || len(state) != 2 {
		return "", "", false
	}
	return city, state, true
}

// JobResult is one normalized job listing.
type JobResult struct {
	JobID       string `json:"job_id"`
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	ApplyURL    string `json:"apply_url"`
	Description string `json:"description"`
	DatePosted  string `json:"date_posted"`
}

// JobSearchResponse wraps the results with the searched role.
type JobSearchResponse struct {
	Role    string      `json:"role"`
	Results []JobResult `json:"results"`
}
