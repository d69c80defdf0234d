package theirstack

import (
	"encoding/json"
	"net/http"
	"time"
)

// Config defines TheirStack API client settings
type Config struct {
	APIKey        string
	BaseURL       string
	HTTPClient    *http.Client
	SearchTimeout time.Duration
	ProbeTimeout  time.Duration
}

// Client executes single calls against the TheirStack API.
// It never retries and knows nothing about job semantics.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    *http.Client
	searchTimeout time.Duration
	probeTimeout  time.Duration
}

// OrderBy sorts search results
type OrderBy struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// SearchRequest is the POST /v1/jobs/search body.
// Empty filters are omitted; Query in particular must never be sent as "".
type SearchRequest struct {
	Page                 int       `json:"page"`
	Limit                int       `json:"limit"`
	PostedAtMaxAgeDays   int       `json:"posted_at_max_age_days"`
	OrderBy              []OrderBy `json:"order_by,omitempty"`
	JobCountryCodeOr     []string  `json:"job_country_code_or,omitempty"`
	JobSeniorityOr       []string  `json:"job_seniority_or,omitempty"`
	EmploymentStatusesOr []string  `json:"employment_statuses_or,omitempty"`
	Query                string    `json:"q,omitempty"`
	IncludeTotalResults  bool      `json:"include_total_results"`
	BlurCompanyData      bool      `json:"blur_company_data"`
}

// Response is a successful reply whose body is known to be valid JSON.
// Its shape is left to the caller.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// HealthStatus is the outcome of a probe call
type HealthStatus struct {
	StatusCode int
	Body       string
}
