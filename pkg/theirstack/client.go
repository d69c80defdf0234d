package theirstack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://api.theirstack.com"
	defaultSearchTimeout = 30 * time.Second
	defaultProbeTimeout  = 10 * time.Second

	maxResponseBody = 8 << 20
	maxErrorBody    = 64 << 10
)

// NewClient instantiates a TheirStack API client.
// A missing API key is a *ConfigError; the client never sends unauthenticated requests.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{Field: "api_key", Reason: "is required"}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ConfigError{Field: "base_url", Reason: fmt.Sprintf("%q is not an absolute URL", baseURL)}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	searchTimeout := cfg.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = defaultSearchTimeout
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}

	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       baseURL,
		httpClient:    httpClient,
		searchTimeout: searchTimeout,
		probeTimeout:  probeTimeout,
	}, nil
}

// Search performs exactly one POST /v1/jobs/search call
func (c *Client) Search(ctx context.Context, body SearchRequest) (Response, error) {
	if c == nil {
		return Response{}, &ConfigError{Field: "client", Reason: "is nil"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("theirstack: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("v1", "jobs", "search"), bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("theirstack: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, raw, err := c.do(req)
	if err != nil {
		return Response{}, err
	}

	if !json.Valid(raw) {
		return Response{}, &Error{Kind: ErrParse, StatusCode: status, Body: truncate(string(raw), maxErrorBody)}
	}

	return Response{StatusCode: status, Body: json.RawMessage(raw)}, nil
}

// Probe performs a lightweight GET /v1/health call with the shorter probe timeout
func (c *Client) Probe(ctx context.Context) (HealthStatus, error) {
	if c == nil {
		return HealthStatus{}, &ConfigError{Field: "client", Reason: "is nil"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("v1", "health"), nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("theirstack: build request: %w", err)
	}

	status, raw, err := c.do(req)
	if err != nil {
		return HealthStatus{}, err
	}

	return HealthStatus{StatusCode: status, Body: truncate(strings.TrimSpace(string(raw)), 512)}, nil
}

// do sends req with auth headers and classifies every non-2xx outcome
func (c *Client) do(req *http.Request) (int, []byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: ErrNetwork, Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, nil, classifyStatus(resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return resp.StatusCode, nil, &Error{Kind: ErrNetwork, StatusCode: resp.StatusCode, Cause: fmt.Errorf("read body: %w", err)}
	}

	return resp.StatusCode, raw, nil
}

func (c *Client) endpoint(parts ...string) string {
	u, _ := url.Parse(c.baseURL)
	u.Path = path.Join(append([]string{"/", u.Path}, parts...)...)
	return u.String()
}
