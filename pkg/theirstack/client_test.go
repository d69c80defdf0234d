package theirstack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "secret", BaseURL: server.URL, SearchTimeout: time.Second, ProbeTimeout: time.Second})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{APIKey: "  "})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "api_key", cfgErr.Field)
}

func TestNewClient_RejectsRelativeBaseURL(t *testing.T) {
	_, err := NewClient(Config{APIKey: "k", BaseURL: "api.example.com"})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "base_url", cfgErr.Field)
}

func TestSearch_SendsAuthorizedJSONPost(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/jobs/search", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	resp, err := client.Search(context.Background(), SearchRequest{Page: 2, Limit: 5, PostedAtMaxAgeDays: 60})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, string(resp.Body))

	assert.EqualValues(t, 2, gotBody["page"])
	assert.EqualValues(t, 5, gotBody["limit"])
	assert.NotContains(t, gotBody, "q", "empty free-text query must be omitted")
	assert.NotContains(t, gotBody, "job_country_code_or")
}

func TestSearch_ClassifiesFailures(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		kind      error
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, ErrAuth, false},
		{"forbidden", http.StatusForbidden, `nope`, ErrAuth, false},
		{"rate limited", http.StatusTooManyRequests, `slow down`, ErrRateLimit, true},
		{"server error", http.StatusInternalServerError, `boom`, ErrProvider, true},
		{"bad request", http.StatusUnprocessableEntity, `{"detail":"invalid field q"}`, ErrProvider, false},
		{"undecodable 200", http.StatusOK, `<html>maintenance</html>`, ErrParse, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Search(context.Background(), SearchRequest{Limit: 1})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.body, apiErr.Body, "body is captured verbatim")
			assert.Equal(t, tc.retryable, apiErr.Retryable())
		})
	}
}

func TestSearch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: baseURL})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchRequest{Limit: 1})
	assert.ErrorIs(t, err, ErrNetwork)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Retryable())
}

func TestSearch_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL, SearchTimeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchRequest{Limit: 1})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestSearch_CallerCancellationIsNotRetryable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Search(ctx, SearchRequest{Limit: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.Retryable())
}

func TestProbe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/health", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	status, err := client.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status.StatusCode)
	assert.Equal(t, `{"status":"ok"}`, status.Body)
}

func TestError_LogFieldsTruncateBody(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	apiErr := &Error{Kind: ErrProvider, StatusCode: 502, Body: string(long)}

	fields := apiErr.LogFields()
	require.Len(t, fields, 6)
	assert.Equal(t, "provider error", fields[1])
	assert.Len(t, fields[5], 515)
}
