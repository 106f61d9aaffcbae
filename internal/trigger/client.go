package trigger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the hosted Trigger.dev API
	DefaultBaseURL = "https://api.trigger.dev"

	listRunsPath    = "/api/v1/runs"
	retrieveRunPath = "/api/v3/runs/"

	// maxErrorBody caps how much of an error response is read into APIError
	maxErrorBody = 4096
)

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Message)
}

// Client interface for Trigger.dev API operations
type Client interface {
	// ListRuns returns at most limit runs, most recent first
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	// RetrieveRun returns the full record of the run with the given id
	RetrieveRun(ctx context.Context, runID string) (*RunDetail, error)
}

// apiClient implements the Client interface
type apiClient struct {
	secretKey  string
	httpClient *http.Client
	baseURL    string
	userAgent  string
	requestID  func() string
}

// Option configures an apiClient
type Option func(*apiClient)

// WithBaseURL points the client at a different API host (self-hosted or test server)
func WithBaseURL(baseURL string) Option {
	return func(c *apiClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets a per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *apiClient) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *apiClient) {
		c.userAgent = ua
	}
}

// WithRequestID sets the generator for X-Request-Id headers
func WithRequestID(gen func() string) Option {
	return func(c *apiClient) {
		c.requestID = gen
	}
}

// NewClient creates a new Trigger.dev API client
func NewClient(secretKey string, opts ...Option) (Client, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}

	c := &apiClient{
		secretKey:  secretKey,
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  "runsnap",
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListRuns fetches the first page of runs, sized to limit
func (c *apiClient) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got: %d", limit)
	}

	query := url.Values{}
	query.Set("page[size]", strconv.Itoa(limit))

	var resp listRunsResponse
	if err := c.get(ctx, listRunsPath+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	runs := resp.Data
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// RetrieveRun fetches the full record of a run
func (c *apiClient) RetrieveRun(ctx context.Context, runID string) (*RunDetail, error) {
	if runID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	var run RunDetail
	if err := c.get(ctx, retrieveRunPath+url.PathEscape(runID), &run); err != nil {
		return nil, err
	}
	if run.ID == "" {
		return nil, fmt.Errorf("run not found: %s", runID)
	}

	if IsAbsent(run.Payload) && run.PayloadPresignedURL != "" {
		packet, err := c.download(ctx, run.PayloadPresignedURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download payload: %w", err)
		}
		run.Payload = packet
	}
	if IsAbsent(run.Output) && run.OutputPresignedURL != "" {
		packet, err := c.download(ctx, run.OutputPresignedURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download output: %w", err)
		}
		run.Output = packet
	}
	return &run, nil
}

// download fetches an offloaded packet. Presigned URLs carry their own
// credentials, so no Authorization header is sent. Non-JSON bodies are
// returned as a JSON string.
func (c *apiClient) download(ctx context.Context, presignedURL string) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, presignedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if json.Valid(body) {
		return json.RawMessage(body), nil
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(quoted), nil
}

// get performs an authenticated GET and decodes the JSON body into out
func (c *apiClient) get(ctx context.Context, path string, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.requestID != nil {
		httpReq.Header.Set("X-Request-Id", c.requestID())
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var er errorResponse
	if json.Unmarshal(body, &er) == nil && er.Error != "" {
		apiErr.Message = er.Error
	}
	return apiErr
}
