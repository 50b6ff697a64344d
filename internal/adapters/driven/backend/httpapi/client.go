package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// Endpoint paths.
const (
	PathActivity = "/"
	PathFetch    = "/api/save/"
	PathSync     = "/api/sync/"
)

// HeaderRequestID carries a per-request uuid for correlating server logs.
const HeaderRequestID = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:8000.
	BaseURL string

	// RequestsPerSecond paces outgoing requests. Zero or less disables pacing.
	RequestsPerSecond float64

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the client used. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the storesync backend.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	newID   func() string
}

// NewClient creates a backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBackendURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(limit, 1),
		newID:   func() string { return uuid.New().String() },
	}
}

// BaseURL returns the backend root the client sends to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// submitPayload is the JSON body of both submission endpoints.
type submitPayload struct {
	APIKey        string  `json:"api_key"`
	Password      string  `json:"password"`
	StoreURL      string  `json:"store_url"`
	APIVersion    string  `json:"api_version"`
	CreatedAtMin  *string `json:"created_at_min"`
	CreatedAtMax  *string `json:"created_at_max"`
	FullFetchSync bool    `json:"full_fetch_sync"`
}

// messageBody is the optional {message} in any response.
type messageBody struct {
	Message string `json:"message"`
}

// Submit posts req to the endpoint for its kind.
func (c *Client) Submit(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionResponse, error) {
	path, err := endpointFor(req.Kind)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(newSubmitPayload(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, &domain.TransportError{Op: req.Kind.String(), Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.RejectionError{
			StatusCode: resp.StatusCode,
			Message:    parseMessage(raw),
		}
	}

	if readErr != nil {
		return nil, &domain.TransportError{Op: req.Kind.String(), Err: fmt.Errorf("read response: %w", readErr)}
	}

	return &domain.SubmissionResponse{
		StatusCode: resp.StatusCode,
		Message:    parseMessage(raw),
	}, nil
}

// Activity fetches the activity summary.
func (c *Client) Activity(ctx context.Context) (*domain.ActivitySnapshot, error) {
	resp, err := c.do(ctx, http.MethodGet, PathActivity, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: "activity", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.RejectionError{StatusCode: resp.StatusCode, Message: parseMessage(raw)}
	}

	var payload activityPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	return payload.snapshot(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := c.newID()
	req.Header.Set(HeaderRequestID, requestID)

	logger.Debug("%s %s (request %s)", method, path, requestID)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	logger.Debug("%s %s -> %d", method, path, resp.StatusCode)
	return resp, nil
}

func endpointFor(kind domain.OperationKind) (string, error) {
	switch kind {
	case domain.OperationFetch:
		return PathFetch, nil
	case domain.OperationSync:
		return PathSync, nil
	default:
		return "", fmt.Errorf("%w: operation %q", domain.ErrInvalidInput, kind)
	}
}

func newSubmitPayload(req domain.SubmissionRequest) submitPayload {
	return submitPayload{
		APIKey:        req.APIKey,
		Password:      req.Password,
		StoreURL:      req.StoreURL,
		APIVersion:    req.APIVersion,
		CreatedAtMin:  FormatPayloadDate(req.CreatedAtMin),
		CreatedAtMax:  FormatPayloadDate(req.CreatedAtMax),
		FullFetchSync: req.FullFetchSync,
	}
}

// PayloadDateLayout is ISO-8601 in UTC with millisecond precision.
const PayloadDateLayout = "2006-01-02T15:04:05.000Z"

// FormatPayloadDate renders t for the wire, or nil for JSON null.
func FormatPayloadDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(PayloadDateLayout)
	return &s
}

// parseMessage extracts {message}; anything else yields "".
func parseMessage(raw []byte) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil {
		logger.Debug("response body has no message: %v", err)
		return ""
	}
	return strings.TrimSpace(body.Message)
}
