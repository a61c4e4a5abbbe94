package opensky

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/unklstewy/flyby/pkg/coordinates"
)

const (
	// BaseURL is the OpenSky Network REST API base URL
	BaseURL = "https://opensky-network.org/api"

	// DefaultTimeout for state-vector requests
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerMinute keeps the anonymous tier comfortably below
	// its credit budget
	DefaultRequestsPerMinute = 10
)

// Client queries the OpenSky state-vectors endpoint.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retry       RetryConfig
}

// Config contains configuration for the OpenSky client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	Retry             RetryConfig
}

// NewClient creates a new OpenSky API client.
//
// The client includes:
// - Client-side rate limiting to stay within the anonymous quota
// - Configurable timeout for requests
// - Exponential backoff retry for transient failures
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	requestsPerSecond := float64(cfg.RequestsPerMinute) / 60.0
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), 1)

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
		retry:       cfg.Retry,
	}
}

// States returns the current state vectors inside the bounding box.
//
// Transient failures (HTTP 429 and 5xx) are retried with exponential backoff
// per the client's RetryConfig; any other failure is returned immediately.
func (c *Client) States(ctx context.Context, box coordinates.BoundingBox) (*Snapshot, error) {
	return Retry(ctx, c.retry, func() (*Snapshot, error) {
		return c.fetchStates(ctx, box)
	})
}

// NearbySnapshot is the total form of States: it never fails. When flight
// data cannot be retrieved it logs a warning and returns an empty snapshot
// stamped with the current time, so callers always have something to render.
// The boolean is false for such degraded snapshots.
func (c *Client) NearbySnapshot(ctx context.Context, box coordinates.BoundingBox) (*Snapshot, bool) {
	snap, err := c.States(ctx, box)
	if err == nil {
		return snap, true
	}

	if _, ok := IsRateLimitError(err); ok {
		log.Printf("Warning: flight data unavailable: %v (anonymous OpenSky access is rate limited; try again in a few minutes)", err)
	} else {
		log.Printf("Warning: flight data unavailable: %v", err)
	}
	return emptySnapshot(), false
}

// fetchStates performs a single API request. The rate limiter gates every
// attempt, including retries.
func (c *Client) fetchStates(ctx context.Context, box coordinates.BoundingBox) (*Snapshot, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/states/all?lamin=%.6f&lomin=%.6f&lamax=%.6f&lomax=%.6f",
		c.baseURL, box.LatMin, box.LonMin, box.LatMax, box.LonMax)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
			Remaining:  parseRemaining(resp.Header),
		}
	}

	if resp.StatusCode >= 500 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return parseStatesResponse(body)
}

// statesResponse mirrors the wire shape of /states/all.
type statesResponse struct {
	// Time is the validity timestamp as a Unix epoch
	Time int64 `json:"time"`

	// States is the array of positional state arrays; null when the box
	// contains no aircraft
	States [][]interface{} `json:"states"`

	// Error carries an API-level failure message on some error payloads
	Error string `json:"error"`
}

// parseStatesResponse validates and converts an API payload into a Snapshot.
//
// An empty body or a whole-body JSON null is a failure. A null "states"
// field means zero aircraft, not a failure. A payload with no usable states
// but a non-empty "error" field is a failure with that message. A payload
// missing both is answered with an empty snapshot stamped with the current
// time.
func parseStatesResponse(body []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("null response body")
	}

	var apiResp statesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if apiResp.States == nil && apiResp.Error != "" {
		return nil, fmt.Errorf("API error: %s", apiResp.Error)
	}

	snap := &Snapshot{States: make([]StateVector, 0, len(apiResp.States))}
	if apiResp.Time > 0 {
		snap.Time = time.Unix(apiResp.Time, 0).UTC()
	} else {
		snap.Time = time.Now().UTC()
	}

	for _, raw := range apiResp.States {
		sv, ok := stateFromArray(raw)
		if !ok {
			continue
		}
		snap.States = append(snap.States, sv)
	}

	return snap, nil
}

// RateLimitError represents an HTTP 429 response with retry information.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
	Remaining  int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
	}
	return "rate limit exceeded"
}

// IsRateLimitError checks if an error is, or wraps, a rate limit error.
func IsRateLimitError(err error) (*RateLimitError, bool) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle, true
	}
	return nil, false
}

// ServerError represents a 5xx response from the API.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("server error %d", e.StatusCode)
}

// IsServerError checks if an error is, or wraps, a server error.
func IsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// parseRetryAfter extracts the Retry-After header value.
// Returns the duration to wait, or 0 if the header is not present.
// Supports both delay-seconds (integer) and HTTP-date formats.
func parseRetryAfter(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if retryTime, err := http.ParseTime(retryAfter); err == nil {
		if duration := time.Until(retryTime); duration > 0 {
			return duration
		}
	}

	return 0
}

// parseRemaining extracts OpenSky's X-Rate-Limit-Remaining header.
// Returns -1 when the header is absent.
func parseRemaining(headers http.Header) int {
	remaining := headers.Get("X-Rate-Limit-Remaining")
	if remaining == "" {
		return -1
	}
	if val, err := strconv.Atoi(remaining); err == nil {
		return val
	}
	return -1
}
