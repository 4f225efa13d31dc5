package braindumpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/braindump/internal/domain/braindump"
	apperrors "github.com/yanqian/braindump/pkg/errors"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
	errorBodyLimit = 4 << 10
)

// Client talks to the BrainDump AI backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. Zero values fall back to local defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL reports the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts a dump and decodes the structured response.
func (c *Client) Submit(ctx context.Context, req braindump.DumpRequest) (braindump.DumpResponse, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return braindump.DumpResponse{}, failed(fmt.Errorf("encode dump request: %w", err))
	}
	var out braindump.DumpResponse
	if err := c.do(ctx, http.MethodPost, "/dump", payload, &out); err != nil {
		return braindump.DumpResponse{}, err
	}
	return out, nil
}

// HealthCheck reports whether the backend is up.
func (c *Client) HealthCheck(ctx context.Context) (braindump.Health, error) {
	var out braindump.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return braindump.Health{}, err
	}
	return out, nil
}

// RecentEntries fetches the latest stored entries for a user. Entries are opaque.
func (c *Client) RecentEntries(ctx context.Context, userID string, limit int) ([]json.RawMessage, error) {
	endpoint := "/recent/" + url.PathEscape(userID)
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}
	var out []json.RawMessage
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []json.RawMessage{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return failed(fmt.Errorf("build %s %s request: %w", method, endpoint, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failed(fmt.Errorf("%s %s: %w", method, endpoint, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return failed(fmt.Errorf("%s %s: status=%d body=%s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(fmt.Errorf("read %s response: %w", endpoint, err))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return failed(fmt.Errorf("decode %s response: %w", endpoint, err))
	}
	return nil
}

func failed(cause error) error {
	return apperrors.Wrap("request_failed", "backend unavailable", fmt.Errorf("%w: %w", braindump.ErrRequestFailed, cause))
}

var _ braindump.Client = (*Client)(nil)
