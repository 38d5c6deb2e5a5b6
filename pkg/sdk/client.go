package askshelf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.httpClient = hc
	})
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) {
		c.httpClient.Timeout = d
	})
}

// Client is the askshelf API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c, nil
}

// Ask sends a natural-language catalog question.
func (c *Client) Ask(ctx context.Context, query string) (Answer, error) {
	var answer Answer
	err := c.do(ctx, http.MethodPost, "/ask", askRequest{Query: query}, &answer)
	return answer, err
}

// Health reports server component status. A degraded server still answers;
// the report says which component is down.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)

	// 503 with a parseable body is a degraded report, not a transport failure.
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable && h.Status != "" {
		return h, nil
	}
	return h, err
}

// Rebuild refreshes the lexicon snapshot and backfills embeddings.
func (c *Client) Rebuild(ctx context.Context) (RebuildSummary, error) {
	var s RebuildSummary
	err := c.do(ctx, http.MethodPost, "/rebuild", nil, &s)
	return s, err
}

// Items lists the catalog, one page per call. An empty cursor starts from the
// beginning; limit <= 0 uses the server default.
func (c *Client) Items(ctx context.Context, cursor string, limit int) (ItemPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page ItemPage
	err := c.do(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

// GetItem fetches one catalog item by id.
func (c *Client) GetItem(ctx context.Context, id string) (Item, error) {
	var it Item
	err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &it)
	return it, err
}

// UpsertItem creates or replaces a catalog item.
func (c *Client) UpsertItem(ctx context.Context, id string, in ItemInput) (Item, error) {
	var it Item
	err := c.do(ctx, http.MethodPut, "/items/"+url.PathEscape(id), in, &it)
	return it, err
}

// DeleteItem removes a catalog item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

// do sends one request and decodes the response into out (when non-nil).
// Non-2xx responses become *APIError; out may still be filled when the error
// body carries a payload shape (health).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	if out != nil {
		// Best effort: some error statuses still carry the payload shape.
		_ = json.Unmarshal(raw, out)
	}

	var errResp errorResponse
	if err := json.Unmarshal(raw, &errResp); err != nil || errResp.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "unknown",
			Message:    strings.TrimSpace(string(raw)),
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       errResp.Code,
		Message:    errResp.Message,
	}
}
