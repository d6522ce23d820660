package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer token attached to requests. A source
// returning "" leaves the request unauthenticated.
type TokenSource interface {
	Token() string
}

// HTTPClient is the part of *http.Client the gateway uses; tests swap in
// doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues typed requests against the backend REST API. It does not
// retry and does not cache.
type Client struct {
	baseURL string
	http    HTTPClient
	tokens  TokenSource
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d}
	}
}

func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do runs one JSON round-trip. A nil body sends no payload. On 2xx the raw
// body is returned; non-2xx becomes *HTTPError, transport failures become
// *NetworkError.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	raw, _, err := c.do(ctx, method, path, body)
	return raw, err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, int, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.roundTrip(req)
}

func (c *Client) roundTrip(req *http.Request) (json.RawMessage, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Err: err, Timeout: isTimeout(req.Context(), err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &NetworkError{Err: err, Timeout: isTimeout(req.Context(), err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(data),
		}
	}
	return data, resp.StatusCode, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// serverMessage digs the human-readable error out of a failure body,
// falling back to a generic string.
func serverMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return "request failed"
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

// GetJSON issues a GET with optional query parameters and decodes the
// response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	raw, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(raw, out, status)
}

func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.writeJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	return c.writeJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) PatchJSON(ctx context.Context, path string, in, out any) error {
	return c.writeJSON(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) writeJSON(ctx context.Context, method, path string, in, out any) error {
	raw, status, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	return decode(raw, out, status)
}

func decode(raw json.RawMessage, out any, status int) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{StatusCode: status, Err: err}
	}
	return nil
}
