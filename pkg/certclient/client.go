// Package certclient is the HTTP binding to the certificate REST API.
//
// A Client is bound to one base URL and sends and receives JSON. It performs
// no retries and applies no timeout beyond the one configured on the
// underlying *http.Client.
package certclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultUserAgent = "certclient/1"
	maxLoggedBody    = 512
)

// Client sends requests to a single certificate API deployment.
// It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	log       zerolog.Logger
	userAgent string
	token     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger enables logging of failed responses at warn level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New returns a Client bound to baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      http.DefaultClient,
		log:       zerolog.Nop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the address every request is sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Authorize returns a copy of c that sends token as a Bearer credential.
// An empty token yields an anonymous copy. c itself is not modified.
func (c *Client) Authorize(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Authorized reports whether requests carry a Bearer token.
func (c *Client) Authorized() bool { return c.token != "" }

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("certclient: status %d", e.StatusCode)
	}
	return fmt.Sprintf("certclient: status %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Message returns the backend message carried by err, if any.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// do sends in as the JSON body (when non-nil) and decodes a 2xx body into out
// (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("certclient: marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("certclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("certclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr, body := errorFromResponse(resp)
		c.log.Warn().
			Int("status", apiErr.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("error", apiErr.Message).
			Str("body", body).
			Msg("request rejected")
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("certclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorFromResponse reads the {"error"} or {"message"} envelope of a failed
// response. Any other body leaves Message empty and is only returned for logging,
// truncated to maxLoggedBody bytes.
func errorFromResponse(resp *http.Response) (*APIError, string) {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr, ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		}
	}

	if len(raw) > maxLoggedBody {
		raw = raw[:maxLoggedBody]
	}
	return apiErr, strings.TrimSpace(string(raw))
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
