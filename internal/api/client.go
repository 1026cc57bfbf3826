// Package api is the HTTP client for the user-service REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries a per-request id so client and server logs line up.
const RequestIDHeader = "X-Request-ID"

const maxErrorMessageLen = 800

var (
	// ErrTransport means the request did not complete.
	ErrTransport = errors.New("api: request failed")
	// ErrInvalidResponse means a success response carried a body that is not JSON.
	ErrInvalidResponse = errors.New("invalid API response format")
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a single base address. It never retries and sets no
// timeout of its own; bound a call through its context.
type Client struct {
	base  string
	http  Doer
	log   logrus.FieldLogger
	newID func() string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

func New(base string, opts ...Option) *Client {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Client{
		base:  base,
		http:  &http.Client{},
		log:   discard,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string { return c.base }

// Request sends method to base+path with body encoded as JSON when non-nil.
// It returns the raw JSON of a success response, or nil for 204 and empty
// bodies.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	url := c.base + path

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, url, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := c.newID()
	req.Header.Set(RequestIDHeader, reqID)

	log := c.log.WithFields(logrus.Fields{"method": method, "url": url, "request_id": reqID})
	log.Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("api request failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, url, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if readErr != nil {
			data = nil
		}
		herr := &HTTPError{Status: resp.StatusCode, Message: errorMessage(data)}
		log.WithField("status", resp.StatusCode).Warn(herr.Message)
		return nil, herr
	}
	if readErr != nil {
		log.WithError(readErr).Warn("api response read failed")
		return nil, fmt.Errorf("%w: read %s %s: %v", ErrTransport, method, url, readErr)
	}

	log.WithField("status", resp.StatusCode).Debug("api response")
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return json.RawMessage(data), nil
}

// errorMessage picks message, error or detail out of a JSON error body and
// falls back to the raw text.
func errorMessage(body []byte) string {
	msg := string(body)
	var fields map[string]any
	if len(body) > 0 && json.Unmarshal(body, &fields) == nil {
		for _, k := range []string{"message", "error", "detail"} {
			if s := fieldText(fields[k]); s != "" {
				msg = s
				break
			}
		}
	}
	if strings.TrimSpace(msg) == "" {
		msg = "Unknown error"
	}
	return truncate(msg, maxErrorMessageLen)
}

func fieldText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
