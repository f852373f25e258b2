// Package transport executes HTTP requests against the backend API,
// attaching bearer credentials from the session store and normalizing
// success and error outcomes. A 401 from any request is the single choke
// point for session invalidation: the session store is cleared and the
// unauthorized-event bus is published before the error is returned.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/voyago/tripdeck/pkg/events"
	"github.com/voyago/tripdeck/pkg/log"
	"github.com/voyago/tripdeck/pkg/session"
)

// Options configures a single request.
type Options struct {
	Method  string
	Headers map[string]string
	Body    interface{}

	// NoAuth suppresses the Authorization header. Callers set it for
	// login/register, which precede having a token.
	NoAuth bool
}

// Client performs HTTP requests with consistent result handling.
type Client struct {
	http    *http.Client
	session session.Store
	bus     *events.Bus
	logger  *log.Logger
}

// New creates a transport client. The http.Client carries no timeout of
// its own; cancellation is the caller's context only. No retries.
func New(sess session.Store, bus *events.Bus, logger *log.Logger) *Client {
	return &Client{
		http:    &http.Client{},
		session: sess,
		bus:     bus,
		logger:  logger,
	}
}

// Request executes an HTTP request and returns the raw response body:
// validated JSON bytes for JSON responses, text bytes otherwise, nil for
// 204 or an empty body. Non-2xx responses return *APIError; a 2xx JSON
// body that does not decode returns *ParseError.
func (c *Client) Request(ctx context.Context, url string, opts Options) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !opts.NoAuth {
		// The token may have been invalidated by a concurrent 401; an empty
		// read here just sends the request unauthenticated and the server
		// rejects it again, converging the session to logged-out.
		if token := c.session.CurrentToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	isJSON := strings.Contains(res.Header.Get("Content-Type"), "application/json")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.StatusCode == http.StatusUnauthorized {
			c.invalidateSession(method, url)
		}
		return nil, &APIError{Status: res.StatusCode, Details: normalizeDetails(body, isJSON)}
	}

	if res.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}

	if isJSON {
		if !json.Valid(body) {
			return nil, &ParseError{Status: res.StatusCode}
		}
		return body, nil
	}

	// Allow non-JSON success responses (rare); return text.
	return body, nil
}

// invalidateSession clears the persisted session and notifies subscribers.
// Repeated 401s from overlapping in-flight requests re-publish harmlessly.
func (c *Client) invalidateSession(method, url string) {
	if c.logger != nil {
		c.logger.WithFields(log.Fields{
			"method": method,
			"url":    url,
		}).Warn("Session invalidated by 401")
	}
	if err := c.session.Clear(); err != nil && c.logger != nil {
		c.logger.WithError(err).Error("Failed to clear session store")
	}
	c.bus.Publish()
}
