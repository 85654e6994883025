// Package reach performs best-effort liveness probes against campaign URLs.
// A probe only observes the response status, never the body, and all failure
// modes collapse to "not reachable".
package reach

import (
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout   = 3 * time.Second
	DefaultUserAgent = "utmforge-linkcheck/1.0"
)

type Checker struct {
	client    *http.Client
	userAgent string
}

// NewChecker builds a checker with the given per-request timeout. Redirects
// are followed with the http.Client default policy.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
}

// NewCheckerWithClient injects a custom client, used by tests.
func NewCheckerWithClient(client *http.Client) *Checker {
	return &Checker{
		client:    client,
		userAgent: DefaultUserAgent,
	}
}

// IsReachable reports whether the URL answers a lightweight probe with a
// status in [200, 400). It starts with HEAD and retries once with GET when
// the server rejects HEAD with 405. Blank input short-circuits to false
// without a network call, and any transport failure also yields false; the
// probe never returns an error.
func (c *Checker) IsReachable(rawURL string) bool {
	if strings.TrimSpace(rawURL) == "" {
		return false
	}

	status, ok := c.probe(http.MethodHead, rawURL)
	if ok && status == http.StatusMethodNotAllowed {
		status, ok = c.probe(http.MethodGet, rawURL)
	}
	if !ok {
		return false
	}
	return status >= http.StatusOK && status < http.StatusBadRequest
}

func (c *Checker) probe(method, rawURL string) (int, bool) {
	req, err := http.NewRequest(method, rawURL, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, false
	}
	// Status is all we need; the body is closed unread.
	resp.Body.Close()

	return resp.StatusCode, true
}
