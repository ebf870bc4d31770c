// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance
// with a default-configured underlying resty.Client.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state. Automatic retries are
// disabled; callers decide what is worth repeating.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New().SetRetryCount(0)}
}

// NewBaseHTTPClient returns an HTTPClient bound to baseURL with the given
// request timeout. Trailing slashes are trimmed from baseURL; a zero or
// negative timeout leaves the client without a deadline.
func NewBaseHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := NewHTTPClient()
	c.SetBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}
