// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"context"
	"time"
)

// RequestOption customises a single [Client.Request] call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	query    map[string]string
	headers  map[string]string
	skipAuth bool
	timeout  time.Duration
}

func newRequestOptions(opts []RequestOption) requestOptions {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}

// WithQuery adds query parameters. Empty values are skipped.
func WithQuery(params map[string]string) RequestOption {
	return func(ro *requestOptions) {
		if ro.query == nil {
			ro.query = make(map[string]string, len(params))
		}
		for k, v := range params {
			if v != "" {
				ro.query[k] = v
			}
		}
	}
}

// WithHeader sets an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(ro *requestOptions) {
		if ro.headers == nil {
			ro.headers = make(map[string]string, 1)
		}
		ro.headers[key] = value
	}
}

// WithoutAuth sends the request without the stored bearer token.
func WithoutAuth() RequestOption {
	return func(ro *requestOptions) {
		ro.skipAuth = true
	}
}

// WithTimeout overrides the client request timeout for this call. The
// timeout applies to each attempt separately.
func WithTimeout(d time.Duration) RequestOption {
	return func(ro *requestOptions) {
		ro.timeout = d
	}
}

type skipAuthKey struct{}

func withSkipAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

func skipAuth(ctx context.Context) bool {
	v, _ := ctx.Value(skipAuthKey{}).(bool)
	return v
}
