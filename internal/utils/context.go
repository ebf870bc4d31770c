// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, request IDs,
// HTTP response writing, HTTP client initialization, JWT inspection
// and token redaction.
package utils

import (
	"context"
	"time"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestIDCtxKey is the key used to store the outbound request ID in the
// context. The same value is sent in the X-Request-ID header.
var RequestIDCtxKey = contextKey("requestID")

// RequestStartCtxKey is the key used to store the moment an outbound request
// left the client. The inbound path subtracts it from the current time to
// compute the request duration.
var RequestStartCtxKey = contextKey("requestStart")

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, requestID)
}

// GetRequestIDFromContext retrieves the request ID from the context.
//
// Returns the request ID and an ok flag:
//   - ok == true : value is found and is a non-empty string
//   - ok == false: value is missing or has an unexpected type
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok && id != ""
}

// WithRequestStart returns a copy of ctx carrying the request start time.
func WithRequestStart(ctx context.Context, start time.Time) context.Context {
	return context.WithValue(ctx, RequestStartCtxKey, start)
}

// GetRequestStartFromContext retrieves the request start time from the
// context. ok is false when no start time was recorded.
func GetRequestStartFromContext(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(RequestStartCtxKey).(time.Time)
	return start, ok
}
