// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an [APIError].
type Kind string

// Error kinds.
const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindTimeout      Kind = "timeout"
	KindNetwork      Kind = "network"
	KindServer       Kind = "server"
	KindMalformed    Kind = "malformed"
)

// Sentinel errors matching each [Kind]. Every *APIError unwraps to exactly
// one of them, so callers can use [errors.Is].
var (
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("client unauthorized")
	ErrForbidden         = errors.New("access forbidden")
	ErrNotFound          = errors.New("resource not found")
	ErrTimeout           = errors.New("request timeout")
	ErrNetwork           = errors.New("network error")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

// Token exchange failures. They are logged and counted; callers of
// [Client.Request] see the original authorization error instead.
var (
	// ErrNoRefreshToken is returned by [Client.Refresh] when no refresh
	// token is stored.
	ErrNoRefreshToken = errors.New("no refresh token stored")

	// ErrRefreshFailed is returned by [Client.Refresh] when the exchange
	// endpoint is unreachable, rejects the token or answers with an
	// unusable body.
	ErrRefreshFailed = errors.New("token refresh failed")
)

var kindSentinels = map[Kind]error{
	KindValidation:   ErrValidation,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
	KindNotFound:     ErrNotFound,
	KindTimeout:      ErrTimeout,
	KindNetwork:      ErrNetwork,
	KindServer:       ErrServer,
	KindMalformed:    ErrMalformedResponse,
}

// APIError is the normalized failure of a backend call.
type APIError struct {
	Kind Kind

	// Status is the HTTP status code; 0 when no response was received.
	Status int

	// Code is the machine-readable error code (see package app).
	Code string

	// Message is a human-readable description.
	Message string

	// Fields maps request fields to validation messages.
	Fields map[string]string

	// Details is backend-specific structured context.
	Details any

	// RequestID correlates the failure with backend logs.
	RequestID string

	Method string
	Path   string

	cause error
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.Method != "" || e.Path != "" {
		fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	}
	if e.Status > 0 {
		fmt.Fprintf(&b, "%d ", e.Status)
	}
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap exposes the kind sentinel and, for transport failures, the
// underlying error.
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// IsAuthFailure reports whether the error should trigger a token refresh.
func (e *APIError) IsAuthFailure() bool {
	return e.Kind == KindUnauthorized
}

// AsAPIError extracts an *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
