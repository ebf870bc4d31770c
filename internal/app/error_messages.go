// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// console client.
//
// Code* constants are the machine-readable error codes the backend puts into
// the "error.code" field of a failed envelope. Msg* constants are the
// human-readable fallbacks used when a failure carries no backend message.
// Keeping them in one place ensures consistent wording throughout the client.
package app

const (
	// CodeTokenOutdated marks a request whose access token was issued for an
	// older authorization version. It is treated like HTTP 401.
	CodeTokenOutdated = "TOKEN_OUTDATED"

	// CodeUnauthorized is returned when the request carries no valid access
	// token.
	CodeUnauthorized = "UNAUTHORIZED"

	// CodeInvalidRefreshToken is returned by the token exchange endpoint when
	// the refresh token is unknown, revoked or expired.
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"

	// CodeForbidden is returned when the user lacks a permission.
	CodeForbidden = "FORBIDDEN"

	// CodeNotFound is returned when the addressed resource does not exist.
	CodeNotFound = "NOT_FOUND"

	// CodeValidationFailed is returned when the request body fails
	// validation; per-field messages are in "error.fields".
	CodeValidationFailed = "VALIDATION_FAILED"

	// CodeInternal is returned on unexpected backend failures.
	CodeInternal = "INTERNAL_ERROR"
)

// Client-side codes for failures that never reached the backend or could not
// be understood. They share the namespace of the backend codes above.
const (
	// CodeNetworkError marks a transport failure (DNS, refused connection,
	// reset).
	CodeNetworkError = "NETWORK_ERROR"

	// CodeTimeout marks a request that exceeded its deadline.
	CodeTimeout = "TIMEOUT"

	// CodeMalformedResponse marks a response body that is not a valid
	// envelope.
	CodeMalformedResponse = "MALFORMED_RESPONSE"
)

const (
	// MsgSessionExpired is used when the session could not be recovered by a
	// token refresh.
	MsgSessionExpired = "session expired, please sign in again"

	// MsgNetworkError is used for transport failures.
	MsgNetworkError = "backend is unreachable"

	// MsgTimeout is used when a request exceeds its deadline.
	MsgTimeout = "request timed out"

	// MsgMalformedResponse is used when the backend response cannot be
	// decoded.
	MsgMalformedResponse = "malformed response from backend"

	// MsgInternalServerError is used for 5xx responses without a message.
	MsgInternalServerError = "internal server error"

	// MsgRequestFailed is the generic fallback for non-2xx responses without
	// a message.
	MsgRequestFailed = "request failed"
)
