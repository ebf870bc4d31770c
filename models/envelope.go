// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Envelope is the uniform body shape returned by every backend endpoint.
//
// Successful responses carry OK=true and the payload in Data. Failed
// responses carry OK=false and a populated Error. Meta is present in both
// cases and holds at least the server-side request identifier.
type Envelope struct {
	// OK reports whether the backend considers the call successful.
	OK bool `json:"ok"`

	// Data is the raw JSON payload of a successful response. It is decoded
	// lazily by the caller into the type it expects.
	Data json.RawMessage `json:"data,omitempty"`

	// Error describes the failure when OK is false.
	Error *EnvelopeError `json:"error,omitempty"`

	// Meta carries request metadata (requestId, pagination, etc.).
	Meta Meta `json:"meta,omitempty"`
}

// EnvelopeError is the error object of a failed envelope.
type EnvelopeError struct {
	// Code is a machine-readable error code, e.g. "VALIDATION_FAILED".
	Code string `json:"code"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Details holds arbitrary structured context supplied by the backend.
	Details any `json:"details,omitempty"`

	// Fields maps request field names to their validation messages.
	Fields map[string]string `json:"fields,omitempty"`
}

// Meta is the free-form metadata object of an envelope.
type Meta map[string]any

// RequestID returns the backend request identifier, or an empty string when
// the backend did not provide one.
func (m Meta) RequestID() string {
	if m == nil {
		return ""
	}
	id, _ := m["requestId"].(string)
	return id
}
