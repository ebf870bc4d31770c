// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-console-client/models"
)

// Response is a successful backend response with the envelope unwrapped.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// Header holds the response headers.
	Header http.Header

	// Data is the raw "data" member of the envelope; nil for empty bodies.
	Data json.RawMessage

	// Meta is the "meta" member of the envelope.
	Meta models.Meta

	// Duration is the time between sending the request and receiving the
	// response.
	Duration time.Duration
}

// Decode unmarshals Data into v. An empty Data leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("%w: decode data: %w", ErrMalformedResponse, err)
	}
	return nil
}

// RequestID returns the backend request id from meta.
func (r *Response) RequestID() string {
	return r.Meta.RequestID()
}
