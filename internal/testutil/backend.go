// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package testutil holds helpers for the fake backends used in tests:
// envelope writers and signed JWT fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-console-client/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteEnvelope wraps data into a successful backend envelope
// ({"ok":true,"data":...,"meta":...}) and writes it with statusCode.
func WriteEnvelope(w http.ResponseWriter, data any, meta models.Meta, statusCode int) (int, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	return WriteJSON(w, models.Envelope{OK: true, Data: raw, Meta: meta}, statusCode)
}

// WriteEnvelopeError writes a failed backend envelope
// ({"ok":false,"error":{...},"meta":...}) with statusCode.
func WriteEnvelopeError(w http.ResponseWriter, envErr models.EnvelopeError, meta models.Meta, statusCode int) (int, error) {
	return WriteJSON(w, models.Envelope{OK: false, Error: &envErr, Meta: meta}, statusCode)
}
