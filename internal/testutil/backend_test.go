// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-console-client/models"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	n, err := WriteJSON(w, data, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", ct)
	}

	expected, _ := json.Marshal(data)
	if w.Body.String() != string(expected) {
		t.Errorf("expected body %s, got %s", expected, w.Body.String())
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	if err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteEnvelope_Success(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteEnvelope(w, map[string]int{"n": 1}, models.Meta{"requestId": "r-1"}, http.StatusCreated)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var env models.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if !env.OK {
		t.Error("expected ok=true")
	}
	if string(env.Data) != `{"n":1}` {
		t.Errorf("unexpected data %s", env.Data)
	}
	if env.Meta.RequestID() != "r-1" {
		t.Errorf("expected request id r-1, got %q", env.Meta.RequestID())
	}
}

func TestWriteEnvelope_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	if _, err := WriteEnvelope(w, make(chan int), nil, http.StatusOK); err == nil {
		t.Fatal("expected error for non-serializable data, got nil")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteEnvelopeError(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteEnvelopeError(w, models.EnvelopeError{
		Code:    "VALIDATION_FAILED",
		Message: "bad input",
		Fields:  map[string]string{"sku": "required"},
	}, nil, http.StatusUnprocessableEntity)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	var env models.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.OK {
		t.Error("expected ok=false")
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("unexpected error %+v", env.Error)
	}
	if env.Error.Fields["sku"] != "required" {
		t.Errorf("expected sku field error, got %v", env.Error.Fields)
	}
}
