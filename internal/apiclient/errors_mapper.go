// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-console-client/internal/app"
	"github.com/MKhiriev/go-console-client/models"
)

// mapHTTPError normalizes a non-success response. env may be nil when the
// body is not an envelope.
func mapHTTPError(method, path string, resp *resty.Response, env *models.Envelope) *APIError {
	apiErr := &APIError{
		Status:    resp.StatusCode(),
		Method:    method,
		Path:      path,
		RequestID: resp.Request.Header.Get(HeaderRequestID),
	}

	if env != nil {
		if id := env.Meta.RequestID(); id != "" {
			apiErr.RequestID = id
		}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Fields = env.Error.Fields
			apiErr.Details = env.Error.Details
		}
	}

	apiErr.Kind = kindFromStatus(resp.StatusCode())
	if resp.IsSuccess() {
		// ok:false inside a 2xx
		apiErr.Kind = kindFromCode(apiErr.Code)
	}
	if apiErr.Code == app.CodeTokenOutdated || tokenOutdated(resp.Header()) {
		apiErr.Kind = KindUnauthorized
	}

	if apiErr.Code == "" {
		apiErr.Code = defaultCode(apiErr.Kind, resp.StatusCode())
	}
	if apiErr.Message == "" {
		apiErr.Message = defaultMessage(apiErr.Kind, resp)
	}

	return apiErr
}

func kindFromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusRequestTimeout:
		return KindTimeout
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

func kindFromCode(code string) Kind {
	switch code {
	case app.CodeUnauthorized, app.CodeTokenOutdated:
		return KindUnauthorized
	case app.CodeForbidden:
		return KindForbidden
	case app.CodeNotFound:
		return KindNotFound
	case app.CodeValidationFailed:
		return KindValidation
	default:
		return KindServer
	}
}

func defaultCode(kind Kind, status int) string {
	switch kind {
	case KindUnauthorized:
		return app.CodeUnauthorized
	case KindForbidden:
		return app.CodeForbidden
	case KindNotFound:
		return app.CodeNotFound
	case KindTimeout:
		return app.CodeTimeout
	case KindNetwork:
		return app.CodeNetworkError
	case KindMalformed:
		return app.CodeMalformedResponse
	}
	if status >= 500 {
		return app.CodeInternal
	}
	return "HTTP_" + strconv.Itoa(status)
}

func defaultMessage(kind Kind, resp *resty.Response) string {
	if kind == KindUnauthorized {
		return app.MsgSessionExpired
	}
	if resp.StatusCode() >= 500 {
		return app.MsgInternalServerError
	}
	if body := strings.TrimSpace(string(resp.Body())); body != "" && len(body) <= 200 && !json.Valid(resp.Body()) {
		return body
	}
	if text := http.StatusText(resp.StatusCode()); text != "" {
		return strings.ToLower(text)
	}
	return app.MsgRequestFailed
}

// mapTransportError normalizes a failure that produced no response.
func mapTransportError(method, path, requestID string, err error) *APIError {
	apiErr := &APIError{
		Kind:      KindNetwork,
		Code:      app.CodeNetworkError,
		Message:   app.MsgNetworkError,
		Method:    method,
		Path:      path,
		RequestID: requestID,
		cause:     err,
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		apiErr.Kind = KindTimeout
		apiErr.Code = app.CodeTimeout
		apiErr.Message = app.MsgTimeout
	}
	return apiErr
}

// malformed reports a success response whose body is not a valid envelope.
func malformed(method, path string, resp *resty.Response, err error) *APIError {
	return &APIError{
		Kind:      KindMalformed,
		Status:    resp.StatusCode(),
		Code:      app.CodeMalformedResponse,
		Message:   app.MsgMalformedResponse,
		Method:    method,
		Path:      path,
		RequestID: resp.Request.Header.Get(HeaderRequestID),
		cause:     err,
	}
}

func tokenOutdated(h http.Header) bool {
	v := strings.TrimSpace(h.Get(HeaderTokenOutdated))
	return strings.EqualFold(v, "true") || v == "1"
}
