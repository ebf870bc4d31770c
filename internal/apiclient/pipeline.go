// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"errors"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/internal/utils"
)

// injectCredentials is the outbound hook: bearer token, request id and start
// timestamp.
func (c *Client) injectCredentials(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()

	requestID := c.ids.Generate()
	req.SetHeader(HeaderRequestID, requestID)

	if !skipAuth(ctx) && req.Header.Get(headerAuthorization) == "" {
		token, err := c.creds.AccessToken(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("failed to read access token")
		} else if token != "" {
			req.SetHeader(headerAuthorization, "Bearer "+token)
		}
	}

	ctx = utils.WithRequestID(ctx, requestID)
	ctx = utils.WithRequestStart(ctx, time.Now())
	req.SetContext(ctx)
	return nil
}

// logResponse is the inbound hook for every received response.
func (c *Client) logResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()

	elapsed := resp.Time()
	if start, ok := utils.GetRequestStartFromContext(ctx); ok {
		elapsed = time.Since(start)
	}
	requestID, _ := utils.GetRequestIDFromContext(ctx)

	c.metrics.ObserveRequest(resp.Request.Method, resp.StatusCode(), elapsed)

	event := c.logger.Debug()
	if resp.IsError() {
		event = c.logger.Warn()
	}
	event.
		Str("request_id", requestID).
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", elapsed).
		Msg("api request completed")
	return nil
}

// logError is the hook for requests that got no response.
func (c *Client) logError(req *resty.Request, err error) {
	var respErr *resty.ResponseError
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.RawResponse != nil {
		// already logged by logResponse
		return
	}

	elapsed := time.Duration(0)
	if start, ok := utils.GetRequestStartFromContext(req.Context()); ok {
		elapsed = time.Since(start)
	}
	requestID, _ := utils.GetRequestIDFromContext(req.Context())

	c.metrics.ObserveRequest(req.Method, 0, elapsed)
	c.logger.Error().Err(err).
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", req.URL).
		Dur("duration", elapsed).
		Msg("api request failed")
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug().Msgf(format, v...)
}
