// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-console-client/internal/events"
	"github.com/MKhiriev/go-console-client/internal/metrics"
	"github.com/MKhiriev/go-console-client/internal/utils"
	"github.com/MKhiriev/go-console-client/models"
)

const refreshFlightKey = "refresh"

// Refresh exchanges the stored refresh token for a new token pair. With
// shared refresh enabled, concurrent callers wait for one exchange and get
// its result.
//
// On success the new pair and the returned profile are persisted and
// events.TopicProfileUpdated is published. Refresh never clears the stored
// tokens itself.
func (c *Client) Refresh(ctx context.Context) error {
	if !c.cfg.SharedRefresh() {
		return c.refresh(ctx)
	}

	_, err, shared := c.refreshGroup.Do(refreshFlightKey, func() (any, error) {
		// the exchange must outlive the caller that started it
		return nil, c.refresh(context.WithoutCancel(ctx))
	})
	if shared {
		c.logger.Debug().Msg("joined in-flight token refresh")
	}
	return err
}

func (c *Client) refresh(ctx context.Context) error {
	refreshToken, err := c.creds.RefreshToken(ctx)
	if err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshFailure)
		return fmt.Errorf("%w: read refresh token: %w", ErrRefreshFailed, err)
	}
	if refreshToken == "" {
		c.metrics.ObserveRefresh(metrics.RefreshSkipped)
		return ErrNoRefreshToken
	}

	result, err := c.exchange(ctx, refreshToken)
	if err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshFailure)
		return err
	}

	if err = c.creds.SaveTokens(ctx, result.Tokens()); err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshFailure)
		return fmt.Errorf("%w: save tokens: %w", ErrRefreshFailed, err)
	}
	if result.User != nil || result.Session != nil {
		if err = c.creds.SaveProfile(ctx, result.Profile()); err != nil {
			c.logger.Error().Err(err).Msg("failed to save refreshed profile")
		}
	}

	c.metrics.ObserveRefresh(metrics.RefreshSuccess)
	c.logger.Info().
		Str("access_token", utils.RedactToken(result.AccessToken)).
		Msg("token pair refreshed")

	if c.publisher != nil {
		c.publisher.Publish(ctx, events.TopicProfileUpdated, events.ProfileUpdated{
			User:    result.User,
			Session: result.Session,
			Tokens:  result.Tokens(),
		})
	}
	return nil
}

// exchange calls the token endpoint on the raw client.
func (c *Client) exchange(ctx context.Context, refreshToken string) (models.AuthResult, error) {
	var result models.AuthResult

	path := c.cfg.RefreshPath
	requestID := c.ids.Generate()

	resp, err := c.raw.R().
		SetContext(ctx).
		SetHeader(headerAccept, mimeJSON).
		SetHeader(headerContentType, mimeJSON).
		SetHeader(HeaderRequestID, requestID).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		Post(path)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrRefreshFailed, mapTransportError(http.MethodPost, path, requestID, err))
	}
	if !resp.IsSuccess() {
		return result, fmt.Errorf("%w: %w", ErrRefreshFailed, mapHTTPError(http.MethodPost, path, resp, parseEnvelope(resp.Body())))
	}

	var env models.Envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return result, fmt.Errorf("%w: %w", ErrRefreshFailed, malformed(http.MethodPost, path, resp, err))
	}
	if !env.OK {
		return result, fmt.Errorf("%w: %w", ErrRefreshFailed, mapHTTPError(http.MethodPost, path, resp, &env))
	}
	if err = json.Unmarshal(env.Data, &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrRefreshFailed, malformed(http.MethodPost, path, resp, err))
	}
	if result.AccessToken == "" {
		return result, fmt.Errorf("%w: response carries no access token", ErrRefreshFailed)
	}
	return result, nil
}
