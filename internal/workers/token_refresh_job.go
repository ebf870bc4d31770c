// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/internal/utils"
)

// TokenRefreshJob renews the access token shortly before it expires, so
// that interactive requests rarely hit a 401. Only JWT access tokens carry
// an expiry the client can read; opaque tokens are left to the reactive
// refresh of the API client.
type TokenRefreshJob struct {
	refresher Refresher
	tokens    TokenSource
	interval  time.Duration
	leeway    time.Duration
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewTokenRefreshJob creates an idle job. A non-positive interval defaults
// to config.DefaultRefreshInterval.
func NewTokenRefreshJob(refresher Refresher, tokens TokenSource, cfg config.Workers, log *logger.Logger) *TokenRefreshJob {
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = config.DefaultRefreshInterval
	}
	return &TokenRefreshJob{
		refresher: refresher,
		tokens:    tokens,
		interval:  interval,
		leeway:    cfg.RefreshLeeway,
		now:       time.Now,
		logger:    log,
	}
}

// Start implements [Worker]. Any previously running loop is stopped first.
func (j *TokenRefreshJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.Check(jobCtx); err != nil {
					j.logger.Warn().Err(err).Msg("proactive token refresh failed")
				}
			}
		}
	}()
}

// Stop implements [Worker].
func (j *TokenRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Check runs one iteration: it refreshes the token pair when the stored
// access token expires within the leeway. refreshed reports whether a
// refresh was attempted successfully.
func (j *TokenRefreshJob) Check(ctx context.Context) (refreshed bool, err error) {
	token, err := j.tokens.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	expiresAt, err := utils.TokenExpiry(token)
	if err != nil {
		// opaque token or no exp claim
		return false, nil
	}
	if expiresAt.Sub(j.now()) > j.leeway {
		return false, nil
	}

	j.logger.Debug().Time("expires_at", expiresAt).Msg("access token close to expiry, refreshing")
	if err = j.refresher.Refresh(ctx); err != nil {
		return false, err
	}
	return true, nil
}
