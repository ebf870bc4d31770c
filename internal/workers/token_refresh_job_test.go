// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/internal/testutil"
)

// spyRefresher считает вызовы Refresh.
type spyRefresher struct {
	calls atomic.Int64
	err   error
}

func (s *spyRefresher) Refresh(context.Context) error {
	s.calls.Add(1)
	return s.err
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AccessToken(context.Context) (string, error) {
	return s.token, s.err
}

func jwtExpiringIn(t *testing.T, d time.Duration) string {
	t.Helper()
	token, err := testutil.GenerateJWTToken("backend", "u1", d, "secret")
	require.NoError(t, err)
	return token
}

func newTestJob(refresher Refresher, tokens TokenSource, interval time.Duration) *TokenRefreshJob {
	return NewTokenRefreshJob(refresher, tokens, config.Workers{
		RefreshInterval: interval,
		RefreshLeeway:   2 * time.Minute,
	}, logger.Nop())
}

// ── Check ────────────────────────────────────────────────────────────────────

func TestTokenRefreshJob_Check(t *testing.T) {
	tests := []struct {
		name          string
		token         func(t *testing.T) string
		wantRefreshed bool
		wantCalls     int64
	}{
		{
			name:          "expires within leeway",
			token:         func(t *testing.T) string { return jwtExpiringIn(t, time.Minute) },
			wantRefreshed: true,
			wantCalls:     1,
		},
		{
			name:          "already expired",
			token:         func(t *testing.T) string { return jwtExpiringIn(t, -time.Minute) },
			wantRefreshed: true,
			wantCalls:     1,
		},
		{
			name:  "far from expiry",
			token: func(t *testing.T) string { return jwtExpiringIn(t, time.Hour) },
		},
		{
			name:  "opaque token",
			token: func(*testing.T) string { return "opaque-token" },
		},
		{
			name:  "no token",
			token: func(*testing.T) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyRefresher{}
			job := newTestJob(spy, staticTokens{token: tt.token(t)}, time.Minute)

			refreshed, err := job.Check(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantRefreshed, refreshed)
			assert.Equal(t, tt.wantCalls, spy.calls.Load())
		})
	}
}

func TestTokenRefreshJob_Check_Errors(t *testing.T) {
	t.Run("token source", func(t *testing.T) {
		job := newTestJob(&spyRefresher{}, staticTokens{err: errors.New("db down")}, time.Minute)
		_, err := job.Check(context.Background())
		assert.Error(t, err)
	})

	t.Run("refresh", func(t *testing.T) {
		refreshErr := errors.New("refresh failed")
		job := newTestJob(&spyRefresher{err: refreshErr}, staticTokens{token: jwtExpiringIn(t, time.Minute)}, time.Minute)
		refreshed, err := job.Check(context.Background())
		assert.ErrorIs(t, err, refreshErr)
		assert.False(t, refreshed)
	})
}

func TestTokenRefreshJob_Check_UsesClock(t *testing.T) {
	spy := &spyRefresher{}
	job := newTestJob(spy, staticTokens{token: jwtExpiringIn(t, time.Hour)}, time.Minute)
	job.now = func() time.Time { return time.Now().Add(59 * time.Minute) }

	refreshed, err := job.Check(context.Background())

	require.NoError(t, err)
	assert.True(t, refreshed)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestTokenRefreshJob_Start_RefreshesPeriodically(t *testing.T) {
	spy := &spyRefresher{}
	job := newTestJob(spy, staticTokens{token: jwtExpiringIn(t, time.Minute)}, 10*time.Millisecond)

	// Интервал 10ms, за 55ms должно быть несколько тиков
	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}

func TestTokenRefreshJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyRefresher{}
	job := newTestJob(spy, staticTokens{token: jwtExpiringIn(t, time.Minute)}, 10*time.Millisecond)

	job.Start(context.Background())
	time.Sleep(25 * time.Millisecond)
	job.Stop()

	after := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, spy.calls.Load(), "после Stop вызовов быть не должно")
}

func TestTokenRefreshJob_Stop_WithoutStart(t *testing.T) {
	job := newTestJob(&spyRefresher{}, staticTokens{}, time.Minute)

	// не должно паниковать и блокироваться
	job.Stop()
	job.Stop()
}

func TestTokenRefreshJob_ContextCancelStops(t *testing.T) {
	spy := &spyRefresher{}
	job := newTestJob(spy, staticTokens{token: jwtExpiringIn(t, time.Minute)}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}

func TestTokenRefreshJob_RestartReplacesLoop(t *testing.T) {
	spy := &spyRefresher{}
	job := newTestJob(spy, staticTokens{token: jwtExpiringIn(t, time.Minute)}, 10*time.Millisecond)

	job.Start(context.Background())
	job.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	job.Stop()

	// один цикл: не больше ~3-4 тиков
	assert.LessOrEqual(t, spy.calls.Load(), int64(5))
}

func TestNewTokenRefreshJob_DefaultInterval(t *testing.T) {
	job := NewTokenRefreshJob(&spyRefresher{}, staticTokens{}, config.Workers{}, logger.Nop())
	assert.Equal(t, config.DefaultRefreshInterval, job.interval)
}
