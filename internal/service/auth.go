// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-console-client/internal/apiclient"
	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/events"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/models"
)

type authService struct {
	api     APIClient
	session SessionStore
	tracker VersionTracker
	paths   config.API

	refetching atomic.Bool
	wg         sync.WaitGroup

	logger *logger.Logger
}

// NewAuthService creates the session service. paths supplies the login,
// logout and profile endpoints.
func NewAuthService(api APIClient, session SessionStore, tracker VersionTracker, paths config.API, log *logger.Logger) AuthService {
	return &authService{api: api, session: session, tracker: tracker, paths: paths, logger: log}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Profile, error) {
	if email == "" || password == "" {
		return models.Profile{}, ErrEmptyCredentials
	}

	resp, err := a.api.Request(ctx, http.MethodPost, a.paths.LoginPath,
		models.LoginRequest{Email: email, Password: password}, apiclient.WithoutAuth())
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrLogin, err)
	}

	var result models.AuthResult
	if err = resp.Decode(&result); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %w", ErrLogin, err)
	}
	if result.AccessToken == "" {
		return models.Profile{}, fmt.Errorf("%w: response carries no access token", ErrLogin)
	}

	if err = a.session.SaveTokens(ctx, result.Tokens()); err != nil {
		return models.Profile{}, fmt.Errorf("save tokens: %w", err)
	}
	profile := result.Profile()
	if err = a.session.SaveProfile(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	a.tracker.Set(profile.AuthzVersion())

	a.logger.Info().Str("email", email).Msg("signed in")
	return profile, nil
}

func (a *authService) Logout(ctx context.Context) error {
	refreshToken, err := a.session.RefreshToken(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to read refresh token for logout")
	}

	if refreshToken != "" {
		_, err = a.api.Request(ctx, http.MethodPost, a.paths.LogoutPath, models.LogoutRequest{RefreshToken: refreshToken})
		if err != nil {
			// the local session is dropped regardless
			a.logger.Warn().Err(err).Msg("backend logout failed")
		}
	}

	if err = a.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.tracker.Set(0)
	return nil
}

func (a *authService) Me(ctx context.Context) (models.Profile, error) {
	resp, err := a.api.Request(ctx, http.MethodGet, a.paths.MePath, nil)
	if err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}

	var profile models.Profile
	if err = resp.Decode(&profile); err != nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	if profile.User == nil {
		return models.Profile{}, fmt.Errorf("fetch profile: %w", ErrNotAuthenticated)
	}

	if err = a.session.SaveProfile(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	a.tracker.Set(profile.AuthzVersion())
	return profile, nil
}

func (a *authService) RestoreSession(ctx context.Context) (models.Profile, error) {
	profile, ok, err := a.session.Profile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return models.Profile{}, ErrNotAuthenticated
	}
	a.tracker.Set(profile.AuthzVersion())
	return profile, nil
}

func (a *authService) HandleVersionOutdated(ctx context.Context, payload any) {
	ev, ok := payload.(events.VersionOutdated)
	if !ok {
		return
	}
	if !a.refetching.CompareAndSwap(false, true) {
		return
	}

	a.logger.Info().
		Int64("server_version", ev.ServerVersion).
		Int64("current_version", ev.CurrentVersion).
		Msg("re-fetching profile for new authorization version")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.refetching.Store(false)

		if _, err := a.Me(context.WithoutCancel(ctx)); err != nil {
			a.logger.Error().Err(err).Msg("failed to re-fetch profile")
		}
	}()
}

func (a *authService) HandleProfileUpdated(_ context.Context, payload any) {
	ev, ok := payload.(events.ProfileUpdated)
	if !ok || ev.User == nil {
		return
	}
	a.tracker.Set(ev.User.AuthzVersion)
}

func (a *authService) Wait() {
	a.wg.Wait()
}
