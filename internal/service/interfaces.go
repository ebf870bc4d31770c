// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the domain services of the console. They are thin
// consumers of the authenticated API client: the session workflow
// ([AuthService]) and typed CRUD access to the catalog collections
// ([Resource]).
package service

import (
	"context"

	"github.com/MKhiriev/go-console-client/internal/apiclient"
	"github.com/MKhiriev/go-console-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// APIClient sends a request through the authenticated pipeline.
// [apiclient.Client] implements it.
type APIClient interface {
	Request(ctx context.Context, method, path string, body any, opts ...apiclient.RequestOption) (*apiclient.Response, error)
}

// SessionStore persists the session state. [store.Credentials] implements it.
type SessionStore interface {
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, pair models.TokenPair) error
	Profile(ctx context.Context) (models.Profile, bool, error)
	SaveProfile(ctx context.Context, p models.Profile) error
	Clear(ctx context.Context) error
}

// VersionTracker holds the authorization version of the cached profile.
// [authz.Tracker] implements it.
type VersionTracker interface {
	Current() int64
	Set(v int64)
}

// AuthService drives the console session.
type AuthService interface {
	// Login exchanges credentials for a token pair and persists the pair
	// together with the returned profile.
	Login(ctx context.Context, email, password string) (models.Profile, error)

	// Logout revokes the refresh token on the backend, best effort, and
	// always clears the local session.
	Logout(ctx context.Context) error

	// Me fetches the current profile from the backend and caches it.
	Me(ctx context.Context) (models.Profile, error)

	// RestoreSession loads the cached profile and primes the version
	// tracker with it. Returns [ErrNotAuthenticated] when nothing is cached.
	RestoreSession(ctx context.Context) (models.Profile, error)

	// HandleVersionOutdated is an events.TopicVersionOutdated subscriber. It
	// re-fetches the profile in the background.
	HandleVersionOutdated(ctx context.Context, payload any)

	// HandleProfileUpdated is an events.TopicProfileUpdated subscriber. It
	// moves the version tracker to the refreshed profile.
	HandleProfileUpdated(ctx context.Context, payload any)

	// Wait blocks until background profile re-fetches have finished.
	Wait()
}

// Collection is the untyped view of a [Resource] used by the command line.
type Collection interface {
	Path() string
	ListAny(ctx context.Context, params models.ListParams) (any, error)
	GetAny(ctx context.Context, id string) (any, error)
	Delete(ctx context.Context, id string) error
}
