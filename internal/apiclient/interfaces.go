// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"context"

	"github.com/MKhiriev/go-console-client/internal/events"
	"github.com/MKhiriev/go-console-client/models"
)

// CredentialStore persists the token pair and the profile. Absent tokens are
// reported as "" with a nil error. [store.Credentials] implements it.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveTokens(ctx context.Context, pair models.TokenPair) error
	SaveProfile(ctx context.Context, p models.Profile) error
	ClearTokens(ctx context.Context) error
}

// Publisher delivers local session events. [events.Bus] implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any)
}

// Navigator exposes the client-side route. [navigation.Router] implements it.
type Navigator interface {
	CurrentPath() string
	Navigate(path string)
}

// VersionTracker decides whether a server authorization version is news.
// [authz.Tracker] implements it.
type VersionTracker interface {
	Observe(server int64) (events.VersionOutdated, bool)
}
