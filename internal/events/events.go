// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events is the in-process publish/subscribe channel for session
// events raised by the API client: authorization version drift and refreshed
// profiles. Events can optionally be forwarded to NATS.
package events

import "github.com/MKhiriev/go-console-client/models"

// Topic names.
const (
	// TopicVersionOutdated is published when a response carries an
	// authorization version newer than the cached one. Payload: [VersionOutdated].
	TopicVersionOutdated = "auth:version-outdated"

	// TopicProfileUpdated is published after a successful token refresh.
	// Payload: [ProfileUpdated].
	TopicProfileUpdated = "auth:profile-updated"
)

// VersionOutdated reports authorization drift between the server and the
// locally cached profile. It is advisory.
type VersionOutdated struct {
	ServerVersion  int64 `json:"serverVersion"`
	CurrentVersion int64 `json:"currentVersion"`
}

// ProfileUpdated carries the session state obtained from a token refresh.
// User and Session are nil when the backend did not return them.
type ProfileUpdated struct {
	User    *models.User     `json:"user,omitempty"`
	Session *models.Session  `json:"session,omitempty"`
	Tokens  models.TokenPair `json:"-"`
}
