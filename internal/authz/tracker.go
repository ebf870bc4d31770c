// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authz tracks the authorization version of the cached profile and
// detects when the backend reports a newer one.
package authz

import (
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-console-client/internal/events"
)

// HeaderVersion is the response header carrying the server-side
// authorization version.
const HeaderVersion = "X-Authz-Version"

// Tracker holds the locally known authorization version. It is safe for
// concurrent use.
type Tracker struct {
	mu      sync.Mutex
	current int64
}

// NewTracker returns a tracker starting at version current.
func NewTracker(current int64) *Tracker {
	return &Tracker{current: current}
}

// Current returns the locally known version.
func (t *Tracker) Current() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Set records v as the locally known version, typically after the profile
// has been re-fetched.
func (t *Tracker) Set(v int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = v
}

// Observe compares a server version with the local one and reports drift
// whenever server is newer. Drift keeps being reported until Set catches the
// local version up.
func (t *Tracker) Observe(server int64) (events.VersionOutdated, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if server <= t.current {
		return events.VersionOutdated{}, false
	}
	return events.VersionOutdated{ServerVersion: server, CurrentVersion: t.current}, true
}

// ParseVersion parses an X-Authz-Version header value. ok is false for an
// absent or malformed header.
func ParseVersion(header string) (int64, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
