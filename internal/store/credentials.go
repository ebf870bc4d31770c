// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/models"
)

// Credentials reads and writes the session credentials under the configured
// key names. Absent values are reported as empty, never as errors.
type Credentials struct {
	storage Storage
	keys    config.Keys
}

// NewCredentials binds storage to the persisted key names. Empty names fall
// back to the defaults.
func NewCredentials(storage Storage, keys config.Keys) *Credentials {
	if keys.AccessToken == "" {
		keys.AccessToken = config.DefaultAccessTokenKey
	}
	if keys.RefreshToken == "" {
		keys.RefreshToken = config.DefaultRefreshTokenKey
	}
	if keys.Profile == "" {
		keys.Profile = config.DefaultProfileKey
	}
	return &Credentials{storage: storage, keys: keys}
}

// AccessToken returns the stored access token or "" if there is none.
func (c *Credentials) AccessToken(ctx context.Context) (string, error) {
	return c.get(ctx, c.keys.AccessToken)
}

// RefreshToken returns the stored refresh token or "" if there is none.
func (c *Credentials) RefreshToken(ctx context.Context) (string, error) {
	return c.get(ctx, c.keys.RefreshToken)
}

// SaveTokens persists both tokens of pair. An empty refresh token leaves the
// stored one in place.
func (c *Credentials) SaveTokens(ctx context.Context, pair models.TokenPair) error {
	if err := c.storage.Set(ctx, c.keys.AccessToken, pair.AccessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if pair.RefreshToken == "" {
		return nil
	}
	if err := c.storage.Set(ctx, c.keys.RefreshToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Profile returns the cached {user, session} profile. ok is false when no
// profile has been stored.
func (c *Credentials) Profile(ctx context.Context) (models.Profile, bool, error) {
	raw, err := c.get(ctx, c.keys.Profile)
	if err != nil || raw == "" {
		return models.Profile{}, false, err
	}

	var p models.Profile
	if err = json.Unmarshal([]byte(raw), &p); err != nil {
		return models.Profile{}, false, fmt.Errorf("decode stored profile: %w", err)
	}
	return p, true, nil
}

// SaveProfile stores p as JSON.
func (c *Credentials) SaveProfile(ctx context.Context, p models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err = c.storage.Set(ctx, c.keys.Profile, string(raw)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ClearTokens removes both tokens and keeps the profile.
func (c *Credentials) ClearTokens(ctx context.Context) error {
	return errors.Join(
		c.storage.Remove(ctx, c.keys.AccessToken),
		c.storage.Remove(ctx, c.keys.RefreshToken),
	)
}

// Clear removes both tokens and the profile.
func (c *Credentials) Clear(ctx context.Context) error {
	return errors.Join(
		c.ClearTokens(ctx),
		c.storage.Remove(ctx, c.keys.Profile),
	)
}

func (c *Credentials) get(ctx context.Context, key string) (string, error) {
	v, err := c.storage.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %q: %w", key, err)
	}
	return v, nil
}
