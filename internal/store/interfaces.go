// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the console credentials: the access token, the
// refresh token and the cached user profile.
//
// [Storage] is a minimal string key/value contract with in-memory, SQL
// (SQLite and PostgreSQL) and Redis implementations. [Credentials] layers
// the configured key names and typed accessors on top of any [Storage].
package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// Storage is a string key/value store. Writes are last-write-wins; no
// implementation coordinates concurrent writers beyond that.
type Storage interface {
	// Get returns the value stored under key, or [ErrKeyNotFound] if the key
	// is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// repeating.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
