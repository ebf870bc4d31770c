// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/logger"
)

// Storages groups the credential storage with the handle that has to be
// closed on shutdown.
type Storages struct {
	// Storage is the raw key/value backend.
	Storage Storage

	// Credentials is the typed view over Storage used by the API client.
	Credentials *Credentials

	close func() error
}

// NewStorages initialises the storage layer selected by cfg.Backend:
//   - "memory"  : process-local map;
//   - "sqlite"  : file database at cfg.DSN, migrated on open;
//   - "postgres": pgx connection to cfg.DSN, migrated on open;
//   - "redis"   : client for cfg.RedisURL with cfg.KeyPrefix.
//
// An empty backend selects memory.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("backend", cfg.Backend).Msg("creating new storages...")

	storage, closeFn, err := NewStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Storage:     storage,
		Credentials: NewCredentials(storage, cfg.Keys),
		close:       closeFn,
	}, nil
}

// NewStorage builds the [Storage] for cfg.Backend and returns a function
// releasing its connection.
func NewStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) (Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStorage(), noop, nil

	case config.BackendSQLite, config.BackendPostgres:
		var (
			db  *DB
			err error
		)
		if cfg.Backend == config.BackendSQLite {
			db, err = NewConnectSQLite(ctx, cfg.DSN, logger)
		} else {
			db, err = NewConnectPostgres(ctx, cfg.DSN, logger)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s connection error: %w", cfg.Backend, err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLStorage(db, logger), db.Close, nil

	case config.BackendRedis:
		client, err := NewConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStorage(client, cfg.KeyPrefix), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Close releases the underlying connection.
func (s *Storages) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}
