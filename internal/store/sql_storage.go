// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-console-client/internal/logger"
)

const (
	kvTable       = "console_kv"
	kvNameColumn  = "name"
	kvValueColumn = "value"

	upsertSuffix = "ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP"
)

// sqlStorage is the SQL-backed implementation of [Storage] on top of the
// console_kv table. It works with both SQLite and PostgreSQL; queries are
// built with squirrel in the dialect's placeholder format.
type sqlStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLStorage constructs a [Storage] backed by db. The schema must already
// be migrated (see [DB.Migrate]).
func NewSQLStorage(db *DB, logger *logger.Logger) Storage {
	logger.Debug().Str("dialect", db.dialect).Msg("creating sql storage")
	return &sqlStorage{db: db, logger: logger}
}

func (s *sqlStorage) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.db.builder().
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvNameColumn: key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sqlStorage.Get").Str("key", key).Msg("error reading key")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *sqlStorage) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.db.builder().
		Insert(kvTable).
		Columns(kvNameColumn, kvValueColumn).
		Values(key, value).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*sqlStorage.Set").Str("key", key).Msg("error writing key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlStorage) Remove(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.db.builder().
		Delete(kvTable).
		Where(sq.Eq{kvNameColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*sqlStorage.Remove").Str("key", key).Msg("error removing key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
