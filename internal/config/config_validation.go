// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged configuration. A zero-value config (nothing
// loaded at all) is accepted so that partial builders can be tested; every
// populated group must however be coherent.
func (cfg *StructuredConfig) validate() error {
	if cfg.API.BaseURL != "" {
		u, err := url.Parse(cfg.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: base url %q must include scheme and host", ErrInvalidAPIConfigs, cfg.API.BaseURL)
		}
	}
	if cfg.API.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAPIConfigs)
	}
	for _, p := range []string{cfg.API.LoginPath, cfg.API.RefreshPath, cfg.API.LogoutPath, cfg.API.MePath} {
		if p != "" && !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: endpoint path %q must start with /", ErrInvalidAPIConfigs, p)
		}
	}

	switch cfg.Storage.Backend {
	case "", BackendMemory:
	case BackendSQLite, BackendPostgres:
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("%w: %s backend requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.Backend)
		}
	case BackendRedis:
		if cfg.Storage.RedisURL == "" {
			return fmt.Errorf("%w: redis backend requires a redis url", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Workers.RefreshInterval < 0 || cfg.Workers.RefreshLeeway < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidWorkerConfigs)
	}

	return nil
}
