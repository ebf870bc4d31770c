// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied to every field left empty by env, flags and JSON.
const (
	DefaultBaseURL         = "http://localhost:8080/api"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultLoginPath       = "/auth/login"
	DefaultRefreshPath     = "/auth/refresh"
	DefaultLogoutPath      = "/auth/logout"
	DefaultMePath          = "/auth/me"
	DefaultLoginRoute      = "/login"
	DefaultStorageBackend  = BackendSQLite
	DefaultStorageDSN      = "console.db"
	DefaultKeyPrefix       = "console:"
	DefaultAccessTokenKey  = "access_token"
	DefaultRefreshTokenKey = "refresh_token"
	DefaultProfileKey      = "auth_profile"
	DefaultSubjectPrefix   = "console"
	DefaultRefreshInterval = time.Minute
	DefaultRefreshLeeway   = 2 * time.Minute
	DefaultLogLevel        = "debug"
)

// Storage backends understood by store.NewStorage.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Defaults returns a config populated with every default value.
func Defaults() *StructuredConfig {
	share := true
	return &StructuredConfig{
		API: API{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: DefaultRequestTimeout,
			LoginPath:      DefaultLoginPath,
			RefreshPath:    DefaultRefreshPath,
			LogoutPath:     DefaultLogoutPath,
			MePath:         DefaultMePath,
			LoginRoute:     DefaultLoginRoute,
			ShareRefresh:   &share,
		},
		Storage: Storage{
			Backend:   DefaultStorageBackend,
			DSN:       DefaultStorageDSN,
			KeyPrefix: DefaultKeyPrefix,
			Keys: Keys{
				AccessToken:  DefaultAccessTokenKey,
				RefreshToken: DefaultRefreshTokenKey,
				Profile:      DefaultProfileKey,
			},
		},
		Events: Events{
			SubjectPrefix: DefaultSubjectPrefix,
		},
		Workers: Workers{
			RefreshInterval: DefaultRefreshInterval,
			RefreshLeeway:   DefaultRefreshLeeway,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}
