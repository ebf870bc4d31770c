// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a field set by an earlier source
// is not overwritten by a later one, while empty fields are filled.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{API: API{BaseURL: "http://first:8080"}},
		&StructuredConfig{API: API{BaseURL: "http://second:8080", LoginPath: "/login"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://first:8080", cfg.API.BaseURL)
	assert.Equal(t, "/login", cfg.API.LoginPath)
}

func TestBuild_ValidationError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Storage: Storage{Backend: "etcd"}})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsEverything(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.API.RequestTimeout)
	assert.Equal(t, DefaultRefreshPath, cfg.API.RefreshPath)
	assert.True(t, cfg.API.SharedRefresh())
	assert.Equal(t, []string{DefaultLoginPath, DefaultRefreshPath, DefaultLogoutPath}, cfg.API.AuthPaths())
	assert.Equal(t, DefaultAccessTokenKey, cfg.Storage.Keys.AccessToken)
	assert.Equal(t, DefaultRefreshTokenKey, cfg.Storage.Keys.RefreshToken)
	assert.Equal(t, DefaultProfileKey, cfg.Storage.Keys.Profile)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultRefreshInterval, cfg.Workers.RefreshInterval)
}

// TestWithDefaults_DoNotOverrideExplicitFalse verifies that an explicit
// share-refresh=false survives the defaults layer.
func TestWithDefaults_DoNotOverrideExplicitFalse(t *testing.T) {
	off := false
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{API: API{ShareRefresh: &off}})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)
	assert.False(t, cfg.API.SharedRefresh())
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPath_NoOp(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"api": map[string]any{"base_url": "http://json:8080", "request_timeout": "5s"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	cfg, err := b.withJSON().build()

	require.NoError(t, err)
	assert.Equal(t, "http://json:8080", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
}

func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	require.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_Priority(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"api":     map[string]any{"base_url": "http://json:1", "login_route": "/json-login"},
		"storage": map[string]any{"backend": "memory"},
	})
	setEnvVars(t, map[string]string{
		"API_BASE_URL": "http://env:1",
		"CONFIG":       jsonPath,
	})

	cfg, err := GetStructuredConfig([]string{"-u", "http://flag:1", "-request-timeout", "3s", "whoami"})
	require.NoError(t, err)

	assert.Equal(t, "http://env:1", cfg.API.BaseURL, "env wins over flags and json")
	assert.Equal(t, 3*time.Second, cfg.API.RequestTimeout, "flag fills what env left empty")
	assert.Equal(t, "/json-login", cfg.API.LoginRoute, "json fills what env and flags left empty")
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, DefaultMePath, cfg.API.MePath, "defaults fill the rest")
	assert.Equal(t, []string{"whoami"}, cfg.Command)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{"zero config", StructuredConfig{}, nil},
		{"defaults", *Defaults(), nil},
		{"base url without scheme", StructuredConfig{API: API{BaseURL: "localhost:8080"}}, ErrInvalidAPIConfigs},
		{"negative timeout", StructuredConfig{API: API{RequestTimeout: -time.Second}}, ErrInvalidAPIConfigs},
		{"relative path", StructuredConfig{API: API{RefreshPath: "auth/refresh"}}, ErrInvalidAPIConfigs},
		{"sqlite without dsn", StructuredConfig{Storage: Storage{Backend: BackendSQLite}}, ErrInvalidStorageConfigs},
		{"redis without url", StructuredConfig{Storage: Storage{Backend: BackendRedis}}, ErrInvalidStorageConfigs},
		{"unknown backend", StructuredConfig{Storage: Storage{Backend: "etcd"}}, ErrInvalidStorageConfigs},
		{"negative leeway", StructuredConfig{Workers: Workers{RefreshLeeway: -time.Second}}, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
