// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	API struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		LoginPath      string   `json:"login_path"`
		RefreshPath    string   `json:"refresh_path"`
		LogoutPath     string   `json:"logout_path"`
		MePath         string   `json:"me_path"`
		LoginRoute     string   `json:"login_route"`
		ShareRefresh   *bool    `json:"share_refresh"`
	} `json:"api,omitempty"`

	Storage struct {
		Backend   string `json:"backend"`
		DSN       string `json:"dsn"`
		RedisURL  string `json:"redis_url"`
		KeyPrefix string `json:"key_prefix"`
		Keys      struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			Profile      string `json:"profile"`
		} `json:"keys,omitempty"`
	} `json:"storage,omitempty"`

	Events struct {
		NATSURL       string `json:"nats_url"`
		SubjectPrefix string `json:"subject_prefix"`
	} `json:"events,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
		RefreshLeeway   Duration `json:"refresh_leeway"`
	} `json:"workers,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		API: API{
			BaseURL:        jsonCfg.API.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.API.RequestTimeout),
			LoginPath:      jsonCfg.API.LoginPath,
			RefreshPath:    jsonCfg.API.RefreshPath,
			LogoutPath:     jsonCfg.API.LogoutPath,
			MePath:         jsonCfg.API.MePath,
			LoginRoute:     jsonCfg.API.LoginRoute,
			ShareRefresh:   jsonCfg.API.ShareRefresh,
		},
		Storage: Storage{
			Backend:   jsonCfg.Storage.Backend,
			DSN:       jsonCfg.Storage.DSN,
			RedisURL:  jsonCfg.Storage.RedisURL,
			KeyPrefix: jsonCfg.Storage.KeyPrefix,
			Keys: Keys{
				AccessToken:  jsonCfg.Storage.Keys.AccessToken,
				RefreshToken: jsonCfg.Storage.Keys.RefreshToken,
				Profile:      jsonCfg.Storage.Keys.Profile,
			},
		},
		Events: Events{
			NATSURL:       jsonCfg.Events.NATSURL,
			SubjectPrefix: jsonCfg.Events.SubjectPrefix,
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
			RefreshLeeway:   time.Duration(jsonCfg.Workers.RefreshLeeway),
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
