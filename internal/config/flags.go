// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"
)

// parseFlags parses the configuration flags found in args. Flag parsing stops
// at the first non-flag argument; the remaining arguments are the CLI command
// and are stored in [StructuredConfig.Command].
//
// Flags:
//
//	-u / -base-url        backend base URL
//	-request-timeout      request timeout (e.g., "30s", "1m")
//	-share-refresh        share one token exchange between concurrent 401s (true/false)
//	-storage              storage backend (memory, sqlite, postgres, redis)
//	-d                    database DSN
//	-redis-url            redis URL
//	-nats-url             NATS URL for event forwarding
//	-refresh-interval     proactive refresh check interval
//	-refresh-leeway       renew access tokens expiring within this window
//	-log-level            log level
//	-log-file             log file path
//	-c / -config          json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := newFlagSet()

	var (
		baseURL         string
		requestTimeout  time.Duration
		shareRefresh    string
		backend         string
		dsn             string
		redisURL        string
		natsURL         string
		refreshInterval time.Duration
		refreshLeeway   time.Duration
		logLevel        string
		logFile         string
		jsonConfigPath  string
	)

	fs.StringVar(&baseURL, "u", "", "Backend base URL")
	fs.StringVar(&baseURL, "base-url", "", "Backend base URL (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&shareRefresh, "share-refresh", "", "Share one token refresh between concurrent requests (true/false)")
	fs.StringVar(&backend, "storage", "", "Storage backend: memory, sqlite, postgres, redis")
	fs.StringVar(&dsn, "d", "", "Database DSN")
	fs.StringVar(&redisURL, "redis-url", "", "Redis URL")
	fs.StringVar(&natsURL, "nats-url", "", "NATS URL for auth event forwarding")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Proactive token refresh check interval")
	fs.DurationVar(&refreshLeeway, "refresh-leeway", 0, "Renew access tokens expiring within this window")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		API: API{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Backend:  backend,
			DSN:      dsn,
			RedisURL: redisURL,
		},
		Events: Events{
			NATSURL: natsURL,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
			RefreshLeeway:   refreshLeeway,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		JSONFilePath: jsonConfigPath,
		Command:      fs.Args(),
	}

	if shareRefresh != "" {
		v, err := strconv.ParseBool(shareRefresh)
		if err != nil {
			return nil, fmt.Errorf("error parsing -share-refresh: %w", err)
		}
		cfg.API.ShareRefresh = &v
	}

	return cfg, nil
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
