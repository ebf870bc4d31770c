// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Variables are looked up
// through the `env` and `envPrefix` tags, so API_BASE_URL lands in
// cfg.API.BaseURL and STORAGE_BACKEND in cfg.Storage.Backend.
func parseEnv(cfg *StructuredConfig) error {
	opts := env.Options{Environment: env.ToMap(os.Environ())}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("read console config from environment: %w", err)
	}
	return nil
}
