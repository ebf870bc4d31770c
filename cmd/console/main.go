// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-console-client/internal/client"
	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("console").Fatal().Err(err).Msg("error getting configs")
	}

	if len(cfg.Command) > 0 && cfg.Command[0] == "version" {
		fmt.Println(buildInfo)
		return
	}

	log := logger.NewClientLogger("console", cfg.Log.File, cfg.Log.Level)
	log.Debug().Str("version", buildInfo.BuildVersion()).Str("backend", cfg.Storage.Backend).Msg("starting console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := client.NewApp(ctx, cfg, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init console app error")
	}

	err = app.Run(ctx, cfg.Command)
	if closeErr := app.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("error closing console app")
	}
	if err != nil {
		log.Error().Err(err).Strs("command", cfg.Command).Msg("command failed")
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, client.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
