// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the console command-line application runtime.
//
// It wires credential storage, the event bus, the authenticated API client,
// domain services and background workers into a single process lifecycle
// and dispatches CLI commands onto them.
package client
