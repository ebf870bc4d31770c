// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker and returns immediately; the worker runs until
// ctx is cancelled or Stop is called. Stop blocks until the worker has
// exited and is a no-op for a worker that is not running.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go loop(ctx)
//	}
//
//	func (w *MyWorker) Stop() { w.cancel() }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Refresher renews the token pair. [apiclient.Client] implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// TokenSource reads the stored access token. [store.Credentials]
// implements it.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
