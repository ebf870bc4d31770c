// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package navigation models the console's client-side route. The API client
// only needs to know where the user is and to send them to the login route
// when the session is lost.
package navigation

import (
	"sync"

	"github.com/MKhiriev/go-console-client/internal/logger"
)

// Listener is notified after every route change.
type Listener func(from, to string)

// Router keeps the current route. It is safe for concurrent use.
type Router struct {
	mu        sync.RWMutex
	current   string
	listeners map[int]Listener
	nextID    int

	logger *logger.Logger
}

// NewRouter returns a router positioned at initial.
func NewRouter(initial string, logger *logger.Logger) *Router {
	return &Router{
		current:   initial,
		listeners: make(map[int]Listener),
		logger:    logger,
	}
}

// CurrentPath returns the current route.
func (r *Router) CurrentPath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate moves to path and notifies listeners. Navigating to the current
// route is a no-op.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	from := r.current
	if from == path {
		r.mu.Unlock()
		return
	}
	r.current = path
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.mu.Unlock()

	r.logger.Debug().Str("from", from).Str("to", path).Msg("navigate")
	for _, l := range listeners {
		l(from, path)
	}
}

// OnNavigate registers l and returns a function removing it.
func (r *Router) OnNavigate(l Listener) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.listeners[id] = l
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}
