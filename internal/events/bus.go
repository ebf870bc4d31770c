// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-console-client/internal/logger"
)

// Handler receives a published payload. It runs on the publisher's
// goroutine and must not block for long.
type Handler func(ctx context.Context, payload any)

// Bus is a synchronous in-process event bus. It is safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]map[uint64]Handler
	nextID   uint64

	logger *logger.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string]map[uint64]Handler),
		logger:   logger,
	}
}

// Subscribe registers h for topic and returns a function removing it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(topic string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[uint64]Handler)
	}
	b.handlers[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

// Publish delivers payload to every handler subscribed to topic, in no
// particular order. A panicking handler is logged and skipped; the others
// still run.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[topic]))
	for _, h := range b.handlers[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, topic, h, payload)
	}
}

func (b *Bus) dispatch(ctx context.Context, topic string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Str("topic", topic).Interface("panic", r).Msg("event handler panicked")
		}
	}()
	h(ctx, payload)
}
