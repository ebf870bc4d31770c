// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-console-client/internal/logger"
)

func TestBus_PublishDeliversToTopicSubscribers(t *testing.T) {
	bus := NewBus(logger.Nop())

	var got []any
	bus.Subscribe(TopicVersionOutdated, func(_ context.Context, p any) { got = append(got, p) })
	bus.Subscribe(TopicProfileUpdated, func(context.Context, any) { t.Error("wrong topic delivered") })

	bus.Publish(context.Background(), TopicVersionOutdated, VersionOutdated{ServerVersion: 3, CurrentVersion: 2})

	require.Len(t, got, 1)
	assert.Equal(t, VersionOutdated{ServerVersion: 3, CurrentVersion: 2}, got[0])
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(logger.Nop())

	var calls int
	unsubscribe := bus.Subscribe("t", func(context.Context, any) { calls++ })

	bus.Publish(context.Background(), "t", nil)
	unsubscribe()
	unsubscribe()
	bus.Publish(context.Background(), "t", nil)

	assert.Equal(t, 1, calls)
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus(logger.Nop())

	var delivered bool
	bus.Subscribe("t", func(context.Context, any) { panic("boom") })
	bus.Subscribe("t", func(context.Context, any) { delivered = true })

	assert.NotPanics(t, func() { bus.Publish(context.Background(), "t", 1) })
	assert.True(t, delivered)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus(logger.Nop()).Publish(context.Background(), "nobody", nil)
	})
}

func TestBus_SubscribeFromHandler(t *testing.T) {
	bus := NewBus(logger.Nop())

	bus.Subscribe("t", func(context.Context, any) {
		bus.Subscribe("t", func(context.Context, any) {})
	})

	assert.NotPanics(t, func() { bus.Publish(context.Background(), "t", nil) })
}

func TestBus_Concurrent(t *testing.T) {
	bus := NewBus(logger.Nop())
	var n atomic.Int64

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe("t", func(context.Context, any) { n.Add(1) })
			defer unsub()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), "t", nil)
		}()
	}
	wg.Wait()
}
