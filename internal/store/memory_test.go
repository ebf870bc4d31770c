// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_SetGetRemove(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	_, err := s.Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "access_token", "a1"))
	require.NoError(t, s.Set(ctx, "access_token", "a2"))

	v, err := s.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, "a2", v, "last write wins")

	require.NoError(t, s.Remove(ctx, "access_token"))
	require.NoError(t, s.Remove(ctx, "access_token"), "removing an absent key is not an error")

	_, err = s.Get(ctx, "access_token")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStorage_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = s.Set(ctx, key, fmt.Sprint(i))
			_, _ = s.Get(ctx, key)
			if i%7 == 0 {
				_ = s.Remove(ctx, key)
			}
		}()
	}
	wg.Wait()
}
