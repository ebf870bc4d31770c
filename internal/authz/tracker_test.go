// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-console-client/internal/events"
)

func TestTracker_Observe(t *testing.T) {
	tr := NewTracker(3)

	_, outdated := tr.Observe(3)
	assert.False(t, outdated, "same version")

	_, outdated = tr.Observe(2)
	assert.False(t, outdated, "older version")

	ev, outdated := tr.Observe(5)
	assert.True(t, outdated)
	assert.Equal(t, events.VersionOutdated{ServerVersion: 5, CurrentVersion: 3}, ev)

	ev, outdated = tr.Observe(5)
	assert.True(t, outdated, "still stale until the local version catches up")
	assert.Equal(t, events.VersionOutdated{ServerVersion: 5, CurrentVersion: 3}, ev)
}

func TestTracker_SetCatchesUp(t *testing.T) {
	tr := NewTracker(1)
	tr.Set(7)

	assert.Equal(t, int64(7), tr.Current())
	_, outdated := tr.Observe(7)
	assert.False(t, outdated)
	_, outdated = tr.Observe(8)
	assert.True(t, outdated)
}

func TestTracker_LowerVersionAfterRelogin(t *testing.T) {
	tr := NewTracker(0)

	tr.Set(8)
	_, outdated := tr.Observe(10)
	require.True(t, outdated)

	// logout, then another user signs in with a lower version
	tr.Set(0)
	tr.Set(2)

	ev, outdated := tr.Observe(4)
	assert.True(t, outdated)
	assert.Equal(t, events.VersionOutdated{ServerVersion: 4, CurrentVersion: 2}, ev)
}

func TestTracker_ConcurrentObserve(t *testing.T) {
	tr := NewTracker(0)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		count int
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := tr.Observe(9); ok {
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, count)
	assert.Equal(t, int64(0), tr.Current())
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"", 0, false},
		{"12", 12, true},
		{" 4 ", 4, true},
		{"v2", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVersion(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
