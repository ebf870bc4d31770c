// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-console-client/internal/logger"
)

func TestRouter_Navigate(t *testing.T) {
	r := NewRouter("/items", logger.Nop())

	type change struct{ from, to string }
	var changes []change
	r.OnNavigate(func(from, to string) { changes = append(changes, change{from, to}) })

	r.Navigate("/login")
	r.Navigate("/login")

	assert.Equal(t, "/login", r.CurrentPath())
	assert.Equal(t, []change{{"/items", "/login"}}, changes, "same route does not notify")
}

func TestRouter_RemoveListener(t *testing.T) {
	r := NewRouter("", logger.Nop())

	var calls int
	remove := r.OnNavigate(func(string, string) { calls++ })
	r.Navigate("/a")
	remove()
	r.Navigate("/b")

	assert.Equal(t, 1, calls)
}

func TestRouter_ListenerMayReadRoute(t *testing.T) {
	r := NewRouter("/", logger.Nop())

	var seen string
	r.OnNavigate(func(string, string) { seen = r.CurrentPath() })
	r.Navigate("/roles")

	assert.Equal(t, "/roles", seen)
}
