// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the authenticated console operator as returned by the backend.
type User struct {
	// ID is the backend identifier of the user.
	ID string `json:"id"`

	// Email is the login e-mail of the user.
	Email string `json:"email"`

	// Name is the display name shown in the console.
	Name string `json:"name,omitempty"`

	// Roles lists the role codes assigned to the user.
	Roles []string `json:"roles,omitempty"`

	// Permissions lists the effective permission codes of the user.
	Permissions []string `json:"permissions,omitempty"`

	// AuthzVersion is the server-side authorization version the permission
	// set above was computed for. It is compared with the X-Authz-Version
	// response header to detect stale permissions.
	AuthzVersion int64 `json:"authzVersion,omitempty"`
}

// HasPermission reports whether the user holds the given permission code.
func (u *User) HasPermission(code string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// Session describes the server-side login session.
type Session struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Profile is the persisted {user, session} blob.
type Profile struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// AuthzVersion returns the authorization version of the stored user, or zero
// when no user is stored.
func (p Profile) AuthzVersion() int64 {
	if p.User == nil {
		return 0
	}
	return p.User.AuthzVersion
}
