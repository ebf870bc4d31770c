// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenPair is the access/refresh credential pair held by the client.
//
// Both values are opaque to the client. AccessToken is attached to every
// outgoing request as a bearer credential, RefreshToken is spent exactly once
// per refresh cycle to obtain a new pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IsZero reports whether neither token is set.
func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// RefreshRequest is the body of the token exchange call.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginRequest is the body of the credentials login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LogoutRequest is the body of the logout call. The refresh token is sent so
// the backend can revoke it.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AuthResult is the payload returned by both the login and the token exchange
// endpoints. User and Session are optional for the token exchange.
type AuthResult struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *User    `json:"user,omitempty"`
	Session      *Session `json:"session,omitempty"`
}

// Tokens returns the credential pair carried by the result.
func (r AuthResult) Tokens() TokenPair {
	return TokenPair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

// Profile returns the {user, session} blob carried by the result.
func (r AuthResult) Profile() Profile {
	return Profile{User: r.User, Session: r.Session}
}
