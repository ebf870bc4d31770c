// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apiclient is the authenticated HTTP client of the console. Every
// domain service talks to the backend through [Client.Request].
//
// Outbound, the pipeline attaches the stored access token as a bearer
// credential, a fresh X-Request-ID and a start timestamp. Inbound, it logs
// the request duration, records metrics and compares the X-Authz-Version
// header with the cached authorization version.
//
// When a request fails authorization (HTTP 401, an X-Token-Outdated header
// or a TOKEN_OUTDATED error code) and it is not itself an auth endpoint, the
// client exchanges the refresh token through a second, middleware-free HTTP
// client, persists the new pair and resends the request exactly once. If the
// exchange fails, or the resent request is rejected again, the tokens are
// cleared and the navigator is sent to the login route.
//
// All failures reach callers as *[APIError], which unwraps to one of the
// package sentinels ([ErrUnauthorized], [ErrNotFound], ...).
package apiclient
