// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

// RedactedToken replaces credentials in log output.
const RedactedToken = "[REDACTED_TOKEN]"

// RedactToken returns a loggable stand-in for token. Empty tokens are
// reported as empty so that "no token" stays distinguishable in logs.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	return RedactedToken
}
