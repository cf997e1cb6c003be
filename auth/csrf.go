// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

// CSRFCookie / CSRFField implement the double-submit anti-forgery check:
// form pages set a random token cookie and echo the same value in a hidden
// field; mutating handlers require the two to match.
const (
	CSRFCookie = "anket_csrf"
	CSRFField  = "csrf_token"
)

// GenerateCSRFToken creates a random URL-safe anti-forgery token.
func GenerateCSRFToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// CSRFTokensMatch compares a form token against the cookie token in
// constant time. Empty tokens never match.
func CSRFTokensMatch(formToken, cookieToken string) bool {
	if formToken == "" || cookieToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(formToken), []byte(cookieToken)) == 1
}
