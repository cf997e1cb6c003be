// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aspilic/itanket/auth"
)

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Log request
		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
		)

		// Call the next handler
		next(w, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// RequireAdmin guards the /Yonetim routes: the session cookie must carry a
// valid, unexpired token with the admin role claim. Anything else redirects
// to the login page.
func RequireAdmin(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(auth.SessionCookie)
		if err != nil {
			http.Redirect(w, r, "/Yonetim/Giris", http.StatusFound)
			return
		}
		claims, err := auth.ParseSession(secret, c.Value)
		if err != nil || claims.Role != auth.RoleAdmin {
			http.Redirect(w, r, "/Yonetim/Giris", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// EnsureCSRFCookie returns the request's anti-forgery token, minting and
// setting a new cookie when the request doesn't carry one yet.
func EnsureCSRFCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(auth.CSRFCookie); err == nil && c.Value != "" {
		return c.Value
	}
	token, err := auth.GenerateCSRFToken()
	if err != nil {
		slog.Error("failed to generate csrf token", "error", err)
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CSRFCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// ValidCSRF checks the double-submit pair: hidden form field against cookie.
func ValidCSRF(r *http.Request) bool {
	c, err := r.Cookie(auth.CSRFCookie)
	if err != nil {
		return false
	}
	return auth.CSRFTokensMatch(r.FormValue(auth.CSRFField), c.Value)
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' || xff[i] == ' ' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	// Strip port if present
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
