// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /Anket/{kod}", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Admin Gate

RequireAdmin protects the management routes:

	mux.HandleFunc("GET /Yonetim", middleware.WithLogging(
		middleware.RequireAdmin(secret, admin.Dashboard)))

The session cookie must parse against the configured secret, be unexpired
and carry the admin role claim; otherwise the request is redirected to
/Yonetim/Giris.

# Anti-Forgery Helpers

Form pages obtain a token (setting the cookie on first contact):

	token := middleware.EnsureCSRFCookie(w, r)

and mutating handlers verify the double-submit pair:

	if !middleware.ValidCSRF(r) { ... 400 ... }

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used by the request logger.
*/
package middleware
