// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, anti-forgery tokens
and link code generation.

# Password Hashing

Admin passwords use PBKDF2-HMAC-SHA256 with a per-user 16-byte salt and a
stored iteration count:

	hash, salt, err := auth.HashPassword(password, iterations)
	ok := auth.VerifyPassword(password, hash, salt, iterations)

Verification compares in constant time.

# Sessions

Admin sessions are HS256 JWTs carried in an HttpOnly cookie:

	token, err := auth.SignSession(secret, username, 8*time.Hour)
	http.SetCookie(w, auth.SessionCookieFor(token, 8*time.Hour))

	claims, err := auth.ParseSession(secret, token)

The token carries the username and a role claim; ParseSession rejects
expired or tampered tokens with ErrInvalidSession.

# Anti-Forgery Tokens

Forms use the double-submit cookie pattern:

	token, err := auth.GenerateCSRFToken()
	// set as cookie and echo as hidden form field
	ok := auth.CSRFTokensMatch(formToken, cookieToken)

Tokens are random 24-byte secrets, URL-safe base64 encoded without padding.

# Link Codes

Survey access codes are the first 8 hex characters of a UUID, uppercased:

	code := auth.GenerateLinkCode() // e.g. "3F0A91BC"
*/
package auth
