// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "anket_session"

// RoleAdmin is the role claim required by all /Yonetim routes.
const RoleAdmin = "admin"

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims carries the signed-in admin identity.
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SignSession issues an HS256 token carrying the admin identity and role.
func SignSession(secret []byte, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseSession validates the token signature and expiry and returns the
// claims. Expired or tampered tokens return ErrInvalidSession.
func ParseSession(secret []byte, tok string) (*SessionClaims, error) {
	t, err := jwt.ParseWithClaims(tok, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidSession
	}
	if c, ok := t.Claims.(*SessionClaims); ok && t.Valid {
		return c, nil
	}
	return nil, ErrInvalidSession
}

// SessionCookieFor wraps a signed token in the HttpOnly session cookie.
func SessionCookieFor(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the session cookie on logout.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
