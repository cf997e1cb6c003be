// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	keyLength  = 32
)

// HashPassword derives a PBKDF2-HMAC-SHA256 hash with a fresh random salt.
// The iteration count is stored alongside the hash so it can be raised for
// new accounts without invalidating old ones.
func HashPassword(password string, iterations int) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash = pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return hash, salt, nil
}

// VerifyPassword recomputes the hash and compares in constant time.
func VerifyPassword(password string, hash, salt []byte, iterations int) bool {
	check := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(hash, check) == 1
}
