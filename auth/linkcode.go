// Copyright (c) 2025 Aspilic.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// LinkCodeLength is the length of a survey link code.
const LinkCodeLength = 8

// GenerateLinkCode creates a short survey access code: the first 8 hex
// characters of a fresh UUID, uppercased.
func GenerateLinkCode() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:])[:LinkCodeLength])
}
