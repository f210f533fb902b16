// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// # Opaque Token Generation

// GenerateSecureToken returns byteLength cryptographically random bytes as
// a lowercase hex string (twice as many characters as bytes).
//
// Used for password-reset tokens, which are opaque capabilities: unlike
// access tokens they carry no claims and are validated purely by database
// lookup.
func GenerateSecureToken(byteLength int) (string, error) {
	randomBytes := make([]byte, byteLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}
