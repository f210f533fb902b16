// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// # Credential Hashing
//
// The canonical stored format inherited from the first deployment is an
// unsalted SHA-256 hex digest. That format has no work factor, so this
// package also accepts and produces bcrypt hashes: CheckPasswordHash
// recognizes both, which lets operators re-hash accounts on next login
// without a breaking migration.

// bcryptPrefix identifies a bcrypt hash in storage ("$2a$", "$2b$", "$2y$").
const bcryptPrefix = "$2"

// HashPassword returns the deterministic SHA-256 hex digest of the
// plain-text password. This matches the format of every existing stored
// credential.
func HashPassword(plainTextPassword string) string {
	digest := sha256.Sum256([]byte(plainTextPassword))
	return hex.EncodeToString(digest[:])
}

// HashPasswordStrong hashes the password with bcrypt at the default cost.
// New deployments should prefer this over [HashPassword].
func HashPasswordStrong(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its stored hash.
// It detects the hash format from the stored value: bcrypt hashes carry a
// "$2" modular-crypt prefix, anything else is treated as a SHA-256 hex
// digest and compared in constant time.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	if strings.HasPrefix(existingHash, bcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
	}

	computed := HashPassword(plainTextPassword)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(existingHash)) == 1
}
