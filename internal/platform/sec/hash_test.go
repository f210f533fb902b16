// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/memoka/internal/platform/sec"
)

/*
TestHashPassword checks the deterministic legacy digest format.
*/
func TestHashPassword(t *testing.T) {
	// Known SHA-256 vector: deterministic, 64 lowercase hex characters.
	const wantDigest = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

	digest := sec.HashPassword("password")
	assert.Equal(t, wantDigest, digest)
	assert.Len(t, digest, 64)

	// Same input, same output — required for compatibility with stored rows.
	assert.Equal(t, digest, sec.HashPassword("password"))
}

/*
TestCheckPasswordHash covers both accepted storage formats.
*/
func TestCheckPasswordHash(t *testing.T) {
	legacyHash := sec.HashPassword("correct horse battery staple")

	bcryptHash, err := sec.HashPasswordStrong("correct horse battery staple")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{"legacy_match", "correct horse battery staple", legacyHash, true},
		{"legacy_mismatch", "wrong password", legacyHash, false},
		{"bcrypt_match", "correct horse battery staple", bcryptHash, true},
		{"bcrypt_mismatch", "wrong password", bcryptHash, false},
		{"empty_stored_hash", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CheckPasswordHash(tt.password, tt.stored))
		})
	}
}

/*
TestHashPasswordStrong checks that the upgrade-path format is recognized as bcrypt.
*/
func TestHashPasswordStrong(t *testing.T) {
	hash, err := sec.HashPasswordStrong("secret123")
	require.NoError(t, err)

	assert.True(t, len(hash) > 2 && hash[:2] == "$2")
	// bcrypt output is salted: two hashes of the same input differ.
	other, err := sec.HashPasswordStrong("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

/*
TestRole covers the coarse role model helpers.
*/
func TestRole(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsAdmin())
	assert.False(t, sec.RoleUser.IsAdmin())
	assert.False(t, sec.Role("moderator").IsAdmin())

	assert.True(t, sec.RoleAdmin.Valid())
	assert.True(t, sec.RoleUser.Valid())
	assert.False(t, sec.Role("").Valid())

	assert.Equal(t, sec.RoleUser, sec.Role("").OrDefault())
	assert.Equal(t, sec.RoleAdmin, sec.RoleAdmin.OrDefault())
}
