// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer: registration, login, and
access-token issuance.

# Architecture

This layer is the "Truth" of the system. The token a successful login
mints is self-contained: every protected request reconstructs the active
user from the token alone, without a database read. There is no session
store and no server-side revocation — a token dies only by expiry.
*/
package auth

import (
	"time"

	"github.com/taibuivan/memoka/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account of the Memoka platform.
type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Explicitly omitted from JSON for security.
	Name         string   `json:"name"`
	Role         sec.Role `json:"role"`
	IsActive     bool     `json:"is_active"`

	// LastLogin and PasswordChangedAt are nil until first set.
	LastLogin         *time.Time `json:"last_login,omitempty"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Profile is the compact user representation returned by auth endpoints.
type Profile struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  sec.Role `json:"role"`
}

// Profile returns the transport-safe view of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role.OrDefault(),
	}
}

// # Field Identifiers

// Field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
)
