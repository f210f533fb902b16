// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// IsAdmin reports whether the role carries administrative privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the known role values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// OrDefault returns the role itself when set, or [RoleUser] when empty.
// Rows created before the role column existed have no role value.
func (r Role) OrDefault() Role {
	if r == "" {
		return RoleUser
	}
	return r
}
