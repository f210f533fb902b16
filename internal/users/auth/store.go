// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email, active or not.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindActiveByEmail returns the account with the given email only if
		it has not been deactivated. Login resolves users through this
		method so disabled accounts are indistinguishable from missing ones.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindActiveByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account and sets user.ID from the
		generated primary key.

		Returns:
		  - error: Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		TouchLastLogin stamps the account's last_login with the current time.

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, userID int64) error
}
