// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/memoka/internal/platform/apperr"
	"github.com/taibuivan/memoka/internal/platform/dberr"
)

// userColumns is the canonical projection for hydrating a [User].
const userColumns = `
	id, email, password_hash, name, role, is_active,
	last_login, password_changed_at, created_at`

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByEmail retrieves an account by email regardless of activation state.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE email = $1`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, email), "find_by_email")
}

// FindActiveByEmail retrieves an account by email only if it is active.
// Login resolves through this method so deactivated accounts behave exactly
// like missing ones.
func (repository *PostgresUserRepository) FindActiveByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE email = $1 AND is_active = TRUE`

	return repository.scanOne(repository.pool.QueryRow(ctx, query, email), "find_active_by_email")
}

// Create persists a new user record and backfills the generated ID and
// creation timestamp onto the entity.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Role,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// Maps the unique email index violation to a client-safe Conflict.
		return dberr.Wrap(err, "Email is already registered")
	}

	return nil
}

// TouchLastLogin stamps the account's last_login with the current time.
func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	const query = "UPDATE users SET last_login = NOW() WHERE id = $1"

	_, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_touch_last_login_failed: %w", err)
	}

	return nil
}

// scanOne hydrates a single [User] row and maps storage errors.
func (repository *PostgresUserRepository) scanOne(row pgx.Row, operation string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.IsActive,
		&user.LastLogin,
		&user.PasswordChangedAt,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", operation, err)
	}

	return user, nil
}
