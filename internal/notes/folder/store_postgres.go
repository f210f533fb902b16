// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package folder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed folder repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListVisible returns the user's folders plus shared folders, oldest first.
func (repository *PostgresRepository) ListVisible(ctx context.Context, userID int64) ([]Folder, error) {
	const query = `
		SELECT id, name, color, user_id, created_at
		FROM folders
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY created_at ASC`

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_folder_repo_list_failed: %w", err)
	}
	defer rows.Close()

	folders := []Folder{}
	for rows.Next() {
		var folder Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.Color, &folder.UserID, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres_folder_repo_list_scan_failed: %w", err)
		}
		folders = append(folders, folder)
	}

	return folders, rows.Err()
}

// FindOwned returns the folder only if the user owns it.
func (repository *PostgresRepository) FindOwned(ctx context.Context, folderID, userID int64) (*Folder, error) {
	const query = `
		SELECT id, name, color, user_id, created_at
		FROM folders
		WHERE id = $1 AND user_id = $2`

	folder := &Folder{}
	err := repository.pool.QueryRow(ctx, query, folderID, userID).Scan(
		&folder.ID, &folder.Name, &folder.Color, &folder.UserID, &folder.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Folder")
		}
		return nil, fmt.Errorf("postgres_folder_repo_find_owned_failed: %w", err)
	}

	return folder, nil
}

// NameTaken reports whether the user has another folder with this name.
func (repository *PostgresRepository) NameTaken(ctx context.Context, name string, userID, excludeID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM folders
			WHERE name = $1 AND user_id = $2 AND id <> $3
		)`

	var taken bool
	if err := repository.pool.QueryRow(ctx, query, name, userID, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("postgres_folder_repo_name_taken_failed: %w", err)
	}

	return taken, nil
}

// CountMemos returns how many memos currently live in the folder.
func (repository *PostgresRepository) CountMemos(ctx context.Context, folderID int64) (int64, error) {
	const query = "SELECT COUNT(*) FROM memos WHERE folder_id = $1"

	var count int64
	if err := repository.pool.QueryRow(ctx, query, folderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_folder_repo_count_memos_failed: %w", err)
	}

	return count, nil
}

// Create persists a new folder and backfills ID and created_at.
func (repository *PostgresRepository) Create(ctx context.Context, folder *Folder) error {
	const query = `
		INSERT INTO folders (name, color, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query, folder.Name, folder.Color, folder.UserID).
		Scan(&folder.ID, &folder.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres_folder_repo_create_failed: %w", err)
	}

	return nil
}

// Update persists name and color changes to an owned folder.
func (repository *PostgresRepository) Update(ctx context.Context, folder *Folder) error {
	const query = `
		UPDATE folders
		SET name = $3, color = $4
		WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(ctx, query, folder.ID, folder.UserID, folder.Name, folder.Color)
	if err != nil {
		return fmt.Errorf("postgres_folder_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Folder")
	}

	return nil
}

// Delete removes an owned folder.
func (repository *PostgresRepository) Delete(ctx context.Context, folderID, userID int64) error {
	const query = "DELETE FROM folders WHERE id = $1 AND user_id = $2"

	tag, err := repository.pool.Exec(ctx, query, folderID, userID)
	if err != nil {
		return fmt.Errorf("postgres_folder_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Folder")
	}

	return nil
}
