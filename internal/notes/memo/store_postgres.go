// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// memoProjection joins each memo with its folder summary.
const memoProjection = `
	SELECT m.id, m.title, m.content, m.folder_id, f.name, f.color,
	       m.tags, m.created_at, m.updated_at
	FROM memos m
	LEFT JOIN folders f ON m.folder_id = f.id`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed memo repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListByOwner returns the user's memos, most recently updated first.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, userID int64, filter ListFilter) ([]Memo, error) {
	conditions := []string{"m.user_id = $1"}
	args := []any{userID}

	if filter.FolderID != 0 {
		args = append(args, filter.FolderID)
		conditions = append(conditions, fmt.Sprintf("m.folder_id = $%d", len(args)))
	}

	if len(filter.Tags) > 0 {
		tagConditions := make([]string, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			args = append(args, "%"+tag+"%")
			tagConditions = append(tagConditions, fmt.Sprintf("m.tags LIKE $%d", len(args)))
		}
		conditions = append(conditions, "("+strings.Join(tagConditions, " OR ")+")")
	}

	query := memoProjection +
		"\n\tWHERE " + strings.Join(conditions, " AND ") +
		"\n\tORDER BY m.updated_at DESC"

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_memo_repo_list_failed: %w", err)
	}
	defer rows.Close()

	memos := []Memo{}
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		memos = append(memos, *memo)
	}

	return memos, rows.Err()
}

// FindByOwner returns one memo if the user owns it.
func (repository *PostgresRepository) FindByOwner(ctx context.Context, memoID, userID int64) (*Memo, error) {
	query := memoProjection + "\n\tWHERE m.id = $1 AND m.user_id = $2"

	memo, err := scanMemo(repository.pool.QueryRow(ctx, query, memoID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Memo")
		}
		return nil, err
	}

	return memo, nil
}

// Create persists a new memo and returns its hydrated view.
func (repository *PostgresRepository) Create(ctx context.Context, userID int64, draft Draft) (*Memo, error) {
	const query = `
		INSERT INTO memos (title, content, folder_id, user_id, tags)
		VALUES ($1, $2, NULLIF($3, 0), $4, $5)
		RETURNING id`

	var memoID int64
	err := repository.pool.QueryRow(ctx, query,
		draft.Title, draft.Content, draft.FolderID, userID, joinTags(draft.Tags),
	).Scan(&memoID)
	if err != nil {
		return nil, fmt.Errorf("postgres_memo_repo_create_failed: %w", err)
	}

	return repository.FindByOwner(ctx, memoID, userID)
}

// Update overwrites the writable fields of an owned memo.
func (repository *PostgresRepository) Update(ctx context.Context, memoID, userID int64, draft Draft) (*Memo, error) {
	const query = `
		UPDATE memos
		SET title = $3, content = $4, folder_id = NULLIF($5, 0), tags = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(ctx, query,
		memoID, userID, draft.Title, draft.Content, draft.FolderID, joinTags(draft.Tags),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_memo_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Memo")
	}

	return repository.FindByOwner(ctx, memoID, userID)
}

// Delete removes an owned memo.
func (repository *PostgresRepository) Delete(ctx context.Context, memoID, userID int64) error {
	const query = "DELETE FROM memos WHERE id = $1 AND user_id = $2"

	tag, err := repository.pool.Exec(ctx, query, memoID, userID)
	if err != nil {
		return fmt.Errorf("postgres_memo_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Memo")
	}

	return nil
}

// FolderVisible reports whether the folder is owned by the user or shared.
func (repository *PostgresRepository) FolderVisible(ctx context.Context, folderID, userID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM folders
			WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)
		)`

	var visible bool
	if err := repository.pool.QueryRow(ctx, query, folderID, userID).Scan(&visible); err != nil {
		return false, fmt.Errorf("postgres_memo_repo_folder_visible_failed: %w", err)
	}

	return visible, nil
}

// scanMemo hydrates one joined memo row.
func scanMemo(row pgx.Row) (*Memo, error) {
	var (
		memo        Memo
		folderID    *int64
		folderName  *string
		folderColor *string
		storedTags  string
	)

	err := row.Scan(
		&memo.ID,
		&memo.Title,
		&memo.Content,
		&folderID,
		&folderName,
		&folderColor,
		&storedTags,
		&memo.CreatedAt,
		&memo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("postgres_memo_repo_scan_failed: %w", err)
	}

	if folderID != nil {
		memo.Folder = &FolderRef{ID: *folderID}
		if folderName != nil {
			memo.Folder.Name = *folderName
		}
		if folderColor != nil {
			memo.Folder.Color = *folderColor
		}
	}
	memo.Tags = splitTags(storedTags)

	return &memo, nil
}
