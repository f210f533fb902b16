// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// PostgresStore implements every admin repository interface using pgx.
//
// The interfaces are split per concern for the service layer; storage-wise
// they share one pool and live together, mirroring how tightly the
// underlying tables are coupled (cascading deletes, audit joins).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a PostgreSQL-backed admin store.
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ── Account Management ───────────────────────────────────────────────────────

// List returns one page of accounts with their memo counts, newest first.
func (store *PostgresStore) List(ctx context.Context, search string, limit, offset int) ([]Account, error) {
	const query = `
		SELECT id, email, name, role, is_active, created_at, last_login,
		       (SELECT COUNT(*) FROM memos WHERE memos.user_id = users.id) AS memo_count
		FROM users
		WHERE ($1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := store.pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_store_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		var account Account
		err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.Name,
			&account.Role,
			&account.IsActive,
			&account.CreatedAt,
			&account.LastLogin,
			&account.MemoCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_store_list_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Count returns the number of accounts matching the search filter.
func (store *PostgresStore) Count(ctx context.Context, search string) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM users
		WHERE ($1 = '' OR email ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')`

	var total int64
	if err := store.pool.QueryRow(ctx, query, search).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_admin_store_count_failed: %w", err)
	}

	return total, nil
}

// FindTarget resolves a user ID to its minimal identification.
func (store *PostgresStore) FindTarget(ctx context.Context, userID int64) (*Target, error) {
	const query = "SELECT id, email, name FROM users WHERE id = $1"

	target := &Target{}
	err := store.pool.QueryRow(ctx, query, userID).Scan(&target.ID, &target.Email, &target.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_admin_store_find_target_failed: %w", err)
	}

	return target, nil
}

// SetActive flips the activation flag of an account.
func (store *PostgresStore) SetActive(ctx context.Context, userID int64, active bool) error {
	const query = "UPDATE users SET is_active = $2 WHERE id = $1"

	tag, err := store.pool.Exec(ctx, query, userID, active)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_set_active_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// UpdatePassword replaces the credential hash and stamps the change time.
func (store *PostgresStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, password_changed_at = NOW()
		WHERE id = $1`

	tag, err := store.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// DeleteCascade removes the account and every dependent row in one
// transaction. Audit rows survive with their user references nulled out so
// the trail itself is never destroyed by an account deletion.
func (store *PostgresStore) DeleteCascade(ctx context.Context, userID int64) error {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_delete_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	// Dependent rows first, then the account. Order matters while foreign
	// keys are enforced.
	cleanups := []string{
		"DELETE FROM memos WHERE user_id = $1",
		"DELETE FROM folders WHERE user_id = $1",
		"DELETE FROM password_resets WHERE user_id = $1",
		"UPDATE admin_logs SET target_user_id = NULL WHERE target_user_id = $1",
		"UPDATE admin_logs SET admin_user_id = NULL WHERE admin_user_id = $1",
	}
	for _, statement := range cleanups {
		if _, err := transaction.Exec(ctx, statement, userID); err != nil {
			return fmt.Errorf("postgres_admin_store_delete_cleanup_failed: %w", err)
		}
	}

	tag, err := transaction.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_admin_store_delete_commit_failed: %w", err)
	}

	return nil
}

// ── Password Reset Lifecycle ─────────────────────────────────────────────────

// Issue invalidates all currently-unused tokens for the user and inserts
// the fresh one in a single transaction, so sequential issuances preserve
// the one-valid-token rule.
func (store *PostgresStore) Issue(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_issue_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	// Invalidate-before-insert: the write order is part of the contract.
	const invalidate = "UPDATE password_resets SET used = TRUE WHERE user_id = $1 AND used = FALSE"
	if _, err := transaction.Exec(ctx, invalidate, userID); err != nil {
		return fmt.Errorf("postgres_admin_store_issue_invalidate_failed: %w", err)
	}

	const insert = "INSERT INTO password_resets (user_id, token, expires_at) VALUES ($1, $2, $3)"
	if _, err := transaction.Exec(ctx, insert, userID, token, expiresAt); err != nil {
		return fmt.Errorf("postgres_admin_store_issue_insert_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_admin_store_issue_commit_failed: %w", err)
	}

	return nil
}

// History returns reset rows joined with user identity, newest first.
func (store *PostgresStore) History(ctx context.Context, userID int64) ([]ResetRecord, error) {
	const query = `
		SELECT pr.id, pr.user_id, pr.token, pr.expires_at, pr.used, pr.created_at,
		       u.email, u.name
		FROM password_resets pr
		JOIN users u ON pr.user_id = u.id
		WHERE ($1 = 0 OR pr.user_id = $1)
		ORDER BY pr.created_at DESC
		LIMIT 100`

	rows, err := store.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_store_history_failed: %w", err)
	}
	defer rows.Close()

	records := []ResetRecord{}
	for rows.Next() {
		var record ResetRecord
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Token,
			&record.ExpiresAt,
			&record.Used,
			&record.CreatedAt,
			&record.Email,
			&record.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_store_history_scan_failed: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ── System Statistics ────────────────────────────────────────────────────────

// Collect runs the aggregate queries and assembles a fresh [Stats].
func (store *PostgresStore) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counters := []struct {
		query string
		into  *int64
	}{
		{"SELECT COUNT(*) FROM users", &stats.Summary.TotalUsers},
		{"SELECT COUNT(*) FROM users WHERE is_active = TRUE", &stats.Summary.ActiveUsers},
		{"SELECT COUNT(*) FROM memos", &stats.Summary.TotalMemos},
		{"SELECT COUNT(*) FROM folders WHERE user_id IS NOT NULL", &stats.Summary.TotalFolders},
		{"SELECT COUNT(*) FROM users WHERE last_login >= NOW() - INTERVAL '7 days'", &stats.Summary.RecentLogins},
		{"SELECT COUNT(*) FROM admin_logs WHERE created_at >= NOW() - INTERVAL '24 hours'", &stats.Summary.AdminActions24h},
	}
	for _, counter := range counters {
		if err := store.pool.QueryRow(ctx, counter.query).Scan(counter.into); err != nil {
			return nil, fmt.Errorf("postgres_admin_store_stats_counter_failed: %w", err)
		}
	}

	var err error
	stats.Charts.DailyRegistrations, err = store.dailySeries(ctx, "users")
	if err != nil {
		return nil, err
	}
	stats.Charts.DailyMemos, err = store.dailySeries(ctx, "memos")
	if err != nil {
		return nil, err
	}

	stats.RecentAdminLogs, err = store.recentAuditRecords(ctx)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// dailySeries returns the 30-day creation counts for a table, newest first.
// The table name is restricted to the two hardcoded call sites; it is never
// user input.
func (store *PostgresStore) dailySeries(ctx context.Context, table string) ([]DailyCount, error) {
	query := fmt.Sprintf(`
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date, COUNT(*)
		FROM %s
		WHERE created_at >= NOW() - INTERVAL '30 days'
		GROUP BY created_at::date
		ORDER BY date DESC`, table)

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_store_daily_series_failed: %w", err)
	}
	defer rows.Close()

	series := []DailyCount{}
	for rows.Next() {
		var bucket DailyCount
		if err := rows.Scan(&bucket.Date, &bucket.Count); err != nil {
			return nil, fmt.Errorf("postgres_admin_store_daily_series_scan_failed: %w", err)
		}
		series = append(series, bucket)
	}

	return series, rows.Err()
}

// recentAuditRecords returns the ten latest audit rows with joined emails.
func (store *PostgresStore) recentAuditRecords(ctx context.Context) ([]AuditRecord, error) {
	const query = `
		SELECT al.id, al.admin_user_id, al.action, al.target_user_id, al.details,
		       al.created_at, admin_user.email, target_user.email
		FROM admin_logs al
		LEFT JOIN users admin_user ON al.admin_user_id = admin_user.id
		LEFT JOIN users target_user ON al.target_user_id = target_user.id
		ORDER BY al.created_at DESC
		LIMIT 10`

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_admin_store_recent_logs_failed: %w", err)
	}
	defer rows.Close()

	records := []AuditRecord{}
	for rows.Next() {
		var record AuditRecord
		err := rows.Scan(
			&record.ID,
			&record.AdminUserID,
			&record.Action,
			&record.TargetUserID,
			&record.Details,
			&record.CreatedAt,
			&record.AdminEmail,
			&record.TargetEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_admin_store_recent_logs_scan_failed: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ── Audit Trail ──────────────────────────────────────────────────────────────

// Record inserts one audit row. A zero TargetUserID is stored as NULL.
func (store *PostgresStore) Record(ctx context.Context, entry AuditEntry) error {
	const query = `
		INSERT INTO admin_logs (admin_user_id, action, target_user_id, details)
		VALUES ($1, $2, NULLIF($3, 0), $4)`

	_, err := store.pool.Exec(ctx, query, entry.AdminUserID, entry.Action, entry.TargetUserID, entry.Details)
	if err != nil {
		return fmt.Errorf("postgres_admin_store_audit_record_failed: %w", err)
	}

	return nil
}
