// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/memoka/internal/platform/apperr"
	"github.com/taibuivan/memoka/internal/platform/constants"
	"github.com/taibuivan/memoka/internal/platform/ctxutil"
	"github.com/taibuivan/memoka/internal/platform/sec"
)

// Pagination bounds for the user listing.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Service implements the privileged administration use cases.
//
// # Review Process
//
// Every method here acts with elevated authority. The self-protection
// rules (an admin can never deactivate or delete their own account) exist
// so a sole administrator cannot lock the system out of administration.
type Service struct {
	accounts   AccountRepository
	resets     ResetRepository
	stats      StatsRepository
	audit      AuditRepository
	statsCache StatsCache
}

// NewService constructs a new [Service]. statsCache may be nil, in which
// case every stats request hits PostgreSQL directly.
func NewService(
	accounts AccountRepository,
	resets ResetRepository,
	stats StatsRepository,
	audit AuditRepository,
	statsCache StatsCache,
) *Service {
	return &Service{
		accounts:   accounts,
		resets:     resets,
		stats:      stats,
		audit:      audit,
		statsCache: statsCache,
	}
}

// ── Account Management ───────────────────────────────────────────────────────

// ListUsers returns one page of the administrative user listing.
//
// # Parameters
//   - adminID: The acting administrator, recorded in the audit trail.
//   - search: Optional substring filter on email or name.
//   - page, limit: 1-based page window; limit is clamped to [1, 100].
func (service *Service) ListUsers(context context.Context, adminID int64, search string, page, limit int) (*AccountPage, error) {
	// ── 1. Window Normalization ───────────────────────────────────────────

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	offset := (page - 1) * limit

	// ── 2. Retrieval ──────────────────────────────────────────────────────

	accounts, err := service.accounts.List(context, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("admin_service_list_users_failed: %w", err)
	}

	total, err := service.accounts.Count(context, search)
	if err != nil {
		return nil, fmt.Errorf("admin_service_count_users_failed: %w", err)
	}

	// ── 3. Audit ──────────────────────────────────────────────────────────

	searchLabel := search
	if searchLabel == "" {
		searchLabel = "none"
	}
	service.recordAudit(context, AuditEntry{
		AdminUserID: adminID,
		Action:      ActionViewUsers,
		Details:     fmt.Sprintf("Page %d, Search: %s", page, searchLabel),
	})

	return &AccountPage{
		Users: accounts,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

// SetUserActive activates or deactivates an account.
//
// # Business Rules
//   - An admin cannot deactivate their own account.
//   - Re-activating yourself is a no-op and allowed.
//
// # Returns
//   - string: The confirmation message for the client.
//   - Returns a 400 error for self-deactivation, 404 for unknown targets.
func (service *Service) SetUserActive(context context.Context, adminID, targetID int64, active bool) (string, error) {
	if targetID == adminID && !active {
		return "", apperr.ValidationError("Cannot deactivate yourself")
	}

	if err := service.accounts.SetActive(context, targetID, active); err != nil {
		return "", err
	}

	action, verb := ActionDeactivateUser, "deactivated"
	if active {
		action, verb = ActionActivateUser, "activated"
	}
	service.recordAudit(context, AuditEntry{
		AdminUserID:  adminID,
		Action:       action,
		TargetUserID: targetID,
		Details:      "User " + verb,
	})

	return fmt.Sprintf("User %s successfully", verb), nil
}

// DeleteUser permanently removes an account and everything it owns.
//
// # Business Rules
//   - An admin cannot delete their own account.
//   - The audit row is written BEFORE the cascade so the deletion itself
//     is always recorded; the cascade then nulls its target reference.
func (service *Service) DeleteUser(context context.Context, adminID, targetID int64) error {
	if targetID == adminID {
		return apperr.ValidationError("Cannot delete yourself")
	}

	target, err := service.accounts.FindTarget(context, targetID)
	if err != nil {
		return err
	}

	service.recordAudit(context, AuditEntry{
		AdminUserID:  adminID,
		Action:       ActionDeleteUser,
		TargetUserID: targetID,
		Details:      "Deleted user and all related data: " + target.Email,
	})

	if err := service.accounts.DeleteCascade(context, targetID); err != nil {
		return fmt.Errorf("admin_service_delete_user_failed: %w", err)
	}

	return nil
}

// ChangePassword directly replaces a user's credential.
//
// The new credential is stored in the canonical digest format and
// password_changed_at is stamped, so clients can detect forced changes.
func (service *Service) ChangePassword(context context.Context, adminID, targetID int64, newPassword string) (*Target, error) {
	target, err := service.accounts.FindTarget(context, targetID)
	if err != nil {
		return nil, err
	}

	if err := service.accounts.UpdatePassword(context, targetID, sec.HashPassword(newPassword)); err != nil {
		return nil, fmt.Errorf("admin_service_change_password_failed: %w", err)
	}

	service.recordAudit(context, AuditEntry{
		AdminUserID:  adminID,
		Action:       ActionChangePassword,
		TargetUserID: targetID,
		Details:      "Changed password for " + target.Email,
	})

	return target, nil
}

// ── Password Reset Lifecycle ─────────────────────────────────────────────────

// IssueReset mints a fresh single-use reset token for the target user.
//
// # Flow
//  1. Resolve the target (404 if unknown).
//  2. Generate 32 random bytes, hex-encoded to a 64-character token.
//  3. Invalidate-then-insert in one transaction (see [ResetRepository]).
//  4. Record the issuance in the audit trail.
//
// The token expires exactly [constants.ResetTokenTTL] after issuance and
// is returned to the admin once; it is never derivable afterwards.
func (service *Service) IssueReset(context context.Context, adminID, targetID int64) (*ResetIssue, error) {
	target, err := service.accounts.FindTarget(context, targetID)
	if err != nil {
		return nil, err
	}

	token, err := sec.GenerateSecureToken(constants.ResetTokenLength)
	if err != nil {
		return nil, fmt.Errorf("admin_service_reset_token_generation_failed: %w", err)
	}
	expiresAt := time.Now().Add(constants.ResetTokenTTL)

	if err := service.resets.Issue(context, targetID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("admin_service_reset_issue_failed: %w", err)
	}

	service.recordAudit(context, AuditEntry{
		AdminUserID:  adminID,
		Action:       ActionGenerateReset,
		TargetUserID: targetID,
		Details:      "Generated password reset token for " + target.Email,
	})

	return &ResetIssue{
		Message:   "Password reset token generated",
		Token:     token,
		ExpiresAt: expiresAt,
		ResetURL:  "/reset-password?token=" + token,
		User:      *target,
	}, nil
}

// ResetHistory lists issued reset tokens, newest first, capped at 100.
// A non-zero userID restricts the listing to one account.
func (service *Service) ResetHistory(context context.Context, userID int64) ([]ResetRecord, error) {
	records, err := service.resets.History(context, userID)
	if err != nil {
		return nil, fmt.Errorf("admin_service_reset_history_failed: %w", err)
	}
	return records, nil
}

// ── System Statistics ────────────────────────────────────────────────────────

// Stats returns the dashboard payload, served from the short-lived cache
// when possible. Cache failures silently fall through to PostgreSQL.
func (service *Service) Stats(context context.Context) (*Stats, error) {
	if service.statsCache != nil {
		if cached := service.statsCache.Get(context); cached != nil {
			return cached, nil
		}
	}

	stats, err := service.stats.Collect(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_stats_failed: %w", err)
	}

	if service.statsCache != nil {
		service.statsCache.Set(context, stats)
	}

	return stats, nil
}

// ── Audit Trail ──────────────────────────────────────────────────────────────

// recordAudit writes one audit row. Audit is deliberately best-effort: a
// broken trail must not take down the operation it describes, so failures
// are logged and swallowed.
func (service *Service) recordAudit(context context.Context, entry AuditEntry) {
	if err := service.audit.Record(context, entry); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "admin_audit_record_failed",
			slog.String("action", entry.Action),
			slog.String("error", err.Error()),
		)
	}
}
