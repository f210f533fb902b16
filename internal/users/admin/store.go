// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"time"
)

// # Administrative Data Access

// AccountRepository defines account management storage operations.
type AccountRepository interface {

	/*
		List returns one page of accounts with memo counts, newest first.
		A non-empty search filters by substring match on email or name.

		Returns:
		  - []Account: The page of accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context, search string, limit, offset int) ([]Account, error)

	/*
		Count returns the total number of accounts matching the search.
	*/
	Count(context context.Context, search string) (int64, error)

	/*
		FindTarget resolves a user ID to its minimal identification.

		Returns:
		  - error: apperr.NotFound if no such account exists
	*/
	FindTarget(context context.Context, userID int64) (*Target, error)

	/*
		SetActive flips the activation flag of an account.

		Returns:
		  - error: apperr.NotFound if no such account exists
	*/
	SetActive(context context.Context, userID int64, active bool) error

	/*
		UpdatePassword replaces the stored credential hash and stamps
		password_changed_at.
	*/
	UpdatePassword(context context.Context, userID int64, passwordHash string) error

	/*
		DeleteCascade removes the account and all rows that depend on it
		(memos, folders, password resets) in one transaction. Audit rows
		survive with their user references nulled out.

		Returns:
		  - error: apperr.NotFound if no such account exists
	*/
	DeleteCascade(context context.Context, userID int64) error
}

// ResetRepository defines password-reset-token storage operations.
type ResetRepository interface {

	/*
		Issue stores a new reset token for the user. Within one transaction
		it first marks every currently-unused token for that user as used,
		then inserts the fresh one, so the single-valid-token rule holds for
		sequential issuances. Two concurrent Issue calls can still both
		commit; that race is accepted and documented, not hidden.
	*/
	Issue(context context.Context, userID int64, token string, expiresAt time.Time) error

	/*
		History returns reset rows joined with user identity, newest first,
		capped at 100. A non-zero userID restricts to that user.
	*/
	History(context context.Context, userID int64) ([]ResetRecord, error)
}

// StatsRepository aggregates the dashboard counters and series.
type StatsRepository interface {

	/*
		Collect runs the aggregate queries and assembles a fresh [Stats].
	*/
	Collect(context context.Context) (*Stats, error)
}

// AuditRepository records privileged actions.
type AuditRepository interface {

	/*
		Record inserts one audit row.
	*/
	Record(context context.Context, entry AuditEntry) error
}

// StatsCache holds a short-lived copy of the dashboard payload.
//
// Only derived aggregates ever live here. Identity and authorization facts
// are recomputed on every request and must never be cached.
type StatsCache interface {

	/*
		Get returns the cached stats, or nil on miss or cache failure.
	*/
	Get(context context.Context) *Stats

	/*
		Set stores the stats with the cache's fixed TTL. Failures are
		swallowed; the cache is an optimization, not a source of truth.
	*/
	Set(context context.Context, stats *Stats)
}
