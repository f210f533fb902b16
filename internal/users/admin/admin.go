// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin implements the privileged administration surface: account
management, direct password changes, the password-reset-token lifecycle,
system statistics, and the audit trail behind all of it.

# Architecture

Every operation in this package runs behind two authorization layers: the
request gate (which guarantees a verified principal) and the per-operation
admin policy check in the HTTP handlers. Mutations additionally record an
audit row so privileged activity is reconstructable after the fact.
*/
package admin

import (
	"time"

	"github.com/taibuivan/memoka/internal/platform/sec"
)

// # Account Views

// Account is the administrative view of a user, including the memo count
// aggregate the dashboard displays.
type Account struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      sec.Role   `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
	MemoCount int64      `json:"memo_count"`
}

// Target is the minimal identification of the user an admin operation
// acts on, echoed back in mutation responses.
type Target struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Pagination describes the page window of a listing response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// AccountPage is one page of the administrative user listing.
type AccountPage struct {
	Users      []Account  `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// # Password Reset Lifecycle

// ResetRecord is one row of the password-reset history, joined with the
// owning user's email and name.
type ResetRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
}

// ResetIssue is the response payload of a successful token issuance.
type ResetIssue struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	ResetURL  string    `json:"resetUrl"`
	User      Target    `json:"user"`
}

// # System Statistics

// StatsSummary holds the headline counters of the admin dashboard.
type StatsSummary struct {
	TotalUsers      int64 `json:"totalUsers"`
	ActiveUsers     int64 `json:"activeUsers"`
	TotalMemos      int64 `json:"totalMemos"`
	TotalFolders    int64 `json:"totalFolders"`
	RecentLogins    int64 `json:"recentLogins"`
	AdminActions24h int64 `json:"adminActions24h"`
}

// DailyCount is one day's bucket in a time-series chart.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsCharts holds the 30-day activity series.
type StatsCharts struct {
	DailyRegistrations []DailyCount `json:"dailyRegistrations"`
	DailyMemos         []DailyCount `json:"dailyMemos"`
}

// Stats is the full admin dashboard payload.
type Stats struct {
	Summary         StatsSummary  `json:"summary"`
	Charts          StatsCharts   `json:"charts"`
	RecentAdminLogs []AuditRecord `json:"recentAdminLogs"`
}

// # Audit Trail

// Audit action identifiers. These are stable storage values, not display
// strings.
const (
	ActionViewUsers      = "view_users"
	ActionActivateUser   = "activate_user"
	ActionDeactivateUser = "deactivate_user"
	ActionDeleteUser     = "delete_user"
	ActionChangePassword = "change_password"
	ActionGenerateReset  = "generate_password_reset"
)

// AuditEntry is a privileged action about to be recorded.
type AuditEntry struct {
	AdminUserID  int64
	Action       string
	TargetUserID int64 // zero means no specific target
	Details      string
}

// AuditRecord is a stored audit row, joined with admin and target emails
// where those accounts still exist.
type AuditRecord struct {
	ID           int64     `json:"id"`
	AdminUserID  *int64    `json:"admin_user_id"`
	Action       string    `json:"action"`
	TargetUserID *int64    `json:"target_user_id"`
	Details      string    `json:"details"`
	CreatedAt    time.Time `json:"created_at"`
	AdminEmail   *string   `json:"admin_email"`
	TargetEmail  *string   `json:"target_email"`
}
