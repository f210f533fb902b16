// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/memoka/internal/platform/apperr"
	"github.com/taibuivan/memoka/internal/platform/constants"
	"github.com/taibuivan/memoka/internal/platform/sec"
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token
// issuance, or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	signingSecret  string
}

// NewService constructs a new [Service].
//
// The signing secret is injected explicitly rather than read from the
// environment here, so the service stays testable and the secret has
// exactly one loading point (the config layer).
func NewService(userRepo UserRepository, signingSecret string) *Service {
	return &Service{
		userRepository: userRepo,
		signingSecret:  signingSecret,
	}
}

// Session represents a successfully established authentication result.
type Session struct {
	Token string
	User  *User
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Login validates user credentials and issues an access token.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains Email and plain-text Password.
//
// # Returns
//   - A pointer to [Session] containing the signed token and the user.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup the active account by email. Deactivated accounts never match.
//  2. Verify the password hash.
//  3. Stamp last_login and mint a self-contained token.
//
// Unknown email, deactivated account, and wrong password all collapse into
// the same generic error to prevent account enumeration.
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	// ── 1. Fetch Active Account ───────────────────────────────────────────

	user, err := service.userRepository.FindActiveByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 2. Credential Verification ────────────────────────────────────────

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 3. Login Bookkeeping ──────────────────────────────────────────────

	if err := service.userRepository.TouchLastLogin(context, user.ID); err != nil {
		return nil, fmt.Errorf("auth_service_touch_last_login_failed: %w", err)
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(user)
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register validates, hashes, and persists a brand new user account, then
// logs the account straight in.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to [Session] for the newly created account.
//   - Returns [apperr.Conflict] if the email already exists.
//
// # Business Rules
//   - Emails must be unique, including those of deactivated accounts.
//   - Default role is always 'user'.
//   - New accounts start active.
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	// ── 1. Uniqueness Check ───────────────────────────────────────────────

	// Verify email uniqueness across ALL accounts, active or not. A unique
	// index backs this up; the pre-check exists for the friendly message.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 2. Entity Construction ────────────────────────────────────────────

	user := &User{
		Email:        input.Email,
		PasswordHash: sec.HashPassword(input.Password),
		Name:         input.Name,
		Role:         sec.RoleUser, // Rule: Default role is always User
		IsActive:     true,
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(user)
}

// issueSession mints a signed access token embedding the user's identity
// snapshot, valid for [constants.AccessTokenTTL] from now.
func (service *Service) issueSession(user *User) (*Session, error) {
	claims := sec.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.OrDefault(),
		ExpiresAt: time.Now().Add(constants.AccessTokenTTL).Unix(),
	}

	token, err := sec.Sign(claims, service.signingSecret)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_signing_failed: %w", err)
	}

	return &Session{Token: token, User: user}, nil
}
