// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/memoka/internal/platform/middleware"
	"github.com/taibuivan/memoka/internal/platform/sec"
	"github.com/taibuivan/memoka/internal/users/admin"
)

const policySecret = "admin-policy-test-secret"

// newAdminRouter wires the handler behind the request gate exactly as the
// API server does.
func newAdminRouter(store *fakeAdminStore) http.Handler {
	handler := admin.NewHandler(newService(store, nil))

	router := chi.NewRouter()
	router.Use(middleware.Gate(policySecret))
	router.Mount("/api/admin", handler.Routes())
	return router
}

func tokenFor(t *testing.T, role sec.Role, userID int64) string {
	t.Helper()
	token, err := sec.Sign(sec.Claims{
		UserID:    userID,
		Email:     "actor@memoka.app",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, policySecret)
	require.NoError(t, err)
	return token
}

func doAdmin(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAdminPolicy_NonAdminForbidden checks that an authenticated but
unprivileged principal gets 403 "Admin access required" on every admin
endpoint, while an unauthenticated caller never even reaches the policy.
*/
func TestAdminPolicy_NonAdminForbidden(t *testing.T) {
	store := newFakeAdminStore()
	store.addAccount(1, "admin@memoka.app", "Admin")
	router := newAdminRouter(store)
	userToken := tokenFor(t, sec.RoleUser, 2)

	endpoints := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/admin/users", ""},
		{http.MethodPut, "/api/admin/users", `{"userId":1,"isActive":false}`},
		{http.MethodDelete, "/api/admin/users/1", ""},
		{http.MethodPost, "/api/admin/change-password", `{"userId":1,"newPassword":"password"}`},
		{http.MethodPost, "/api/admin/password-reset", `{"userId":1}`},
		{http.MethodGet, "/api/admin/password-reset", ""},
		{http.MethodGet, "/api/admin/stats", ""},
	}

	for _, endpoint := range endpoints {
		recorder := doAdmin(t, router, endpoint.method, endpoint.path, userToken, endpoint.body)
		require.Equal(t, http.StatusForbidden, recorder.Code, "%s %s", endpoint.method, endpoint.path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Admin access required", body["error"])

		// No token at all is a gate failure, not a policy failure.
		recorder = doAdmin(t, router, endpoint.method, endpoint.path, "", endpoint.body)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	}
}

/*
TestAdminHTTP_ResetIssuance drives the issuance endpoint end to end and
checks the response contract field by field.
*/
func TestAdminHTTP_ResetIssuance(t *testing.T) {
	store := newFakeAdminStore()
	store.addAccount(1, "admin@memoka.app", "Admin")
	store.addAccount(7, "nana@memoka.app", "Nana")
	router := newAdminRouter(store)
	adminToken := tokenFor(t, sec.RoleAdmin, 1)

	recorder := doAdmin(t, router, http.MethodPost, "/api/admin/password-reset", adminToken, `{"userId":7}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Message   string    `json:"message"`
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
		ResetURL  string    `json:"resetUrl"`
		User      struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "Password reset token generated", body.Message)
	assert.Len(t, body.Token, 64)
	assert.Equal(t, "/reset-password?token="+body.Token, body.ResetURL)
	assert.Equal(t, int64(7), body.User.ID)
	assert.Equal(t, "nana@memoka.app", body.User.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), body.ExpiresAt, 5*time.Second)

	// Unknown target yields the 404 contract.
	recorder = doAdmin(t, router, http.MethodPost, "/api/admin/password-reset", adminToken, `{"userId":999}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "User not found")
}

/*
TestAdminHTTP_SelfProtectionWire checks the 400 bodies for self-directed
destructive operations.
*/
func TestAdminHTTP_SelfProtectionWire(t *testing.T) {
	store := newFakeAdminStore()
	store.addAccount(1, "admin@memoka.app", "Admin")
	router := newAdminRouter(store)
	adminToken := tokenFor(t, sec.RoleAdmin, 1)

	recorder := doAdmin(t, router, http.MethodPut, "/api/admin/users", adminToken,
		`{"userId":1,"isActive":false}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cannot deactivate yourself")

	recorder = doAdmin(t, router, http.MethodDelete, "/api/admin/users/1", adminToken, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Cannot delete yourself")
}

/*
TestAdminHTTP_ResetHistoryShape checks the {passwordResets:[...]} envelope
with used as a boolean.
*/
func TestAdminHTTP_ResetHistoryShape(t *testing.T) {
	store := newFakeAdminStore()
	store.addAccount(1, "admin@memoka.app", "Admin")
	store.addAccount(7, "nana@memoka.app", "Nana")
	router := newAdminRouter(store)
	adminToken := tokenFor(t, sec.RoleAdmin, 1)

	for i := 0; i < 2; i++ {
		recorder := doAdmin(t, router, http.MethodPost, "/api/admin/password-reset", adminToken, `{"userId":7}`)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := doAdmin(t, router, http.MethodGet, "/api/admin/password-reset?userId=7", adminToken, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		PasswordResets []struct {
			Token string `json:"token"`
			Used  bool   `json:"used"`
		} `json:"passwordResets"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.PasswordResets, 2)
	assert.False(t, body.PasswordResets[0].Used, "newest token is live")
	assert.True(t, body.PasswordResets[1].Used, "older token was invalidated")
}
