// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/memoka/internal/platform/apperr"
	"github.com/taibuivan/memoka/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/memoka/internal/platform/request"
	"github.com/taibuivan/memoka/internal/platform/sec"
)

/*
TestRequireAdmin covers the per-operation role policy.
*/
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name      string
		claims    *sec.Claims
		forbidden bool
	}{
		{"nil_principal", nil, true},
		{"user_role", &sec.Claims{UserID: 1, Role: sec.RoleUser}, true},
		{"unknown_role", &sec.Claims{UserID: 1, Role: sec.Role("moderator")}, true},
		{"admin_role", &sec.Claims{UserID: 1, Role: sec.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requestutil.RequireAdmin(tt.claims)

			if !tt.forbidden {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
			assert.Equal(t, "Admin access required", ae.Message)
		})
	}
}

/*
TestRequiredPrincipal checks authenticated-context extraction.
*/
func TestRequiredPrincipal(t *testing.T) {
	anonymous := httptest.NewRequest(http.MethodGet, "/api/memos", nil)

	_, err := requestutil.RequiredPrincipal(anonymous)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)

	claims := &sec.Claims{UserID: 42, Role: sec.RoleUser}
	authed := anonymous.WithContext(ctxutil.WithPrincipal(anonymous.Context(), claims))

	got, err := requestutil.RequiredPrincipal(authed)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

/*
TestIDParam checks identifier parsing failures are client errors.
*/
func TestIDParam(t *testing.T) {
	// Outside a chi route, the URL param is empty and must be rejected.
	request := httptest.NewRequest(http.MethodGet, "/api/memos/abc", nil)

	_, err := requestutil.IDParam(request, "id")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}
