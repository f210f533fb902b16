// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/memoka/internal/platform/ctxutil"
	"github.com/taibuivan/memoka/internal/platform/middleware"
	"github.com/taibuivan/memoka/internal/platform/sec"
)

const gateSecret = "gate-test-secret"

// gateHarness mounts the gate over a probe handler that records whether it
// ran and which principal it observed.
type gateHarness struct {
	handler   http.Handler
	reached   bool
	principal *sec.Claims
}

func newGateHarness() *gateHarness {
	h := &gateHarness{}
	probe := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		h.reached = true
		h.principal = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
	h.handler = middleware.Gate(gateSecret)(probe)
	return h
}

func (h *gateHarness) do(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)
	return recorder
}

func errorBody(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	message, _ := body["error"].(string)
	return message
}

func mintToken(t *testing.T, secret string, claims sec.Claims) string {
	t.Helper()
	token, err := sec.Sign(claims, secret)
	require.NoError(t, err)
	return token
}

/*
TestGate_PublicPaths checks that allow-listed paths never require a token,
regardless of header state.
*/
func TestGate_PublicPaths(t *testing.T) {
	publicPaths := []string{
		"/",
		"/assets/x.png",
		"/vite.svg",
		"/api/auth/login",
		"/api/auth/register",
	}

	for _, path := range publicPaths {
		for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
			harness := newGateHarness()
			recorder := harness.do(t, path, header)

			assert.Equal(t, http.StatusOK, recorder.Code, "path=%s header=%q", path, header)
			assert.True(t, harness.reached, "path=%s header=%q", path, header)
			assert.Nil(t, harness.principal, "public paths carry no principal")
		}
	}
}

/*
TestGate_MissingOrMalformedHeader checks the 401 contract for protected
paths without a well-formed Bearer header.
*/
func TestGate_MissingOrMalformedHeader(t *testing.T) {
	headers := []string{
		"",
		"Basic dXNlcjpwYXNz",
		"bearer lowercase-scheme",
		"Token abc",
	}

	for _, header := range headers {
		harness := newGateHarness()
		recorder := harness.do(t, "/api/memos", header)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header=%q", header)
		assert.Equal(t, "Authorization header required", errorBody(t, recorder), "header=%q", header)
		assert.False(t, harness.reached, "handler must not run, header=%q", header)
	}
}

/*
TestGate_InvalidToken checks that every verification failure collapses to
one opaque response.
*/
func TestGate_InvalidToken(t *testing.T) {
	expired := mintToken(t, gateSecret, sec.Claims{
		UserID: 1, Role: sec.RoleUser, ExpiresAt: time.Now().Unix() - 1,
	})
	wrongKey := mintToken(t, "some-other-secret", sec.Claims{
		UserID: 1, Role: sec.RoleUser, ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})

	tokens := map[string]string{
		"malformed":  "not.a-real.token",
		"two_parts":  "abc.def",
		"expired":    expired,
		"wrong_key":  wrongKey,
		"empty_body": "",
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			harness := newGateHarness()
			recorder := harness.do(t, "/api/memos", "Bearer "+token)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Invalid token", errorBody(t, recorder))
			assert.False(t, harness.reached)
		})
	}
}

/*
TestGate_ValidToken checks that a verified principal is attached to the
context before the handler runs.
*/
func TestGate_ValidToken(t *testing.T) {
	claims := sec.Claims{
		UserID:    42,
		Email:     "hana@memoka.app",
		Name:      "花子",
		Role:      sec.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	token := mintToken(t, gateSecret, claims)

	harness := newGateHarness()
	recorder := harness.do(t, "/api/admin/users", "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, harness.reached)
	require.NotNil(t, harness.principal)
	assert.Equal(t, claims, *harness.principal)
}

/*
TestGate_NonAPIPassthrough checks that unknown non-API paths are not gated.
*/
func TestGate_NonAPIPassthrough(t *testing.T) {
	harness := newGateHarness()
	recorder := harness.do(t, "/favicon.ico", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, harness.reached)
	assert.Nil(t, harness.principal)
}
