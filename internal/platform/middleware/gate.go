// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/taibuivan/memoka/internal/platform/apperr"
	"github.com/taibuivan/memoka/internal/platform/constants"
	"github.com/taibuivan/memoka/internal/platform/ctxutil"
	"github.com/taibuivan/memoka/internal/platform/respond"
	"github.com/taibuivan/memoka/internal/platform/sec"
)

// # Request Gate
//
// Gate is the single authentication chokepoint. It runs before every
// handler and guarantees that no protected operation executes without a
// verified principal already present in the request context.

// publicAPIPrefixes are the unauthenticated auth endpoints, matched by
// literal prefix.
var publicAPIPrefixes = []string{
	"/api/auth/login",
	"/api/auth/register",
}

// publicAssetPrefixes are frontend asset paths the gate never touches.
// The root path is matched exactly, not as a prefix: every path starts
// with "/", so a prefix match would allow-list the entire API.
var publicAssetPrefixes = []string{
	"/assets/",
	"/vite.svg",
}

// Gate classifies each request as public or protected and, for protected
// API paths, extracts and verifies the bearer token.
//
// # Flow
//  1. Public paths (root, static assets, login, register) proceed with no
//     token handling at all.
//  2. Any other /api/ path requires 'Authorization: Bearer <token>'.
//     Absent or malformed header: 401 "Authorization header required".
//  3. The token is verified against secret. Any failure — malformed,
//     tampered, expired, wrong key — yields the same opaque
//     401 "Invalid token". The distinction is logged, never sent.
//  4. On success the verified claims are attached to the context.
//  5. Paths outside /api/ pass through untouched (served elsewhere).
func Gate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			path := request.URL.Path

			// ── 1. Public Classification ──────────────────────────────────────
			if isPublicPath(path) {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Non-API Passthrough ────────────────────────────────────────
			if !strings.HasPrefix(path, "/api/") {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Bearer Extraction ──────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			token, hasBearer := strings.CutPrefix(authHeader, constants.BearerPrefix)
			if authHeader == "" || !hasBearer {
				respond.Error(writer, request, apperr.Unauthorized("Authorization header required"))
				return
			}

			// ── 4. Token Verification ─────────────────────────────────────────
			claims, err := sec.Verify(token, secret)
			if err != nil {
				// Anti-oracle: the internal cause (malformed, tampered,
				// expired) goes to the log only. The wire sees one signal.
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"token_rejected", "cause", err.Error())
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				return
			}

			// ── 5. Principal Injection ────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// isPublicPath reports whether the path is on the public allow-list.
func isPublicPath(path string) bool {
	if path == "/" {
		return true
	}

	for _, prefix := range publicAssetPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	for _, prefix := range publicAPIPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
