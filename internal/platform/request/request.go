// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, and hosts the per-operation authorization policy
that privileged handlers apply on top of the request gate.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/memoka/internal/platform/apperr"
	"github.com/taibuivan/memoka/internal/platform/ctxutil"
	"github.com/taibuivan/memoka/internal/platform/sec"
	"github.com/taibuivan/memoka/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IDParam retrieves a named URL parameter and parses it as an int64 identifier.

Returns:
  - int64: Parsed identifier
  - error: apperr.ValidationError for missing or non-numeric values
*/
func IDParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive identifier")
	}
	return id, nil
}

/*
QueryInt retrieves a query parameter as an int, falling back to a default.
*/
func QueryInt(request *http.Request, name string, fallback int) int {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// # Identity & Authorization

/*
Principal extracts the verified claims from the request context.

Returns nil if the request is not authenticated.
*/
func Principal(request *http.Request) *sec.Claims {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the claims.

Returns:
  - *sec.Claims: The verified principal
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.Claims, error) {
	claims := ctxutil.GetPrincipal(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authorization header required")
	}
	return claims, nil
}

/*
RequireAdmin applies the coarse per-operation authorization policy: the
already-authenticated principal must carry the admin role.

This is a second layer on top of the request gate, not a replacement for
it — the gate guarantees a verified principal, this checks its privilege.

Returns:
  - error: apperr.Forbidden if the principal is absent or not an admin, otherwise nil
*/
func RequireAdmin(claims *sec.Claims) error {
	if claims == nil || !claims.Role.IsAdmin() {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}

/*
RequiredAdmin combines [RequiredPrincipal] and [RequireAdmin] for
privileged handlers.
*/
func RequiredAdmin(request *http.Request) (*sec.Claims, error) {
	claims, err := RequiredPrincipal(request)
	if err != nil {
		return nil, err
	}
	if err := RequireAdmin(claims); err != nil {
		return nil, err
	}
	return claims, nil
}
