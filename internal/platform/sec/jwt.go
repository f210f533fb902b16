// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (credential hashing, token
// signing and verification) from the domain logic. It owns the compact
// token wire format end to end: three unpadded base64url segments
// (header.payload.signature) signed with HMAC-SHA256. The format is
// interoperable with RFC 7519 HS256 tokens, but the codec is implemented
// here directly so that every security-relevant seam (constant-time
// signature comparison, expiry enforcement, unverified decoding) stays
// explicit and auditable.
package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// # Token Claims

// Claims is the payload embedded inside an access token.
//
// # Why a closed struct?
//
// The token payload is attacker-visible and, before verification,
// attacker-controlled. Modelling it as a closed struct means unknown
// fields are dropped at parse time and can never be smuggled into the
// authenticated identity downstream code trusts.
type Claims struct {
	// UserID is the account's primary key.
	UserID int64 `json:"userId"`
	// Email is the account email at issuance time.
	Email string `json:"email"`
	// Name is the display name at issuance time.
	Name string `json:"name"`
	// Role is the coarse authorization level ("user" or "admin").
	Role Role `json:"role"`
	// ExpiresAt is the expiry instant in Unix seconds. Zero means no expiry.
	ExpiresAt int64 `json:"exp,omitempty"`
}

// # Failure Taxonomy

// Internal verification failures. Callers at the HTTP boundary must
// collapse all of them into one opaque "invalid token" response so the
// wire never reveals whether a token was malformed, tampered, or expired.
var (
	// ErrSecretMissing is returned when the signing secret is empty.
	ErrSecretMissing = errors.New("sec: signing secret is empty")

	// ErrTokenMalformed is returned for structurally broken tokens
	// (wrong segment count, bad base64, bad JSON).
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrSignatureInvalid is returned when the HMAC does not match.
	ErrSignatureInvalid = errors.New("sec: token signature mismatch")

	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token is expired")
)

// tokenHeader is the fixed header of every token this codec produces.
// alg and typ are constant; any other algorithm is rejected outright.
const tokenHeader = `{"alg":"HS256","typ":"JWT"}`

// # Signing

// Sign serializes claims and returns a signed compact token.
//
// # Flow
//  1. base64url-encode (unpadded) the UTF-8 JSON of the fixed header and of the claims.
//  2. Join as "header.payload" and HMAC-SHA256 it with secret as the raw key.
//  3. Append the base64url-encoded signature: "header.payload.signature".
//
// Multi-byte claim content (e.g. Japanese display names) round-trips
// through UTF-8 by construction, since encoding/json emits UTF-8.
func Sign(claims Claims, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretMissing
	}

	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	headerSegment := base64.RawURLEncoding.EncodeToString([]byte(tokenHeader))
	payloadSegment := base64.RawURLEncoding.EncodeToString(payloadJSON)
	signingInput := headerSegment + "." + payloadSegment

	signatureSegment := base64.RawURLEncoding.EncodeToString(computeSignature(signingInput, secret))

	return signingInput + "." + signatureSegment, nil
}

// # Verification

// Verify checks the signature and expiry of a compact token and returns
// the embedded claims on success.
//
// # Flow
//  1. Split on "." — exactly three segments or fail.
//  2. Recompute the HMAC over "header.payload" and compare it against the
//     decoded signature with a constant-time primitive.
//  3. Parse the payload JSON into [Claims].
//  4. If exp is set and strictly before now, fail.
//
// Every failure path returns one of the sentinel errors above; no parse or
// decode fault escapes unclassified.
func Verify(token, secret string) (*Claims, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrTokenMalformed
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrTokenMalformed
	}

	// hmac.Equal is constant-time. Never replace this with a manual
	// byte-by-byte loop: early exit on the first mismatching byte would
	// leak how much of a forged signature is correct.
	expected := computeSignature(parts[0]+"."+parts[1], secret)
	if !hmac.Equal(signature, expected) {
		return nil, ErrSignatureInvalid
	}

	claims, err := parsePayload(parts[1])
	if err != nil {
		return nil, err
	}

	if claims.ExpiresAt != 0 && claims.ExpiresAt < time.Now().Unix() {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// # Unverified Inspection

// Decode parses the payload segment WITHOUT checking the signature.
//
// Its output must never be treated as a trusted identity. It exists for
// non-security-critical inspection only (debugging, client-side hints).
// Returns nil for any malformed input.
func Decode(token string) *Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	claims, err := parsePayload(parts[1])
	if err != nil {
		return nil
	}

	return claims
}

// # Internals

// computeSignature returns the raw HMAC-SHA256 of signingInput keyed with secret.
func computeSignature(signingInput, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

// parsePayload decodes and unmarshals one base64url payload segment.
func parsePayload(segment string) (*Claims, error) {
	payloadJSON, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	if err := json.Unmarshal(payloadJSON, claims); err != nil {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
