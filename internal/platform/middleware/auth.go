// Copyright (c) 2026 HostelHQ. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/constants"
	"github.com/hostelhq/hostelhq/internal/platform/ctxutil"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
)

// TokenVerifier verifies a raw session token string.
//
// Defining the interface here decouples the middleware from the sec package's
// concrete service and lets tests inject a stub.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.SessionClaims, error)
}

// IdentityLoader resolves a verified user ID to a CURRENT identity.
//
// # Why re-fetch?
//
// The role inside a token is a snapshot taken at issuance. Authorization here
// always runs against the live user record: a demoted admin loses access the
// moment the database changes, and a deleted account fails authentication
// even while its token signature is still valid.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Authenticate extracts and verifies the session token from the request.
//
// # Flow
//  1. Look for 'Authorization: Bearer <token>', falling back to the
//     http-only cookie named "token".
//  2. If neither is present, the request proceeds as anonymous.
//  3. Verify the token, then load the current user record by ID.
//  4. Inject [*sec.Identity] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, loader IdentityLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			tokenString, err := extractToken(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── Anonymous access ─────────────────────────────────────────
			if tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── Token verification ───────────────────────────────────────
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── Identity resolution ──────────────────────────────────────
			// A valid signature with a missing user still fails: the account
			// may have been deleted since issuance.
			identity, err := loader.LoadIdentity(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Account no longer active"))
				return
			}

			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		if identity == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose identity does not hold the required role.
//
// Role comparison is case-insensitive; it implies [RequireAuth] so both need
// not be mounted.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !identity.Role.Is(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// extractToken pulls the session token from the Authorization header first,
// then from the session cookie. An empty return with nil error means the
// request is anonymous.
func extractToken(request *http.Request) (string, error) {
	authHeader := request.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", apperr.Unauthorized("Invalid authorization format")
		}
		return parts[1], nil
	}

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}
	return cookie.Value, nil
}
