// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Per-request values (authenticated identity, request ID, logger) travel on
// the request context. Using a private, unexported key type prevents
// collisions with third-party packages that also store context values.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
//
// Go's [context.Context] matches on value AND type, so even another package
// storing under the string "request_id" cannot collide with these keys.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyIdentity is the context key for the resolved [*auth.Identity].
	KeyIdentity key = "identity"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
