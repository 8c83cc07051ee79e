// Copyright (c) 2026 HostelHQ. All rights reserved.

/*
Package constants provides centralized, immutable values for the platform.

It defines default timeouts, rate limits, and cross-cutting keys shared
between layers, keeping magic strings and numbers out of business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "hostelhq-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests may finish during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitWindow is the length of one counting window per client key.
	RateLimitWindow = 15 * time.Minute

	// RateLimitMaxRequests is the number of requests allowed per window per key.
	RateLimitMaxRequests = 100

	// RateLimitSweepInterval is how often expired client entries are evicted.
	RateLimitSweepInterval = 1 * time.Minute

	// RateLimitMaxKeys bounds the number of distinct client keys tracked at
	// once. Beyond this the limiter evicts the stalest window first.
	RateLimitMaxKeys = 10000

	// LoginThrottleRPS is the sustained request rate allowed per IP on the
	// login endpoint, on top of the global window limiter.
	LoginThrottleRPS = 1.0

	// LoginThrottleBurst is the burst capacity of the login throttle.
	LoginThrottleBurst = 5
)

// # Authentication

const (
	// TokenIssuer is the standard 'iss' claim in session tokens.
	TokenIssuer = "hostelhq.app"

	// SessionCookieName is the http-only cookie carrying the session token.
	SessionCookieName = "token"

	// PasswordSetupTokenTTL is how long an admin-issued, single-use password
	// setup token stays redeemable.
	PasswordSetupTokenTTL = 48 * time.Hour

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
)

// # Background Workers

const (
	// ReminderSweepInterval is how often the reminder worker looks for
	// scheduled payment reminders that have come due.
	ReminderSweepInterval = 5 * time.Minute
)

// # Redis Prefixes

const (
	RedisPrefixSetupToken = "auth:setup_token:"
)
