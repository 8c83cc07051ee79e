// Copyright (c) 2026 HostelHQ. All rights reserved.

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/constants"
	"github.com/hostelhq/hostelhq/internal/platform/ratelimit"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
)

// # Global Window Limiter

// RateLimit applies the injected fixed-window limiter to every request,
// keyed by client address.
//
// The limiter instance is owned by the server composition root; this
// middleware only consults it. A rejected request gets a 429 whose
// Retry-After hint is the full window length in seconds, so clients back off
// for a whole window rather than hammering the boundary.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			result := limiter.Check(RealIP(request))

			if !result.Allowed {
				retrySeconds := int(limiter.Window().Seconds())
				if retrySeconds < 1 {
					retrySeconds = 1
				}
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retrySeconds))
				respond.Error(writer, request, apperr.RateLimited(retrySeconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Login Throttle

// throttleEntry pairs a token bucket with its last activity timestamp.
type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginThrottle is a stricter per-IP token bucket for credential endpoints,
// layered on top of the global window limiter to slow brute-force attempts.
type LoginThrottle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry

	rps   rate.Limit
	burst int
}

// NewLoginThrottle creates a throttle allowing rps sustained requests with
// the given burst per client address.
func NewLoginThrottle(rps float64, burst int) *LoginThrottle {
	return &LoginThrottle{
		entries: make(map[string]*throttleEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Handler wraps next with the throttle check.
func (t *LoginThrottle) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		clientIP := RealIP(request)

		t.mu.Lock()
		entry, found := t.entries[clientIP]
		if !found {
			entry = &throttleEntry{limiter: rate.NewLimiter(t.rps, t.burst)}
			t.entries[clientIP] = entry
		}
		entry.lastSeen = time.Now()
		allowed := entry.limiter.Allow()
		t.mu.Unlock()

		if !allowed {
			respond.Error(writer, request, apperr.RateLimited(1))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// StartSweeper evicts idle throttle entries every interval until stop closes.
func (t *LoginThrottle) StartSweeper(interval, idleTTL time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.mu.Lock()
				for ip, entry := range t.entries {
					if time.Since(entry.lastSeen) > idleTTL {
						delete(t.entries, ip)
					}
				}
				t.mu.Unlock()
			case <-stop:
				return
			}
		}
	}()
}
