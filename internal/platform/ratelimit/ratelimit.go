// Copyright (c) 2026 HostelHQ. All rights reserved.

/*
Package ratelimit implements a fixed-window request limiter keyed by client
address.

Each key gets a counting window of configurable length. The first request in
a window initializes the count to 1; later requests increment it until the
cap is reached, after which requests are rejected until the window elapses
and the count resets.

State is process-local and is NOT shared across instances. This is acceptable
only for single-instance deployment; a multi-instance rollout needs a shared
store behind the same interface.
*/
package ratelimit

import (
	"sync"
	"time"
)

// Result describes the outcome of a single limiter check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the number of requests left in the current window.
	Remaining int
	// RetryAfter is how long the caller should wait before retrying.
	// Only meaningful when Allowed is false.
	RetryAfter time.Duration
}

// window tracks the request count for one client key.
type window struct {
	count     int
	startedAt time.Time
}

// Limiter is a bounded, time-aware fixed-window counter.
//
// It is constructed once by the server composition root and injected into
// the middleware chain; no package-level mutable state exists.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	windowLength time.Duration
	maxRequests  int
	maxKeys      int

	// now is injectable so window expiry can be tested with a fixed clock.
	now func() time.Time
}

// New creates a Limiter allowing maxRequests per windowLength per key,
// tracking at most maxKeys distinct keys at once.
func New(windowLength time.Duration, maxRequests, maxKeys int) *Limiter {
	return &Limiter{
		windows:      make(map[string]*window),
		windowLength: windowLength,
		maxRequests:  maxRequests,
		maxKeys:      maxKeys,
		now:          time.Now,
	}
}

// WithClock replaces the limiter's time source. Intended for tests only.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Check records one request for the key and reports whether it is allowed.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	currentTime := l.now()

	entry, found := l.windows[key]
	if !found || currentTime.Sub(entry.startedAt) >= l.windowLength {
		// Fresh key, or the previous window has elapsed: reset the count.
		if !found && len(l.windows) >= l.maxKeys {
			l.evictStalestLocked()
		}
		l.windows[key] = &window{count: 1, startedAt: currentTime}
		return Result{Allowed: true, Remaining: l.maxRequests - 1}
	}

	if entry.count >= l.maxRequests {
		retryAfter := l.windowLength - currentTime.Sub(entry.startedAt)
		return Result{Allowed: false, Remaining: 0, RetryAfter: retryAfter}
	}

	entry.count++
	return Result{Allowed: true, Remaining: l.maxRequests - entry.count}
}

// Sweep removes every window that has fully elapsed. It is called
// periodically by the background goroutine started in [Limiter.StartSweeper]
// so the map cannot grow unboundedly with one entry per client ever seen.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	currentTime := l.now()
	for key, entry := range l.windows {
		if currentTime.Sub(entry.startedAt) >= l.windowLength {
			delete(l.windows, key)
		}
	}
}

// StartSweeper runs [Limiter.Sweep] every interval until stop is closed.
func (l *Limiter) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-stop:
				return
			}
		}
	}()
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.windowLength
}

// Len reports the number of tracked keys. Used by tests and diagnostics.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// evictStalestLocked drops the window with the oldest start time.
// Caller must hold l.mu.
func (l *Limiter) evictStalestLocked() {
	var stalestKey string
	var stalestTime time.Time

	for key, entry := range l.windows {
		if stalestKey == "" || entry.startedAt.Before(stalestTime) {
			stalestKey = key
			stalestTime = entry.startedAt
		}
	}

	if stalestKey != "" {
		delete(l.windows, stalestKey)
	}
}
