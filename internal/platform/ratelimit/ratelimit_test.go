// Copyright (c) 2026 HostelHQ. All rights reserved.

package ratelimit_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hostelhq/hostelhq/internal/platform/ratelimit"
)

/*
TestLimiter_RejectsOverCap verifies the headline property: 100 requests from
one key inside a 15-minute window pass, the 101st is rejected with a retry
hint, and an unrelated key is unaffected.
*/
func TestLimiter_RejectsOverCap(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.New(15*time.Minute, 100, 1000).
		WithClock(func() time.Time { return clock })

	// 1. First 100 requests pass
	for i := 0; i < 100; i++ {
		result := limiter.Check("10.0.0.1")
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}

	// 2. The 101st is rejected
	rejected := limiter.Check("10.0.0.1")
	assert.False(t, rejected.Allowed)
	assert.Equal(t, 0, rejected.Remaining)
	assert.Equal(t, 15*time.Minute, rejected.RetryAfter)

	// 3. A different key still passes
	assert.True(t, limiter.Check("10.0.0.2").Allowed)
}

/*
TestLimiter_WindowReset verifies that once the window elapses a blocked key
is allowed again and its count restarts.
*/
func TestLimiter_WindowReset(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.New(15*time.Minute, 3, 1000).
		WithClock(func() time.Time { return clock })

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Check("10.0.0.1").Allowed)
	}
	assert.False(t, limiter.Check("10.0.0.1").Allowed)

	// Advance past the window: the key gets a fresh allowance.
	clock = clock.Add(15 * time.Minute)
	result := limiter.Check("10.0.0.1")
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.Remaining)
}

/*
TestLimiter_RetryAfterShrinks verifies the retry hint reflects the time left
in the current window, not a fixed value.
*/
func TestLimiter_RetryAfterShrinks(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.New(15*time.Minute, 1, 1000).
		WithClock(func() time.Time { return clock })

	assert.True(t, limiter.Check("10.0.0.1").Allowed)

	clock = clock.Add(5 * time.Minute)
	rejected := limiter.Check("10.0.0.1")
	assert.False(t, rejected.Allowed)
	assert.Equal(t, 10*time.Minute, rejected.RetryAfter)
}

/*
TestLimiter_SweepDropsElapsedWindows verifies the periodic sweep removes only
fully elapsed windows.
*/
func TestLimiter_SweepDropsElapsedWindows(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.New(15*time.Minute, 100, 1000).
		WithClock(func() time.Time { return clock })

	limiter.Check("stale")
	clock = clock.Add(10 * time.Minute)
	limiter.Check("fresh")
	assert.Equal(t, 2, limiter.Len())

	clock = clock.Add(5 * time.Minute)
	limiter.Sweep()

	assert.Equal(t, 1, limiter.Len())
	// "fresh" still counts against its original window.
	for i := 0; i < 99; i++ {
		limiter.Check("fresh")
	}
	assert.False(t, limiter.Check("fresh").Allowed)
}

/*
TestLimiter_BoundedKeys verifies the key map never exceeds its configured
capacity even under an address-churn flood.
*/
func TestLimiter_BoundedKeys(t *testing.T) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.New(15*time.Minute, 100, 10).
		WithClock(func() time.Time { return clock })

	for i := 0; i < 50; i++ {
		clock = clock.Add(time.Second)
		limiter.Check(fmt.Sprintf("10.0.0.%d", i))
	}

	assert.LessOrEqual(t, limiter.Len(), 10)
}
