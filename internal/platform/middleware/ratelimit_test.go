// Copyright (c) 2026 HostelHQ. All rights reserved.

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	"github.com/hostelhq/hostelhq/internal/platform/ratelimit"
)

/*
TestRateLimit_RetryAfterIsFullWindow verifies a rejected request carries the
whole window length as its Retry-After hint, not the time left in the current
window: a 15-minute window always hints 900 seconds.
*/
func TestRateLimit_RetryAfterIsFullWindow(t *testing.T) {
	limiter := ratelimit.New(15*time.Minute, 1, 10)
	handler := middleware.RateLimit(limiter)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	newRequest := func() *http.Request {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:4711"
		return request
	}

	// 1. The first request in the window passes through
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, newRequest())
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// 2. The next is rejected with the fixed 900-second hint
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, newRequest())
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "900", recorder.Header().Get("Retry-After"))
}
