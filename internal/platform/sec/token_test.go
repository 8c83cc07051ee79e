// Copyright (c) 2026 HostelHQ. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/platform/sec"
)

const testIssuer = "hostelhq.test"

/*
TestTokenService_RoundTrip verifies that a freshly issued token verifies and
carries the same identity fields.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret", testIssuer)

	token, err := service.Issue("user-123", "student@hostelhq.app", sec.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "student@hostelhq.app", claims.Email)
	assert.Equal(t, string(sec.RoleStudent), claims.Role)
}

/*
TestTokenService_ExpiresAfterSevenDays verifies the 7-day lifetime using a
simulated clock: the token is valid just before the deadline and invalid one
second after it.
*/
func TestTokenService_ExpiresAfterSevenDays(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt

	service := sec.NewTokenService("unit-test-secret", testIssuer).
		WithClock(func() time.Time { return clock })

	token, err := service.Issue("user-123", "student@hostelhq.app", sec.RoleStudent)
	require.NoError(t, err)

	// 1. Still valid one second before expiry
	clock = issuedAt.Add(sec.SessionTokenTTL - time.Second)
	_, err = service.Verify(token)
	assert.NoError(t, err)

	// 2. Invalid one second after expiry
	clock = issuedAt.Add(sec.SessionTokenTTL + time.Second)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_RejectsForeignSignature verifies that a token signed with a
different secret never verifies.
*/
func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuing := sec.NewTokenService("secret-one", testIssuer)
	verifying := sec.NewTokenService("secret-two", testIssuer)

	token, err := issuing.Issue("user-123", "student@hostelhq.app", sec.RoleStudent)
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_RejectsGarbage verifies malformed token strings fail cleanly.
*/
func TestTokenService_RejectsGarbage(t *testing.T) {
	service := sec.NewTokenService("unit-test-secret", testIssuer)

	for _, raw := range []string{"", "not.a.jwt", "aaaa.bbbb"} {
		_, err := service.Verify(raw)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	}
}

/*
TestTokenService_EmptySecretFallsBack verifies the development fallback:
an empty configured secret still issues verifiable tokens.
*/
func TestTokenService_EmptySecretFallsBack(t *testing.T) {
	unconfigured := sec.NewTokenService("", testIssuer)
	explicit := sec.NewTokenService(sec.DevSigningSecret, testIssuer)

	token, err := unconfigured.Issue("user-123", "admin@hostelhq.app", sec.RoleAdmin)
	require.NoError(t, err)

	claims, err := explicit.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
}
