// Copyright (c) 2026 HostelHQ. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
its own plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	// 1. Same plaintext verifies
	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", digest))

	// 2. Any other plaintext fails
	assert.False(t, sec.CheckPasswordHash("correct horse battery stapler", digest))
	assert.False(t, sec.CheckPasswordHash("", digest))
}

/*
TestHashPassword_UniqueSalts verifies that hashing the same password twice
produces different digests.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)

	second, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("s3cret-pass", first))
	assert.True(t, sec.CheckPasswordHash("s3cret-pass", second))
}

/*
TestCheckPasswordHash_MalformedDigest verifies that garbage digests never
verify.
*/
func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPasswordHash("anything", ""))
}
