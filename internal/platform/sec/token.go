// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package sec provides the cryptographic primitives of the platform:
// password hashing, session-token signing and verification, and the
// canonical role model.
//
// # Architecture
//
// This package isolates security-sensitive code from domain logic. Services
// receive it through narrow interfaces (e.g. the auth service's TokenIssuer),
// which keeps the crypto swappable and the services testable.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenTTL is the lifetime of an issued session token. A new token is
// only ever obtained through a fresh login; there is no refresh mechanism.
const SessionTokenTTL = 7 * 24 * time.Hour

// DevSigningSecret is the fallback HMAC secret used when no secret is
// configured. Running with it in production is an operational risk; main.go
// logs a loud warning when the fallback is active.
const DevSigningSecret = "hostelhq-dev-secret-do-not-use-in-production"

// ErrInvalidToken is returned by [TokenService.Verify] for any token that
// fails signature, shape, or expiry checks. Callers get no finer detail.
var ErrInvalidToken = errors.New("sec: invalid token")

// SessionClaims is the payload embedded inside a session token.
//
// The role claim is a snapshot taken at issuance. The auth middleware treats
// it as a hint only and re-fetches the user record before authorizing.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Email  string `json:"eml"`
	Role   string `json:"rol"`
}

// TokenService signs and verifies session tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string

	// now is injectable so expiry behavior can be tested with a fixed clock.
	now func() time.Time
}

// NewTokenService creates a TokenService signing with the given symmetric
// secret. An empty secret falls back to [DevSigningSecret].
func NewTokenService(secret, issuer string) *TokenService {
	if secret == "" {
		secret = DevSigningSecret
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock returns a copy of the service that uses the given time source.
// Intended for tests only.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

// Issue creates a signed session token for the given identity, valid for
// [SessionTokenTTL] from the current time.
func (service *TokenService) Issue(userID, email string, role Role) (string, error) {
	currentTime := service.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(SessionTokenTTL)),
		},
		UserID: userID,
		Email:  email,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity window of a session token string.
//
// It returns [ErrInvalidToken] (wrapped) for a bad signature, a malformed
// payload, an unexpected signing method, or an expired token.
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
