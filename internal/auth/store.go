// Copyright (c) 2026 HostelHQ. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// UserFilter narrows a user listing. Each field is independently optional;
// all present fields combine with AND.
type UserFilter struct {
	// Role restricts results to one role when non-nil.
	Role *string
	// RoomNumber restricts results to residents of one room when non-nil.
	RoomNumber *string
	// Search matches name or email substrings when non-nil.
	Search *string
}

// UserRepository defines the data access contract for accounts.
//
// # Implementations
//
// The canonical implementation is PostgreSQL (store_postgres.go). Tests use
// in-memory fakes.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist or is deleted.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email. The caller must
	// pass an already-normalized email (see [NormalizeEmail]).
	//
	// Returns [apperr.NotFound] if no account uses this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List returns accounts matching the filter plus the unpaginated total.
	List(ctx context.Context, filter UserFilter, page pagination.Params) ([]*User, int, error)

	// Create persists a brand-new account.
	//
	// Returns [apperr.Conflict] when the email unique constraint fails.
	Create(ctx context.Context, user *User) error

	// Update persists changes to mutable profile fields.
	// Passwords must go through [UpdatePassword].
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces the password hash and the forced-change flag.
	// Kept separate from [Update] so profile edits can never clobber
	// credentials by accident.
	UpdatePassword(ctx context.Context, userID, newHash string, mustChange bool) error

	// SoftDelete marks the account as deleted without removing the row,
	// preserving references from payments and bookings.
	SoftDelete(ctx context.Context, id string) error
}

// SetupTokenRepository stores volatile single-use password setup tokens for
// admin-created accounts.
//
// # Domain Ownership
//
// Kept alongside [UserRepository] because setup tokens exist purely to
// bootstrap account credentials.
type SetupTokenRepository interface {
	// Set stores a setup token for a userID with a limited lifetime.
	Set(ctx context.Context, token string, userID string, ttl time.Duration) error

	// Get returns the userID bound to a token.
	//
	// Returns [apperr.NotFound] if the token is absent or expired.
	Get(ctx context.Context, token string) (string, error)

	// Delete removes a token after successful redemption.
	Delete(ctx context.Context, token string) error
}
