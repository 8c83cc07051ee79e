// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package auth owns the credential store: the user entity, its persistence
// contracts, and the authentication use cases built on them.
//
// # Architecture
//
// The entity has no dependencies on outer layers. Storage and token concerns
// reach it only through the interfaces in store.go.
package auth

import (
	"strings"
	"time"

	"github.com/hostelhq/hostelhq/internal/platform/sec"
)

// User represents a registered account: an administrator or a resident student.
//
// # Rules
//   - Email is unique and normalized to lowercase before any lookup or insert.
//   - PasswordHash is produced exclusively via sec.HashPassword (bcrypt, cost 12).
//   - Role is stored in canonical uppercase form.
//   - Accounts are soft-deleted; rows are never physically removed.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Never serialized.
	Name         string   `json:"name"`
	Role         sec.Role `json:"role"`
	Phone        string   `json:"phone,omitempty"`

	// Student profile fields. Empty for admin accounts.
	StudentNumber string `json:"student_number,omitempty"`
	RoomNumber    string `json:"room_number,omitempty"`
	Course        string `json:"course,omitempty"`
	Year          int    `json:"year,omitempty"`
	GuardianName  string `json:"guardian_name,omitempty"`
	GuardianPhone string `json:"guardian_phone,omitempty"`
	Address       string `json:"address,omitempty"`

	// MustChangePassword marks admin-created accounts that have not yet
	// redeemed their single-use password setup token.
	MustChangePassword bool `json:"must_change_password"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity projects the user onto the request-scoped identity type consumed
// by the middleware and the role gate.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               sec.NormalizeRole(string(u.Role)),
		MustChangePassword: u.MustChangePassword,
	}
}

// NormalizeEmail maps an email address to its canonical stored form.
// Every lookup and insert must go through this.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
