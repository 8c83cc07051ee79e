// Copyright (c) 2026 HostelHQ. All rights reserved.

package sec

import "strings"

// # Roles

// Role represents the authorization level granted to an account.
//
// Roles are stored and compared in a canonical uppercase form. Any value
// arriving from a client or a token payload must pass through [NormalizeRole]
// before comparison.
type Role string

const (
	// Full administrative access to every resource.
	RoleAdmin Role = "ADMIN"

	// A hostel resident. Sees and mutates only records they own.
	RoleStudent Role = "STUDENT"
)

// NormalizeRole maps an arbitrarily-cased role string to its canonical form.
// Unknown values normalize to the empty Role, which never authorizes anything.
func NormalizeRole(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleStudent):
		return RoleStudent
	default:
		return ""
	}
}

// Is reports whether the role equals the required role, case-insensitively.
func (r Role) Is(required Role) bool {
	return NormalizeRole(string(r)) == NormalizeRole(string(required))
}

// IsAdmin reports whether the role is the administrative role.
func (r Role) IsAdmin() bool {
	return r.Is(RoleAdmin)
}

// # Identity

// Identity is the authenticated caller attached to a request context.
//
// It is assembled by the auth middleware from the CURRENT user record, not
// from the token payload: the role embedded in a token is only a snapshot
// taken at issuance, and this system always re-fetches before authorizing.
type Identity struct {
	ID                 string
	Email              string
	Role               Role
	MustChangePassword bool
}

// IsAdmin reports whether the identity holds the administrative role.
// A nil identity never does.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role.IsAdmin()
}

// CanAccessOwned reports whether the identity may touch a resource owned by
// ownerID. Admins may touch anything; everyone else only their own records.
func (i *Identity) CanAccessOwned(ownerID string) bool {
	if i == nil {
		return false
	}
	return i.Role.IsAdmin() || i.ID == ownerID
}
