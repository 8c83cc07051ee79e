// Copyright (c) 2026 HostelHQ. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostelhq/hostelhq/internal/platform/sec"
)

/*
TestRole_CaseInsensitiveComparison verifies that role checks ignore case, so a
legacy lowercase role value still authorizes.
*/
func TestRole_CaseInsensitiveComparison(t *testing.T) {
	tests := []struct {
		name     string
		held     sec.Role
		required sec.Role
		allowed  bool
	}{
		{"exact_match", sec.RoleAdmin, sec.RoleAdmin, true},
		{"lowercase_held", sec.Role("admin"), sec.RoleAdmin, true},
		{"mixed_case", sec.Role("AdMiN"), sec.RoleAdmin, true},
		{"student_vs_admin", sec.RoleStudent, sec.RoleAdmin, false},
		{"lowercase_student", sec.Role("student"), sec.RoleStudent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.held.Is(tt.required))
		})
	}
}

/*
TestNormalizeRole verifies canonicalization of raw role strings.
*/
func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, sec.RoleAdmin, sec.NormalizeRole("admin"))
	assert.Equal(t, sec.RoleAdmin, sec.NormalizeRole("  ADMIN  "))
	assert.Equal(t, sec.RoleStudent, sec.NormalizeRole("Student"))

	// Unknown values normalize to empty, which authorizes nothing.
	assert.Equal(t, sec.Role(""), sec.NormalizeRole("superuser"))
	assert.Equal(t, sec.Role(""), sec.NormalizeRole(""))
}

/*
TestIdentity_IsAdmin verifies the admin check on identities, including the
nil-identity and legacy-casing cases.
*/
func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, (&sec.Identity{ID: "admin-1", Role: sec.RoleAdmin}).IsAdmin())
	assert.True(t, (&sec.Identity{ID: "admin-2", Role: sec.Role("admin")}).IsAdmin())
	assert.False(t, (&sec.Identity{ID: "user-1", Role: sec.RoleStudent}).IsAdmin())

	var anonymous *sec.Identity
	assert.False(t, anonymous.IsAdmin())
}

/*
TestIdentity_CanAccessOwned verifies the self-or-admin ownership rule.
*/
func TestIdentity_CanAccessOwned(t *testing.T) {
	student := &sec.Identity{ID: "user-1", Role: sec.RoleStudent}
	admin := &sec.Identity{ID: "admin-1", Role: sec.RoleAdmin}

	// 1. Students reach only their own resources
	assert.True(t, student.CanAccessOwned("user-1"))
	assert.False(t, student.CanAccessOwned("user-2"))

	// 2. Admins reach everything
	assert.True(t, admin.CanAccessOwned("admin-1"))
	assert.True(t, admin.CanAccessOwned("user-1"))
}
