// Copyright (c) 2026 HostelHQ. All rights reserved.

// Package user implements the administrative account directory: listing,
// creating, editing, and retiring accounts.
//
// It builds on the credential store owned by the auth package rather than
// duplicating its persistence contracts.
package user

import (
	"context"
	"fmt"

	"github.com/hostelhq/hostelhq/internal/auth"
	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/constants"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// Service implements directory use cases over the credential store.
type Service struct {
	users       auth.UserRepository
	setupTokens auth.SetupTokenRepository
}

// NewService constructs a directory [Service].
func NewService(users auth.UserRepository, setupTokens auth.SetupTokenRepository) *Service {
	return &Service{users: users, setupTokens: setupTokens}
}

// CreateInput holds the data for an admin-created account.
type CreateInput struct {
	Email         string
	Name          string
	Role          string
	Phone         string
	StudentNumber string
	RoomNumber    string
	Course        string
	Year          int
	GuardianName  string
	GuardianPhone string
	Address       string
}

// Created pairs the new account with its single-use password setup token.
//
// The token is shown exactly once, to the creating admin, who relays it to
// the student. No fixed default password exists anywhere in the system.
type Created struct {
	User       *auth.User `json:"user"`
	SetupToken string     `json:"setup_token"`
}

// Create provisions an account without a usable password.
//
// The account receives a random placeholder hash and must_change_password
// set; the returned setup token is the only path to a working credential.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Created, error) {
	email := auth.NormalizeEmail(input.Email)

	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	role := sec.NormalizeRole(input.Role)
	if role == "" {
		return nil, apperr.ValidationError("Unknown role")
	}

	// Placeholder credential: random, never disclosed, unusable in practice.
	placeholder, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("user_service_placeholder_failed: %w", err)
	}
	placeholderHash, err := sec.HashPassword(placeholder)
	if err != nil {
		return nil, fmt.Errorf("user_service_hash_failed: %w", err)
	}

	account := &auth.User{
		ID:                 uuidv7.New(),
		Email:              email,
		PasswordHash:       placeholderHash,
		Name:               input.Name,
		Role:               role,
		Phone:              input.Phone,
		StudentNumber:      input.StudentNumber,
		RoomNumber:         input.RoomNumber,
		Course:             input.Course,
		Year:               input.Year,
		GuardianName:       input.GuardianName,
		GuardianPhone:      input.GuardianPhone,
		Address:            input.Address,
		MustChangePassword: true,
	}

	if err := service.users.Create(ctx, account); err != nil {
		return nil, err
	}

	setupToken, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("user_service_setup_token_failed: %w", err)
	}

	if err := service.setupTokens.Set(ctx, setupToken, account.ID, constants.PasswordSetupTokenTTL); err != nil {
		return nil, fmt.Errorf("user_service_setup_token_store_failed: %w", err)
	}

	return &Created{User: account, SetupToken: setupToken}, nil
}

// List returns accounts matching the filter plus pagination metadata.
func (service *Service) List(ctx context.Context, filter auth.UserFilter, page pagination.Params) ([]*auth.User, pagination.Meta, error) {
	users, total, err := service.users.List(ctx, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Get returns one account, enforcing the self-or-admin rule.
func (service *Service) Get(ctx context.Context, identity *sec.Identity, id string) (*auth.User, error) {
	if !identity.CanAccessOwned(id) {
		return nil, apperr.Forbidden("You may only view your own profile")
	}
	return service.users.FindByID(ctx, id)
}

// UpdateInput holds mutable profile fields. Nil fields stay unchanged.
type UpdateInput struct {
	Name          *string
	Phone         *string
	StudentNumber *string
	RoomNumber    *string
	Course        *string
	Year          *int
	GuardianName  *string
	GuardianPhone *string
	Address       *string
}

// Update edits profile fields, enforcing the self-or-admin rule.
func (service *Service) Update(ctx context.Context, identity *sec.Identity, id string, input UpdateInput) (*auth.User, error) {
	if !identity.CanAccessOwned(id) {
		return nil, apperr.Forbidden("You may only edit your own profile")
	}

	account, err := service.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyIfSet(&account.Name, input.Name)
	applyIfSet(&account.Phone, input.Phone)
	applyIfSet(&account.StudentNumber, input.StudentNumber)
	applyIfSet(&account.RoomNumber, input.RoomNumber)
	applyIfSet(&account.Course, input.Course)
	applyIfSet(&account.Year, input.Year)
	applyIfSet(&account.GuardianName, input.GuardianName)
	applyIfSet(&account.GuardianPhone, input.GuardianPhone)
	applyIfSet(&account.Address, input.Address)

	if err := service.users.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Delete soft-deletes an account. Admin only; enforced at the route level.
func (service *Service) Delete(ctx context.Context, id string) error {
	if _, err := service.users.FindByID(ctx, id); err != nil {
		return err
	}
	return service.users.SoftDelete(ctx, id)
}

// applyIfSet copies src over dst when src is non-nil.
func applyIfSet[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
