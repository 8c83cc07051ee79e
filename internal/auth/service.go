// Copyright (c) 2026 HostelHQ. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/uuidv7"
)

// TokenIssuer defines the contract for creating signed session tokens.
type TokenIssuer interface {
	// Issue creates a signed session token for the given identity attributes.
	Issue(userID, email string, role sec.Role) (string, error)
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is security-critical. Changes to hashing, signup, or login
// logic require a second reviewer.
type Service struct {
	users       UserRepository
	setupTokens SetupTokenRepository
	tokens      TokenIssuer
}

// NewService constructs an auth [Service] with its dependencies.
func NewService(users UserRepository, setupTokens SetupTokenRepository, tokens TokenIssuer) *Service {
	return &Service{
		users:       users,
		setupTokens: setupTokens,
		tokens:      tokens,
	}
}

// SignupInput holds the data required to enroll a new account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Phone    string
}

// Signup validates, hashes, and persists a brand-new account.
//
// # Business Rules
//   - Emails are unique, compared in normalized lowercase form.
//   - A blank role defaults to STUDENT; explicit roles are normalized.
//
// Returns [apperr.Conflict] if the email is already registered.
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	// ── 1. Uniqueness ─────────────────────────────────────────────────────

	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 2. Role Normalization ─────────────────────────────────────────────

	role := sec.RoleStudent
	if input.Role != "" {
		role = sec.NormalizeRole(input.Role)
		if role == "" {
			return nil, apperr.ValidationError("Unknown role")
		}
	}

	// ── 3. Credential Hashing ─────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	user := &User{
		ID:           uuidv7.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Role:         role,
		Phone:        input.Phone,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
	// Role is the portal the client logged in through. A mismatch against
	// the stored role fails the attempt.
	Role string
}

// LoginResult is a successfully established session.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login validates credentials and issues a session token.
//
// # Flow
//  1. Look up the account by normalized email.
//  2. Verify the bcrypt hash.
//  3. Check the requested portal role against the stored role.
//  4. Issue a 7-day session token.
//
// All credential failures return the same generic [apperr.Unauthorized] so
// account existence cannot be probed.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.users.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if input.Role != "" && !user.Role.Is(sec.NormalizeRole(input.Role)) {
		return nil, apperr.Unauthorized("No account with this role")
	}

	// Accounts created by an admin hold an unusable placeholder hash until
	// the setup token is redeemed, but the flag is checked anyway in case a
	// password was provisioned out of band.
	if user.MustChangePassword {
		return nil, apperr.Forbidden("Password setup required before login")
	}

	token, err := service.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// LoadIdentity resolves a user ID to a current identity snapshot.
//
// It backs the middleware's per-request re-fetch: the role always comes from
// the database, never from the token payload.
func (service *Service) LoadIdentity(ctx context.Context, userID string) (*sec.Identity, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// Me returns the full current account for the authenticated user.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// SetupPassword redeems a single-use setup token and sets the account's
// first real password.
//
// The token is deleted on success; redeeming it twice fails with NotFound.
func (service *Service) SetupPassword(ctx context.Context, token, newPassword string) error {
	userID, err := service.setupTokens.Get(ctx, token)
	if err != nil {
		return apperr.Unauthorized("Setup token is invalid or expired")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, userID, hashedPassword, false); err != nil {
		return err
	}

	if err := service.setupTokens.Delete(ctx, token); err != nil {
		return fmt.Errorf("auth_service_setup_token_delete_failed: %w", err)
	}

	return nil
}

// ChangePassword replaces the password for an authenticated user after
// verifying the current one.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	return service.users.UpdatePassword(ctx, userID, hashedPassword, false)
}
