// Copyright (c) 2026 HostelHQ. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhq/hostelhq/internal/auth"
	"github.com/hostelhq/hostelhq/internal/platform/apperr"
	"github.com/hostelhq/hostelhq/internal/platform/dberr"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/pkg/pagination"
)

// fakeUserRepository keeps accounts in memory, keyed by ID.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "User")
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "User")
}

func (r *fakeUserRepository) List(_ context.Context, _ auth.UserFilter, _ pagination.Params) ([]*auth.User, int, error) {
	all := []*auth.User{}
	for _, user := range r.users {
		all = append(all, user)
	}
	return all, len(all), nil
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string, mustChange bool) error {
	user, ok := r.users[userID]
	if !ok {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}
	user.PasswordHash = newHash
	user.MustChangePassword = mustChange
	return nil
}

func (r *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

// fakeSetupTokens is an in-memory token store with no expiry.
type fakeSetupTokens struct {
	tokens map[string]string
}

func newFakeSetupTokens() *fakeSetupTokens {
	return &fakeSetupTokens{tokens: make(map[string]string)}
}

func (s *fakeSetupTokens) Set(_ context.Context, token, userID string, _ time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeSetupTokens) Get(_ context.Context, token string) (string, error) {
	if userID, ok := s.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Setup token")
}

func (s *fakeSetupTokens) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

// staticIssuer returns a fixed token string so tests can assert plumbing
// without parsing JWTs.
type staticIssuer struct{}

func (staticIssuer) Issue(_, _ string, _ sec.Role) (string, error) {
	return "session-token", nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSetupTokens) {
	users := newFakeUserRepository()
	tokens := newFakeSetupTokens()
	return auth.NewService(users, tokens, staticIssuer{}), users, tokens
}

/*
TestService_Signup verifies role defaulting, email normalization, and the
duplicate-email conflict.
*/
func TestService_Signup(t *testing.T) {
	service, users, _ := newTestService()
	ctx := context.Background()

	// 1. A blank role defaults to STUDENT and the email is lowercased
	created, err := service.Signup(ctx, auth.SignupInput{
		Email:    "  Alice@Example.COM ",
		Password: "correct horse battery",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, sec.RoleStudent, created.Role)
	assert.NotEqual(t, "correct horse battery", created.PasswordHash)

	// 2. The same email again, regardless of casing, conflicts
	_, err = service.Signup(ctx, auth.SignupInput{
		Email:    "ALICE@example.com",
		Password: "another",
		Name:     "Impostor",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// 3. An unknown explicit role is rejected
	_, err = service.Signup(ctx, auth.SignupInput{
		Email:    "bob@example.com",
		Password: "pw",
		Name:     "Bob",
		Role:     "superuser",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.Len(t, users.users, 1)
}

/*
TestService_Login verifies credential checking, portal role matching, and
the forced password setup gate.
*/
func TestService_Login(t *testing.T) {
	service, users, _ := newTestService()
	ctx := context.Background()

	student, err := service.Signup(ctx, auth.SignupInput{
		Email:    "carol@example.com",
		Password: "s3cret-passphrase",
		Name:     "Carol",
	})
	require.NoError(t, err)

	// 1. Correct credentials issue a session
	result, err := service.Login(ctx, auth.LoginInput{
		Email:    "Carol@Example.com",
		Password: "s3cret-passphrase",
	})
	require.NoError(t, err)
	assert.Equal(t, "session-token", result.Token)
	assert.Equal(t, student.ID, result.User.ID)

	// 2. A wrong password fails with the same generic message as a missing
	//    account, so the two cases cannot be told apart
	_, wrongPassword := service.Login(ctx, auth.LoginInput{
		Email:    "carol@example.com",
		Password: "nope",
	})
	_, noAccount := service.Login(ctx, auth.LoginInput{
		Email:    "ghost@example.com",
		Password: "nope",
	})
	require.Error(t, wrongPassword)
	require.Error(t, noAccount)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(wrongPassword).Code)
	assert.Equal(t, apperr.As(noAccount).Message, apperr.As(wrongPassword).Message)

	// 3. Logging in through the wrong portal fails
	_, err = service.Login(ctx, auth.LoginInput{
		Email:    "carol@example.com",
		Password: "s3cret-passphrase",
		Role:     "admin",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 4. The matching portal, case-insensitively, succeeds
	_, err = service.Login(ctx, auth.LoginInput{
		Email:    "carol@example.com",
		Password: "s3cret-passphrase",
		Role:     "Student",
	})
	assert.NoError(t, err)

	// 5. An account still awaiting password setup is blocked
	users.users[student.ID].MustChangePassword = true
	_, err = service.Login(ctx, auth.LoginInput{
		Email:    "carol@example.com",
		Password: "s3cret-passphrase",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestService_SetupPassword verifies the single-use token redemption flow.
*/
func TestService_SetupPassword(t *testing.T) {
	service, users, tokens := newTestService()
	ctx := context.Background()

	user, err := service.Signup(ctx, auth.SignupInput{
		Email:    "dave@example.com",
		Password: "placeholder",
		Name:     "Dave",
	})
	require.NoError(t, err)
	users.users[user.ID].MustChangePassword = true
	require.NoError(t, tokens.Set(ctx, "one-shot", user.ID, time.Hour))

	// 1. Redeeming the token sets the password and clears the flag
	require.NoError(t, service.SetupPassword(ctx, "one-shot", "real-password"))
	assert.False(t, users.users[user.ID].MustChangePassword)

	_, err = service.Login(ctx, auth.LoginInput{
		Email:    "dave@example.com",
		Password: "real-password",
	})
	assert.NoError(t, err)

	// 2. The token is gone after use
	err = service.SetupPassword(ctx, "one-shot", "again")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_ChangePassword verifies the current password must be supplied.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	user, err := service.Signup(ctx, auth.SignupInput{
		Email:    "erin@example.com",
		Password: "old-password",
		Name:     "Erin",
	})
	require.NoError(t, err)

	// 1. A wrong current password is rejected
	err = service.ChangePassword(ctx, user.ID, "wrong", "new-password")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 2. The right one swaps the credential
	require.NoError(t, service.ChangePassword(ctx, user.ID, "old-password", "new-password"))

	_, err = service.Login(ctx, auth.LoginInput{Email: "erin@example.com", Password: "old-password"})
	assert.Error(t, err)
	_, err = service.Login(ctx, auth.LoginInput{Email: "erin@example.com", Password: "new-password"})
	assert.NoError(t, err)
}

/*
TestService_LoadIdentity verifies the identity snapshot comes from storage.
*/
func TestService_LoadIdentity(t *testing.T) {
	service, users, _ := newTestService()
	ctx := context.Background()

	user, err := service.Signup(ctx, auth.SignupInput{
		Email:    "frank@example.com",
		Password: "pw",
		Name:     "Frank",
	})
	require.NoError(t, err)

	identity, err := service.LoadIdentity(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, sec.RoleStudent, identity.Role)

	// A role change in storage is reflected on the next load, independent of
	// whatever an old token claims.
	users.users[user.ID].Role = sec.RoleAdmin
	identity, err = service.LoadIdentity(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, identity.Role)

	_, err = service.LoadIdentity(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
