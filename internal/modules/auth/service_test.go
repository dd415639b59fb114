package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendahq/backoffice/internal/modules/user"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*user.User{}, byID: map[string]*user.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return errors.New("duplicate key value violates unique constraint")
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID.String()] = u
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memUserRepo) Confirm(ctx context.Context, id string) error {
	m.byID[id].Confirmed = true
	return nil
}

func signUp(t *testing.T, svc Service, email, password string) *user.User {
	t.Helper()
	u, err := svc.SignUp(context.Background(), email, password, "Test User")
	require.NoError(t, err)
	return u
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))
	u := signUp(t, svc, "owner@example.com", "correct horse")

	assert.Equal(t, "owner@example.com", u.Email)
	// The stored hash must verify but never equal the raw password.
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))

	session, err := svc.SignIn(context.Background(), "owner@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, u.ID, session.User.ID)
}

func TestSignInNormalizesEmail(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))
	signUp(t, svc, "Owner@Example.com", "correct horse")

	session, err := svc.SignIn(context.Background(), "  OWNER@example.COM ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", session.User.Email)
}

func TestSignInFailures(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))
	signUp(t, svc, "owner@example.com", "correct horse")

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.SignIn(context.Background(), "nobody@example.com", "whatever")
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ErrNotAuthorized, pe.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.SignIn(context.Background(), "owner@example.com", "wrong horse")
		var pe *ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ErrNotAuthorized, pe.Name)
	})
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))

	_, err := svc.SignUp(context.Background(), "owner@example.com", "short", "Test User")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrInvalidPassword, pe.Name)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))
	signUp(t, svc, "owner@example.com", "correct horse")

	_, err := svc.SignUp(context.Background(), "owner@example.com", "another pass", "Other User")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrUsernameExists, pe.Name)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))
	u := signUp(t, svc, "owner@example.com", "correct horse")
	session, err := svc.SignIn(context.Background(), "owner@example.com", "correct horse")
	require.NoError(t, err)

	got, err := svc.CurrentUser(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestCurrentUserRejectsGarbageToken(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))

	_, err := svc.CurrentUser(context.Background(), "not.a.token")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrNotAuthorized, pe.Name)
}

func TestSignOutRevokesSession(t *testing.T) {
	svc := NewService(newMemUserRepo(), []byte("test-secret"))
	signUp(t, svc, "owner@example.com", "correct horse")
	session, err := svc.SignIn(context.Background(), "owner@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), session.Token))

	_, err = svc.CurrentUser(context.Background(), session.Token)
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrNotAuthorized, pe.Name)

	// Signing out an already-invalid token is a no-op.
	assert.NoError(t, svc.SignOut(context.Background(), "not.a.token"))
}

func TestMessageForProviderExceptions(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not authorized", &ProviderError{Name: ErrNotAuthorized}, "Incorrect email or password."},
		{"not confirmed", &ProviderError{Name: ErrUserNotConfirmed}, "Please confirm your account before signing in."},
		{"username exists", &ProviderError{Name: ErrUsernameExists}, "An account with this email already exists."},
		{"invalid password", &ProviderError{Name: ErrInvalidPassword}, "Password does not meet the minimum requirements."},
		{"limit exceeded", &ProviderError{Name: ErrLimitExceeded}, "Too many attempts. Please wait a moment and try again."},
		{"unknown exception", &ProviderError{Name: "InternalErrorException"}, "Something went wrong. Please try again."},
		{"plain error", errors.New("boom"), "Something went wrong. Please try again."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MessageFor(tc.err))
		})
	}
}
