package auth

import (
	"context"

	"github.com/vendahq/backoffice/internal/modules/user"
)

// Session is an authenticated sign-in result.
type Session struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, name string) (*user.User, error)
	CurrentUser(ctx context.Context, token string) (*user.User, error)
	SignOut(ctx context.Context, token string) error
}

// ProviderError is a failure from the identity provider, identified by its
// provider-specific exception name.
type ProviderError struct {
	Name string
}

func (e *ProviderError) Error() string { return e.Name }

// Provider exception names surfaced by the identity boundary.
const (
	ErrNotAuthorized    = "NotAuthorizedException"
	ErrUserNotConfirmed = "UserNotConfirmedException"
	ErrUsernameExists   = "UsernameExistsException"
	ErrInvalidPassword  = "InvalidPasswordException"
	ErrLimitExceeded    = "LimitExceededException"
)

// providerMessages maps exception names to user-facing copy.
var providerMessages = map[string]string{
	ErrNotAuthorized:    "Incorrect email or password.",
	ErrUserNotConfirmed: "Please confirm your account before signing in.",
	ErrUsernameExists:   "An account with this email already exists.",
	ErrInvalidPassword:  "Password does not meet the minimum requirements.",
	ErrLimitExceeded:    "Too many attempts. Please wait a moment and try again.",
}

// MessageFor maps a provider failure onto user-facing copy, falling back to a
// generic message for anything unrecognized.
func MessageFor(err error) string {
	if pe, ok := err.(*ProviderError); ok {
		if msg, found := providerMessages[pe.Name]; found {
			return msg
		}
	}
	return "Something went wrong. Please try again."
}
