package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/vendahq/backoffice/internal/modules/user"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

type service struct {
	userRepo user.Repository
	jwtKey   []byte

	mu      sync.Mutex
	revoked map[string]time.Time // token id → expiry, pruned on write
}

// NewService creates a new auth service signing sessions with jwtKey.
func NewService(userRepo user.Repository, jwtKey []byte) Service {
	return &service{userRepo: userRepo, jwtKey: jwtKey, revoked: map[string]time.Time{}}
}

func (s *service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ProviderError{Name: ErrNotAuthorized}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, &ProviderError{Name: ErrNotAuthorized}
	}
	if !u.Confirmed {
		return nil, &ProviderError{Name: ErrUserNotConfirmed}
	}

	now := time.Now()
	claims := &jwt.StandardClaims{
		Id:        uuid.NewString(),
		Subject:   u.ID.String(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(sessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}

func (s *service) SignUp(ctx context.Context, email, password, name string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 8 {
		return nil, &ProviderError{Name: ErrInvalidPassword}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, &ProviderError{Name: ErrUsernameExists}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Confirmed:    true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, &ProviderError{Name: ErrUsernameExists}
		}
		return nil, err
	}
	return u, nil
}

func (s *service) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, &ProviderError{Name: ErrNotAuthorized}
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.Id]
	s.mu.Unlock()
	if revoked {
		return nil, &ProviderError{Name: ErrNotAuthorized}
	}

	u, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, &ProviderError{Name: ErrNotAuthorized}
	}
	return u, nil
}

func (s *service) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		// Signing out an invalid session is a no-op.
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[claims.Id] = time.Unix(claims.ExpiresAt, 0)
	return nil
}

func (s *service) parse(token string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
