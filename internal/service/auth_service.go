package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooday/internal/domain"

	"github.com/google/uuid"
)

type AuthService struct {
	users    UserRepository
	sessions SessionStore
}

func NewAuthService(users UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login resolves the identity by case-insensitive email match only. The
// password argument is accepted and ignored: the original client performed no
// credential verification, and that observed behavior is kept as-is.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	_ = password

	user, err := s.users.GetByEmailFold(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		User:      *user,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Register creates a new identity. The duplicate check matches the email
// exactly, unlike Login's case-insensitive match; the inconsistency is
// deliberate (observed behavior).
func (s *AuthService) Register(ctx context.Context, name, email, phone, address string) (*domain.Session, error) {
	if name == "" || email == "" || address == "" {
		return nil, ErrMissingFields
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: time.Now(),
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		User:      *user,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// Logout discards the session; the cart lives inside it and dies with it.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, session.Token)
}

// UpdateProfile overwrites name, phone and address in the catalog store and
// refreshes the session's cached identity. Without an active identity it is a
// silent no-op.
func (s *AuthService) UpdateProfile(ctx context.Context, session *domain.Session, name, phone, address string) error {
	if !session.LoggedIn() {
		return nil
	}

	updated, err := s.users.UpdateUserProfile(ctx, session.User.ID, name, phone, address)
	if err != nil {
		return err
	}
	session.User = *updated
	return s.sessions.SaveSession(ctx, session)
}
