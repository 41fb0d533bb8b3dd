package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
)

type service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateIdentity(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetIdentity(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) GetIdentityByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

func (s *service) ListIdentities(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) SetIdentityPassword(ctx context.Context, id, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hashedPassword))
}

func (s *service) SetIdentityDisabled(ctx context.Context, id string, disabled bool) error {
	return s.repo.SetDisabled(ctx, id, disabled)
}

func (s *service) DeleteIdentity(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}
