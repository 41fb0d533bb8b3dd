package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("role lacks permission for this action")
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(tokenString string) (subject string, err error)
}
