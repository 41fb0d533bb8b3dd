package user

import "context"

// Service defines the identity directory: the administrative
// operations the admin panel and the login flow need.
type Service interface {
	CreateIdentity(ctx context.Context, email, password string) (*User, error)
	GetIdentity(ctx context.Context, id string) (*User, error)
	GetIdentityByEmail(ctx context.Context, email string) (*User, error)
	ListIdentities(ctx context.Context) ([]*User, error)
	SetIdentityPassword(ctx context.Context, id, newPassword string) error
	SetIdentityDisabled(ctx context.Context, id string, disabled bool) error
	DeleteIdentity(ctx context.Context, id string) error
}
