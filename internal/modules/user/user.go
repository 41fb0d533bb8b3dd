package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a login identity. Tenant, store, and role assignment live on
// the profile row keyed by the same id; the identity only answers who
// may sign in and with what password.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
