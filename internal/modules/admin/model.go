package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
)

// AccountRow is one line of the user-management table: an identity
// joined with its profile, store, and area.
type AccountRow struct {
	ID        uuid.UUID    `json:"id"`
	Email     string       `json:"email"`
	Role      profile.Role `json:"role,omitempty"`
	StoreID   *uuid.UUID   `json:"store_id,omitempty"`
	StoreName *string      `json:"store_name,omitempty"`
	StoreCode *string      `json:"store_code,omitempty"`
	AreaName  *string      `json:"area_name,omitempty"`
	Disabled  bool         `json:"disabled"`
	CreatedAt time.Time    `json:"created_at"`
}

// CreateUserRequest holds data for creating an identity plus profile.
type CreateUserRequest struct {
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     profile.Role `json:"role"`
	StoreID  *string      `json:"store_id"`
	AreaID   *string      `json:"area_id"`
}

// ActionRequest is the dispatch envelope of POST /api/admin/users.
type ActionRequest struct {
	Action      string        `json:"action"`
	UserID      string        `json:"user_id"`
	Disabled    *bool         `json:"disabled,omitempty"`
	Role        *profile.Role `json:"role,omitempty"`
	StoreID     *string       `json:"store_id,omitempty"`
	NewPassword *string       `json:"new_password,omitempty"`
}

// PatchProfileRequest updates role/store on a profile, inserting the
// row when it does not exist yet.
type PatchProfileRequest struct {
	ID      string       `json:"id"`
	Role    profile.Role `json:"role"`
	StoreID *string      `json:"store_id"`
}
