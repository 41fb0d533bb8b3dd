package profile

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. The legacy values are still
// present in old profile rows and must never widen a caller's scope.
type Role string

const (
	RoleHQ           Role = "hq"
	RoleAreaManager  Role = "area_manager"
	RoleStoreManager Role = "store_manager"
	RoleStaff        Role = "staff"

	// legacy
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile links an identity to an organization, an optional store or
// area, and a role that determines what the user can see.
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	StoreID        *uuid.UUID `json:"store_id,omitempty"`
	AreaID         *uuid.UUID `json:"area_id,omitempty"`
	Role           Role       `json:"role"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AssignableRoles returns the roles a caller with the given role may
// hand out when creating or editing accounts.
func AssignableRoles(caller Role) []Role {
	switch caller {
	case RoleHQ:
		return []Role{RoleStaff, RoleStoreManager, RoleAreaManager}
	case RoleAreaManager:
		return []Role{RoleStaff, RoleStoreManager}
	case RoleStoreManager:
		return []Role{RoleStaff}
	default:
		return []Role{RoleStaff}
	}
}

// CanAssign reports whether caller may assign target to another account.
func CanAssign(caller, target Role) bool {
	for _, r := range AssignableRoles(caller) {
		if r == target {
			return true
		}
	}
	return false
}

// CanManage reports whether caller may act on an existing account
// holding the target role (disable, reset password, delete). HQ
// manages every account; everyone else manages only the roles they can
// assign, so a store manager can never touch an hq or area manager
// account.
func CanManage(caller, target Role) bool {
	if caller == RoleHQ {
		return true
	}
	return CanAssign(caller, target)
}
