package profile

import "github.com/google/uuid"

// Scope is the set of stores a profile is allowed to see. Exactly one
// of the three shapes applies: everything in the organization, every
// store in one area, or an explicit store list (possibly empty).
type Scope struct {
	All      bool
	AreaID   *uuid.UUID
	StoreIDs []uuid.UUID
}

// ResolveScope maps a profile to its visible store scope.
// Unrecognized and legacy roles fail closed: their own store when one
// is assigned, otherwise nothing at all.
func ResolveScope(p *Profile) Scope {
	switch p.Role {
	case RoleHQ:
		return Scope{All: true}
	case RoleAreaManager:
		if p.AreaID != nil {
			return Scope{AreaID: p.AreaID}
		}
		return ownStoreOnly(p)
	case RoleStoreManager, RoleStaff:
		return ownStoreOnly(p)
	default:
		return ownStoreOnly(p)
	}
}

// CanSeeStore reports whether a store falls inside the scope. Area
// scopes cannot be answered from the scope alone; callers holding an
// area scope filter at the query level instead.
func (s Scope) CanSeeStore(storeID uuid.UUID) bool {
	if s.All {
		return true
	}
	for _, id := range s.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

func ownStoreOnly(p *Profile) Scope {
	if p.StoreID != nil {
		return Scope{StoreIDs: []uuid.UUID{*p.StoreID}}
	}
	return Scope{StoreIDs: []uuid.UUID{}}
}
