package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/store"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/user"
)

var (
	ErrRoleNotAssignable = errors.New("caller's role may not assign this role")
	ErrStoreRequired     = errors.New("store is required for store-level roles")
	ErrTargetForbidden   = errors.New("target account is outside the caller's authority")
	ErrUserNotFound      = errors.New("user not found")
)

// Service defines the user-management operations behind the admin
// panel. Every mutating operation takes the caller's profile and acts
// only on accounts inside the caller's organization.
type Service interface {
	ListAccounts(ctx context.Context, orgID string) ([]*AccountRow, error)
	CreateAccount(ctx context.Context, caller *profile.Profile, req CreateUserRequest) (*AccountRow, error)
	SetAccountDisabled(ctx context.Context, caller *profile.Profile, userID string, disabled bool) error
	UpdateAccountProfile(ctx context.Context, caller *profile.Profile, userID string, role profile.Role, storeID *string) error
	ResetPassword(ctx context.Context, caller *profile.Profile, userID, newPassword string) error
	DeleteAccount(ctx context.Context, caller *profile.Profile, userID string) error
}

type service struct {
	identities user.Service
	profiles   profile.Repository
	stores     store.Repository
	logger     *zap.Logger
}

// NewService creates a new admin service.
func NewService(identities user.Service, profiles profile.Repository, stores store.Repository, logger *zap.Logger) Service {
	return &service{identities: identities, profiles: profiles, stores: stores, logger: logger}
}

// ListAccounts joins identities with profiles, stores, and areas in
// memory, mirroring how the panel displays them. Identities without a
// profile in the organization are not listed.
func (s *service) ListAccounts(ctx context.Context, orgID string) ([]*AccountRow, error) {
	identities, err := s.identities.ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing identities: %w", err)
	}
	profiles, err := s.profiles.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	stores, err := s.stores.ListForScope(ctx, orgID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	areas, err := s.stores.ListAreas(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}

	profileByID := make(map[uuid.UUID]*profile.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}
	storeByID := make(map[uuid.UUID]*store.Info, len(stores))
	for _, st := range stores {
		storeByID[st.ID] = st
	}
	areaByID := make(map[uuid.UUID]*store.Area, len(areas))
	for _, a := range areas {
		areaByID[a.ID] = a
	}

	rows := make([]*AccountRow, 0, len(profiles))
	for _, identity := range identities {
		p, ok := profileByID[identity.ID]
		if !ok {
			continue
		}

		row := &AccountRow{
			ID:        identity.ID,
			Email:     identity.Email,
			Role:      p.Role,
			StoreID:   p.StoreID,
			Disabled:  identity.Disabled,
			CreatedAt: identity.CreatedAt,
		}
		if p.StoreID != nil {
			if st, ok := storeByID[*p.StoreID]; ok {
				row.StoreName = &st.Name
				row.StoreCode = st.Code
			}
		}
		if p.AreaID != nil {
			if a, ok := areaByID[*p.AreaID]; ok {
				row.AreaName = &a.Name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CreateAccount creates an identity then its profile row. The two
// writes are not transactional; a profile failure is reported with the
// identity already in place, matching the panel's observed behavior.
func (s *service) CreateAccount(ctx context.Context, caller *profile.Profile, req CreateUserRequest) (*AccountRow, error) {
	if !profile.CanAssign(caller.Role, req.Role) {
		return nil, ErrRoleNotAssignable
	}
	if (req.Role == profile.RoleStoreManager || req.Role == profile.RoleStaff) && req.StoreID == nil {
		return nil, ErrStoreRequired
	}

	identity, err := s.identities.CreateIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	p := &profile.Profile{
		ID:             identity.ID,
		OrganizationID: caller.OrganizationID,
		Role:           req.Role,
	}
	if req.StoreID != nil {
		sid, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return nil, fmt.Errorf("identity created but profile failed: invalid store_id: %w", err)
		}
		p.StoreID = &sid
	}
	if req.AreaID != nil {
		aid, err := uuid.Parse(*req.AreaID)
		if err != nil {
			return nil, fmt.Errorf("identity created but profile failed: invalid area_id: %w", err)
		}
		p.AreaID = &aid
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		s.logger.Error("profile insert failed after identity creation",
			zap.String("user_id", identity.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("identity created but profile failed: %w", err)
	}

	return &AccountRow{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      p.Role,
		StoreID:   p.StoreID,
		CreatedAt: identity.CreatedAt,
	}, nil
}

// authorizeTarget loads the target's profile and rejects targets
// outside the caller's organization or above the caller's authority.
// An identity without a profile belongs to no organization, so it is
// out of reach too.
func (s *service) authorizeTarget(ctx context.Context, caller *profile.Profile, userID string) (*profile.Profile, error) {
	target, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if target.OrganizationID != caller.OrganizationID {
		return nil, ErrTargetForbidden
	}
	if !profile.CanManage(caller.Role, target.Role) {
		return nil, ErrTargetForbidden
	}
	return target, nil
}

func (s *service) SetAccountDisabled(ctx context.Context, caller *profile.Profile, userID string, disabled bool) error {
	if _, err := s.authorizeTarget(ctx, caller, userID); err != nil {
		return err
	}
	return s.identities.SetIdentityDisabled(ctx, userID, disabled)
}

// UpdateAccountProfile changes role and store on an existing profile,
// or inserts the profile when the identity has none yet. The inserted
// profile always joins the caller's organization.
func (s *service) UpdateAccountProfile(ctx context.Context, caller *profile.Profile, userID string, role profile.Role, storeID *string) error {
	if !profile.CanAssign(caller.Role, role) {
		return ErrRoleNotAssignable
	}

	target, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		uid, parseErr := uuid.Parse(userID)
		if parseErr != nil {
			return parseErr
		}
		p := &profile.Profile{
			ID:             uid,
			OrganizationID: caller.OrganizationID,
			Role:           role,
		}
		if storeID != nil {
			sid, err := uuid.Parse(*storeID)
			if err != nil {
				return err
			}
			p.StoreID = &sid
		}
		return s.profiles.Create(ctx, p)
	}

	if target.OrganizationID != caller.OrganizationID {
		return ErrTargetForbidden
	}
	if !profile.CanManage(caller.Role, target.Role) {
		return ErrTargetForbidden
	}
	return s.profiles.UpdateRoleStore(ctx, userID, role, storeID)
}

func (s *service) ResetPassword(ctx context.Context, caller *profile.Profile, userID, newPassword string) error {
	if _, err := s.authorizeTarget(ctx, caller, userID); err != nil {
		return err
	}
	return s.identities.SetIdentityPassword(ctx, userID, newPassword)
}

// DeleteAccount removes the profile first, then the identity; an
// orphaned profile row must never outlive its identity.
func (s *service) DeleteAccount(ctx context.Context, caller *profile.Profile, userID string) error {
	if _, err := s.authorizeTarget(ctx, caller, userID); err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return s.identities.DeleteIdentity(ctx, userID)
}
