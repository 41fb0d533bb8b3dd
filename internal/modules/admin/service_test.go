package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/store"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/user"
)

type memoryIdentities struct {
	users map[uuid.UUID]*user.User
}

func newMemoryIdentities() *memoryIdentities {
	return &memoryIdentities{users: make(map[uuid.UUID]*user.User)}
}

func (m *memoryIdentities) CreateIdentity(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" {
		return nil, user.ErrEmailRequired
	}
	u := &user.User{ID: uuid.New(), Email: email, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryIdentities) GetIdentity(ctx context.Context, id string) (*user.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, errors.New("identity not found")
	}
	return u, nil
}

func (m *memoryIdentities) GetIdentityByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("identity not found")
}

func (m *memoryIdentities) ListIdentities(ctx context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memoryIdentities) SetIdentityPassword(ctx context.Context, id, newPassword string) error {
	_, err := m.GetIdentity(ctx, id)
	return err
}

func (m *memoryIdentities) SetIdentityDisabled(ctx context.Context, id string, disabled bool) error {
	u, err := m.GetIdentity(ctx, id)
	if err != nil {
		return err
	}
	u.Disabled = disabled
	return nil
}

func (m *memoryIdentities) DeleteIdentity(ctx context.Context, id string) error {
	u, err := m.GetIdentity(ctx, id)
	if err != nil {
		return err
	}
	delete(m.users, u.ID)
	return nil
}

type memoryProfiles struct {
	profiles   map[uuid.UUID]*profile.Profile
	failCreate bool
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func (m *memoryProfiles) Create(ctx context.Context, p *profile.Profile) error {
	if m.failCreate {
		return errors.New("profiles table rejected the insert")
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *memoryProfiles) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := m.profiles[uid]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return p, nil
}

func (m *memoryProfiles) ListByOrganization(ctx context.Context, orgID string) ([]*profile.Profile, error) {
	var out []*profile.Profile
	for _, p := range m.profiles {
		if p.OrganizationID.String() == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProfiles) UpdateRoleStore(ctx context.Context, id string, role profile.Role, storeID *string) error {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Role = role
	p.StoreID = nil
	if storeID != nil {
		sid, err := uuid.Parse(*storeID)
		if err != nil {
			return err
		}
		p.StoreID = &sid
	}
	return nil
}

func (m *memoryProfiles) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	delete(m.profiles, uid)
	return nil
}

type memoryStores struct {
	infos []*store.Info
	areas []*store.Area
}

func (m *memoryStores) ListForScope(ctx context.Context, orgID string, areaID *string) ([]*store.Info, error) {
	return m.infos, nil
}
func (m *memoryStores) GetByID(ctx context.Context, id string) (*store.Store, error) {
	return nil, errors.New("not implemented")
}
func (m *memoryStores) ListAreas(ctx context.Context, orgID string) ([]*store.Area, error) {
	return m.areas, nil
}
func (m *memoryStores) GetStoreName(ctx context.Context, id string) (string, error) { return "", nil }
func (m *memoryStores) GetAreaName(ctx context.Context, id string) (string, error)  { return "", nil }
func (m *memoryStores) GetOrganizationName(ctx context.Context, id string) (string, error) {
	return "", nil
}

func hqCaller(orgID uuid.UUID) *profile.Profile {
	return &profile.Profile{ID: uuid.New(), OrganizationID: orgID, Role: profile.RoleHQ}
}

func TestCreateAccount_CreatesIdentityAndProfile(t *testing.T) {
	orgID := uuid.New()
	identities := newMemoryIdentities()
	profiles := newMemoryProfiles()
	svc := NewService(identities, profiles, &memoryStores{}, zap.NewNop())

	storeID := uuid.New().String()
	row, err := svc.CreateAccount(context.Background(), hqCaller(orgID), CreateUserRequest{
		Email:    "staff@petmark.example",
		Password: "secret",
		Role:     profile.RoleStaff,
		StoreID:  &storeID,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	p, err := profiles.GetByID(context.Background(), row.ID.String())
	if err != nil {
		t.Fatalf("profile missing after create: %v", err)
	}
	if p.OrganizationID != orgID {
		t.Errorf("profile org = %v, want caller's org %v", p.OrganizationID, orgID)
	}
	if p.Role != profile.RoleStaff {
		t.Errorf("profile role = %q, want staff", p.Role)
	}
}

func TestCreateAccount_RoleRestrictions(t *testing.T) {
	orgID := uuid.New()
	svc := NewService(newMemoryIdentities(), newMemoryProfiles(), &memoryStores{}, zap.NewNop())

	storeID := uuid.New()
	storeManager := &profile.Profile{ID: uuid.New(), OrganizationID: orgID, Role: profile.RoleStoreManager, StoreID: &storeID}
	sid := storeID.String()

	_, err := svc.CreateAccount(context.Background(), storeManager, CreateUserRequest{
		Email: "am@petmark.example", Password: "x", Role: profile.RoleAreaManager, StoreID: &sid,
	})
	if !errors.Is(err, ErrRoleNotAssignable) {
		t.Errorf("store manager creating an area manager: err = %v, want ErrRoleNotAssignable", err)
	}
}

func TestCreateAccount_StoreRequiredForStoreRoles(t *testing.T) {
	svc := NewService(newMemoryIdentities(), newMemoryProfiles(), &memoryStores{}, zap.NewNop())

	_, err := svc.CreateAccount(context.Background(), hqCaller(uuid.New()), CreateUserRequest{
		Email: "s@petmark.example", Password: "x", Role: profile.RoleStaff,
	})
	if !errors.Is(err, ErrStoreRequired) {
		t.Errorf("err = %v, want ErrStoreRequired", err)
	}
}

func TestCreateAccount_ProfileFailureIsReported(t *testing.T) {
	identities := newMemoryIdentities()
	profiles := newMemoryProfiles()
	profiles.failCreate = true
	svc := NewService(identities, profiles, &memoryStores{}, zap.NewNop())

	storeID := uuid.New().String()
	_, err := svc.CreateAccount(context.Background(), hqCaller(uuid.New()), CreateUserRequest{
		Email: "s@petmark.example", Password: "x", Role: profile.RoleStaff, StoreID: &storeID,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	// The identity stays: the two writes are deliberately not atomic.
	if len(identities.users) != 1 {
		t.Errorf("identities = %d, want the orphaned identity kept", len(identities.users))
	}
}

func TestUpdateAccountProfile_InsertsWhenMissing(t *testing.T) {
	orgID := uuid.New()
	profiles := newMemoryProfiles()
	svc := NewService(newMemoryIdentities(), profiles, &memoryStores{}, zap.NewNop())

	userID := uuid.New()
	storeID := uuid.New().String()
	err := svc.UpdateAccountProfile(context.Background(), hqCaller(orgID), userID.String(), profile.RoleStaff, &storeID)
	if err != nil {
		t.Fatalf("UpdateAccountProfile: %v", err)
	}

	p, err := profiles.GetByID(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("profile not inserted: %v", err)
	}
	if p.OrganizationID != orgID {
		t.Errorf("inserted profile org = %v, want %v", p.OrganizationID, orgID)
	}
}

func TestUpdateAccountProfile_UpdatesWhenPresent(t *testing.T) {
	orgID := uuid.New()
	profiles := newMemoryProfiles()
	svc := NewService(newMemoryIdentities(), profiles, &memoryStores{}, zap.NewNop())

	userID := uuid.New()
	profiles.profiles[userID] = &profile.Profile{ID: userID, OrganizationID: orgID, Role: profile.RoleStaff}

	err := svc.UpdateAccountProfile(context.Background(), hqCaller(orgID), userID.String(), profile.RoleStoreManager, nil)
	if err != nil {
		t.Fatalf("UpdateAccountProfile: %v", err)
	}
	if got := profiles.profiles[userID].Role; got != profile.RoleStoreManager {
		t.Errorf("role = %q, want store_manager", got)
	}
}

func TestListAccounts_JoinsStoreAndArea(t *testing.T) {
	orgID := uuid.New()
	identities := newMemoryIdentities()
	profiles := newMemoryProfiles()

	u, _ := identities.CreateIdentity(context.Background(), "m@petmark.example", "x")
	storeID := uuid.New()
	areaID := uuid.New()
	profiles.profiles[u.ID] = &profile.Profile{
		ID: u.ID, OrganizationID: orgID, Role: profile.RoleStoreManager,
		StoreID: &storeID, AreaID: &areaID,
	}

	code := "MI01"
	stores := &memoryStores{
		infos: []*store.Info{{ID: storeID, Name: "Milano Centro", Code: &code}},
		areas: []*store.Area{{ID: areaID, OrganizationID: orgID, Name: "Nord"}},
	}
	svc := NewService(identities, profiles, stores, zap.NewNop())

	rows, err := svc.ListAccounts(context.Background(), orgID.String())
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.StoreName == nil || *row.StoreName != "Milano Centro" {
		t.Errorf("store name = %v, want Milano Centro", row.StoreName)
	}
	if row.StoreCode == nil || *row.StoreCode != "MI01" {
		t.Errorf("store code = %v, want MI01", row.StoreCode)
	}
	if row.AreaName == nil || *row.AreaName != "Nord" {
		t.Errorf("area name = %v, want Nord", row.AreaName)
	}
}

func TestDeleteAccount_RemovesProfileAndIdentity(t *testing.T) {
	orgID := uuid.New()
	identities := newMemoryIdentities()
	profiles := newMemoryProfiles()
	svc := NewService(identities, profiles, &memoryStores{}, zap.NewNop())

	u, _ := identities.CreateIdentity(context.Background(), "gone@petmark.example", "x")
	profiles.profiles[u.ID] = &profile.Profile{ID: u.ID, OrganizationID: orgID, Role: profile.RoleStaff}

	if err := svc.DeleteAccount(context.Background(), hqCaller(orgID), u.ID.String()); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if len(identities.users) != 0 || len(profiles.profiles) != 0 {
		t.Error("identity or profile survived deletion")
	}
}

func TestAdminActions_RejectCrossOrganizationTarget(t *testing.T) {
	identities := newMemoryIdentities()
	profiles := newMemoryProfiles()
	svc := NewService(identities, profiles, &memoryStores{}, zap.NewNop())

	// An hq account living in a different organization.
	target, _ := identities.CreateIdentity(context.Background(), "hq@other.example", "x")
	profiles.profiles[target.ID] = &profile.Profile{
		ID: target.ID, OrganizationID: uuid.New(), Role: profile.RoleHQ,
	}
	caller := hqCaller(uuid.New())
	id := target.ID.String()

	if err := svc.SetAccountDisabled(context.Background(), caller, id, true); !errors.Is(err, ErrTargetForbidden) {
		t.Errorf("SetAccountDisabled: err = %v, want ErrTargetForbidden", err)
	}
	if err := svc.ResetPassword(context.Background(), caller, id, "newpass"); !errors.Is(err, ErrTargetForbidden) {
		t.Errorf("ResetPassword: err = %v, want ErrTargetForbidden", err)
	}
	if err := svc.DeleteAccount(context.Background(), caller, id); !errors.Is(err, ErrTargetForbidden) {
		t.Errorf("DeleteAccount: err = %v, want ErrTargetForbidden", err)
	}
	if err := svc.UpdateAccountProfile(context.Background(), caller, id, profile.RoleStaff, nil); !errors.Is(err, ErrTargetForbidden) {
		t.Errorf("UpdateAccountProfile: err = %v, want ErrTargetForbidden", err)
	}

	if target.Disabled {
		t.Error("cross-tenant disable went through")
	}
	if _, ok := identities.users[target.ID]; !ok {
		t.Error("cross-tenant delete went through")
	}
	if got := profiles.profiles[target.ID].Role; got != profile.RoleHQ {
		t.Errorf("cross-tenant role change went through, role = %q", got)
	}
}

func TestAdminActions_RequireSeniorityOverTarget(t *testing.T) {
	orgID := uuid.New()
	identities := newMemoryIdentities()
	profiles := newMemoryProfiles()
	svc := NewService(identities, profiles, &memoryStores{}, zap.NewNop())

	target, _ := identities.CreateIdentity(context.Background(), "am@petmark.example", "x")
	profiles.profiles[target.ID] = &profile.Profile{
		ID: target.ID, OrganizationID: orgID, Role: profile.RoleAreaManager,
	}

	storeID := uuid.New()
	storeManager := &profile.Profile{ID: uuid.New(), OrganizationID: orgID, Role: profile.RoleStoreManager, StoreID: &storeID}

	if err := svc.SetAccountDisabled(context.Background(), storeManager, target.ID.String(), true); !errors.Is(err, ErrTargetForbidden) {
		t.Errorf("store manager disabling an area manager: err = %v, want ErrTargetForbidden", err)
	}
	if err := svc.DeleteAccount(context.Background(), storeManager, target.ID.String()); !errors.Is(err, ErrTargetForbidden) {
		t.Errorf("store manager deleting an area manager: err = %v, want ErrTargetForbidden", err)
	}

	// HQ manages everyone in its organization, including other hq.
	hq, _ := identities.CreateIdentity(context.Background(), "hq2@petmark.example", "x")
	profiles.profiles[hq.ID] = &profile.Profile{ID: hq.ID, OrganizationID: orgID, Role: profile.RoleHQ}
	if err := svc.SetAccountDisabled(context.Background(), hqCaller(orgID), hq.ID.String(), true); err != nil {
		t.Errorf("hq disabling an hq peer: %v", err)
	}
}

func TestAdminActions_UnknownTargetNotFound(t *testing.T) {
	svc := NewService(newMemoryIdentities(), newMemoryProfiles(), &memoryStores{}, zap.NewNop())

	err := svc.SetAccountDisabled(context.Background(), hqCaller(uuid.New()), uuid.New().String(), true)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
