package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
)

// memoryRepository resolves everything from fixed maps so scoping and
// name lookups can be asserted without a database.
type memoryRepository struct {
	infos    []*Info
	areas    []*Area
	orgName  string
	failArea bool
}

func (m *memoryRepository) ListForScope(ctx context.Context, orgID string, areaID *string) ([]*Info, error) {
	if areaID == nil {
		return m.infos, nil
	}
	var out []*Info
	for _, info := range m.infos {
		if info.AreaID != nil && info.AreaID.String() == *areaID {
			out = append(out, info)
		}
	}
	return out, nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id string) (*Store, error) {
	return nil, errors.New("store not found")
}

func (m *memoryRepository) ListAreas(ctx context.Context, orgID string) ([]*Area, error) {
	return m.areas, nil
}

func (m *memoryRepository) GetStoreName(ctx context.Context, id string) (string, error) {
	for _, info := range m.infos {
		if info.ID.String() == id {
			return info.Name, nil
		}
	}
	return "", errors.New("store not found")
}

func (m *memoryRepository) GetAreaName(ctx context.Context, id string) (string, error) {
	if m.failArea {
		return "", errors.New("areas table unavailable")
	}
	for _, a := range m.areas {
		if a.ID.String() == id {
			return a.Name, nil
		}
	}
	return "", errors.New("area not found")
}

func (m *memoryRepository) GetOrganizationName(ctx context.Context, id string) (string, error) {
	return m.orgName, nil
}

func TestListStores_ScopedByRole(t *testing.T) {
	orgID := uuid.New()
	areaID := uuid.New()
	inAreaID := uuid.New()
	outsideID := uuid.New()

	repo := &memoryRepository{infos: []*Info{
		{ID: inAreaID, Name: "Milano Centro", AreaID: &areaID},
		{ID: outsideID, Name: "Torino Sud"},
	}}
	svc := NewService(repo)

	hq := &profile.Profile{ID: uuid.New(), OrganizationID: orgID, Role: profile.RoleHQ}
	stores, err := svc.ListStores(context.Background(), hq)
	if err != nil {
		t.Fatalf("ListStores(hq): %v", err)
	}
	if len(stores) != 2 {
		t.Errorf("hq sees %d stores, want 2", len(stores))
	}

	am := &profile.Profile{ID: uuid.New(), OrganizationID: orgID, Role: profile.RoleAreaManager, AreaID: &areaID}
	stores, err = svc.ListStores(context.Background(), am)
	if err != nil {
		t.Fatalf("ListStores(area manager): %v", err)
	}
	if len(stores) != 1 || stores[0].ID != inAreaID {
		t.Errorf("area manager sees %v, want only the in-area store", stores)
	}

	staff := &profile.Profile{ID: uuid.New(), OrganizationID: orgID, Role: profile.RoleStaff, StoreID: &outsideID}
	stores, err = svc.ListStores(context.Background(), staff)
	if err != nil {
		t.Fatalf("ListStores(staff): %v", err)
	}
	if len(stores) != 1 || stores[0].ID != outsideID {
		t.Errorf("staff sees %v, want only their own store", stores)
	}
}

func TestLookupNames_ResolvesAllThree(t *testing.T) {
	storeID := uuid.New()
	areaID := uuid.New()
	repo := &memoryRepository{
		orgName: "PetMark",
		infos:   []*Info{{ID: storeID, Name: "Milano Centro"}},
		areas:   []*Area{{ID: areaID, Name: "Nord"}},
	}
	svc := NewService(repo)

	sid := storeID.String()
	aid := areaID.String()
	names, err := svc.LookupNames(context.Background(), uuid.New().String(), &sid, &aid)
	if err != nil {
		t.Fatalf("LookupNames: %v", err)
	}
	if names.Organization != "PetMark" || names.Store != "Milano Centro" || names.Area != "Nord" {
		t.Errorf("names = %+v", names)
	}
}

func TestLookupNames_FailureLeavesOthersIntact(t *testing.T) {
	storeID := uuid.New()
	repo := &memoryRepository{
		orgName:  "PetMark",
		infos:    []*Info{{ID: storeID, Name: "Milano Centro"}},
		failArea: true,
	}
	svc := NewService(repo)

	sid := storeID.String()
	aid := uuid.New().String()
	names, err := svc.LookupNames(context.Background(), uuid.New().String(), &sid, &aid)
	if err == nil {
		t.Fatal("expected the area lookup failure to be reported")
	}
	if names.Organization != "PetMark" {
		t.Errorf("organization name lost: %q", names.Organization)
	}
	if names.Store != "Milano Centro" {
		t.Errorf("store name lost: %q", names.Store)
	}
	if names.Area != "" {
		t.Errorf("area name = %q, want empty", names.Area)
	}
}

func TestLookupNames_OptionalIDsSkipped(t *testing.T) {
	repo := &memoryRepository{orgName: "PetMark"}
	svc := NewService(repo)

	names, err := svc.LookupNames(context.Background(), uuid.New().String(), nil, nil)
	if err != nil {
		t.Fatalf("LookupNames: %v", err)
	}
	if names.Organization != "PetMark" || names.Store != "" || names.Area != "" {
		t.Errorf("names = %+v", names)
	}
}
