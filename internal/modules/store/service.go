package store

import (
	"context"
	"sync"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
)

// Service defines store read operations, always scoped by the
// caller's profile.
type Service interface {
	// ListStores returns the stores visible to the caller: the whole
	// organization for hq, one area for an area manager, the caller's
	// own store otherwise.
	ListStores(ctx context.Context, caller *profile.Profile) ([]*Info, error)
	ListAreas(ctx context.Context, orgID string) ([]*Area, error)
	// LookupNames resolves organization, store, and area display names
	// in parallel. Lookups are independent: a failure in one leaves
	// the others' results intact, and the first error is reported.
	LookupNames(ctx context.Context, orgID string, storeID, areaID *string) (*Names, error)
}

type service struct {
	repo Repository
}

// NewService creates a new store service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListStores(ctx context.Context, caller *profile.Profile) ([]*Info, error) {
	orgID := caller.OrganizationID.String()
	scope := profile.ResolveScope(caller)

	switch {
	case scope.All:
		return s.repo.ListForScope(ctx, orgID, nil)
	case scope.AreaID != nil:
		areaID := scope.AreaID.String()
		return s.repo.ListForScope(ctx, orgID, &areaID)
	default:
		all, err := s.repo.ListForScope(ctx, orgID, nil)
		if err != nil {
			return nil, err
		}
		var visible []*Info
		for _, info := range all {
			if scope.CanSeeStore(info.ID) {
				visible = append(visible, info)
			}
		}
		return visible, nil
	}
}

func (s *service) ListAreas(ctx context.Context, orgID string) ([]*Area, error) {
	return s.repo.ListAreas(ctx, orgID)
}

func (s *service) LookupNames(ctx context.Context, orgID string, storeID, areaID *string) (*Names, error) {
	names := &Names{}
	errs := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		names.Organization, errs[0] = s.repo.GetOrganizationName(ctx, orgID)
	}()
	if storeID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names.Store, errs[1] = s.repo.GetStoreName(ctx, *storeID)
		}()
	}
	if areaID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names.Area, errs[2] = s.repo.GetAreaName(ctx, *areaID)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return names, err
		}
	}
	return names, nil
}
