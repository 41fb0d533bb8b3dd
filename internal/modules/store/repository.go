package store

import "context"

// Repository defines store and area data storage.
type Repository interface {
	// ListForScope returns the organization's stores with their area
	// name, restricted to one area when areaID is non-nil, ordered by
	// store name.
	ListForScope(ctx context.Context, orgID string, areaID *string) ([]*Info, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	ListAreas(ctx context.Context, orgID string) ([]*Area, error)
	GetStoreName(ctx context.Context, id string) (string, error)
	GetAreaName(ctx context.Context, id string) (string, error)
	GetOrganizationName(ctx context.Context, id string) (string, error)
}
