package profile

import "context"

// Repository defines profile data storage.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*Profile, error)
	// UpdateRoleStore changes role and store assignment on an existing
	// profile; the organization is never touched.
	UpdateRoleStore(ctx context.Context, id string, role Role, storeID *string) error
	Delete(ctx context.Context, id string) error
}
