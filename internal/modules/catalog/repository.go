package catalog

import "context"

// Repository defines product data storage.
type Repository interface {
	// UpsertBatch inserts or updates products keyed on
	// (organization_id, sku). Existing rows get their name, category,
	// brand, and active flag overwritten.
	UpsertBatch(ctx context.Context, products []*Product) error
	ListByOrganization(ctx context.Context, orgID string) ([]*Product, error)
	GetBySKU(ctx context.Context, orgID, sku string) (*Product, error)
	CountByOrganization(ctx context.Context, orgID string) (int, error)
}
