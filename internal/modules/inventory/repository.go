package inventory

import (
	"context"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/expiry"
)

// Repository defines inventory batch data storage.
type Repository interface {
	CreateBatch(ctx context.Context, b *Batch) error
	// ListItems returns an organization's batches joined with product
	// and store, optionally restricted to one store, ordered by expiry
	// date ascending (null expiry last).
	ListItems(ctx context.Context, orgID string, storeID *string) ([]*Item, error)
	// ListFacts returns the minimal batch facts for KPI aggregation,
	// with each store's area joined in.
	ListFacts(ctx context.Context, orgID string) ([]expiry.BatchFact, error)
}
