package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry owned by an organization. (organization_id,
// sku) is the natural key: importing the same SKU again overwrites the
// row instead of duplicating it.
type Product struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Category       *string   `json:"category,omitempty"`
	Brand          *string   `json:"brand,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
