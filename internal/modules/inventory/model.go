package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Batch is a received lot of a product at one store. Batches are
// immutable once registered; corrections happen by registering a new
// lot.
type Batch struct {
	ID         uuid.UUID  `json:"id"`
	StoreID    uuid.UUID  `json:"store_id"`
	ProductID  uuid.UUID  `json:"product_id"`
	BatchCode  string     `json:"batch_code"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Quantity   int        `json:"quantity"`
	Note       *string    `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Item is a batch row for the expiry table views, joined with its
// product and store. DaysToExpiry and Bucket are recomputed on every
// read; they are never stored.
type Item struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	ProductName  string     `json:"product_name"`
	ProductSKU   *string    `json:"product_sku,omitempty"`
	ProductBrand *string    `json:"product_brand,omitempty"`
	StoreID      uuid.UUID  `json:"store_id"`
	StoreName    string     `json:"store_name"`
	StoreCode    *string    `json:"store_code,omitempty"`
	BatchCode    string     `json:"batch_code"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Quantity     int        `json:"quantity"`
	Note         *string    `json:"note,omitempty"`
	DaysToExpiry *int       `json:"days_to_expiry,omitempty"`
	Bucket       string     `json:"bucket"`
}
