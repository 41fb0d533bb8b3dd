package inventory

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/expiry"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateBatch(ctx context.Context, b *Batch) error {
	query := `
		INSERT INTO inventory_batches (id, store_id, product_id, batch_code, expiry_date, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.StoreID, b.ProductID, b.BatchCode, b.ExpiryDate, b.Quantity, b.Note)
	return err
}

func (r *postgresRepository) ListItems(ctx context.Context, orgID string, storeID *string) ([]*Item, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT b.id, b.product_id, p.name, p.sku, p.brand,
		       s.id, s.name, s.code,
		       b.batch_code, b.expiry_date, b.quantity, b.note
		FROM inventory_batches b
		JOIN stores s ON s.id = b.store_id
		JOIN products p ON p.id = b.product_id
		WHERE s.organization_id = $1
	`
	args := []interface{}{oid}
	if storeID != nil {
		sid, err := uuid.Parse(*storeID)
		if err != nil {
			return nil, err
		}
		query += ` AND b.store_id = $2`
		args = append(args, sid)
	}
	query += ` ORDER BY b.expiry_date ASC NULLS LAST`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		var sku, brand, code, note sql.NullString
		var expiryDate sql.NullTime
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.ProductName, &sku, &brand,
			&item.StoreID, &item.StoreName, &code,
			&item.BatchCode, &expiryDate, &item.Quantity, &note,
		); err != nil {
			return nil, err
		}
		if sku.Valid {
			item.ProductSKU = &sku.String
		}
		if brand.Valid {
			item.ProductBrand = &brand.String
		}
		if code.Valid {
			item.StoreCode = &code.String
		}
		if note.Valid {
			item.Note = &note.String
		}
		if expiryDate.Valid {
			d := expiryDate.Time
			item.ExpiryDate = &d
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) ListFacts(ctx context.Context, orgID string) ([]expiry.BatchFact, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT b.store_id, s.area_id, b.quantity, b.expiry_date
		FROM inventory_batches b
		JOIN stores s ON s.id = b.store_id
		WHERE s.organization_id = $1`, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []expiry.BatchFact
	for rows.Next() {
		var f expiry.BatchFact
		var areaID sql.NullString
		var expiryDate sql.NullTime
		if err := rows.Scan(&f.StoreID, &areaID, &f.Quantity, &expiryDate); err != nil {
			return nil, err
		}
		if areaID.Valid {
			id, err := uuid.Parse(areaID.String)
			if err != nil {
				return nil, err
			}
			f.AreaID = &id
		}
		if expiryDate.Valid {
			d := expiryDate.Time
			f.ExpiryDate = &d
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}
