package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type postgresRepo struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) UpsertBatch(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO products (id, organization_id, sku, name, category, brand, is_active)
		VALUES `)

	args := make([]interface{}, 0, len(products)*7)
	for i, p := range products {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args, p.ID, p.OrganizationID, p.SKU, p.Name, p.Category, p.Brand, p.IsActive)
	}

	sb.WriteString(`
		ON CONFLICT (organization_id, sku) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			brand = EXCLUDED.brand,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()`)

	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var category, brand sql.NullString
	err := scan(&p.ID, &p.OrganizationID, &p.SKU, &p.Name, &category, &brand,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if category.Valid {
		p.Category = &category.String
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	return p, nil
}

func (r *postgresRepo) ListByOrganization(ctx context.Context, orgID string) ([]*Product, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organization_id, sku, name, category, brand, is_active, created_at, updated_at
		FROM products WHERE organization_id = $1
		ORDER BY name ASC`, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) GetBySKU(ctx context.Context, orgID, sku string) (*Product, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, sku, name, category, brand, is_active, created_at, updated_at
		FROM products WHERE organization_id = $1 AND sku = $2`, oid, sku)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) CountByOrganization(ctx context.Context, orgID string) (int, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE organization_id = $1`, oid).Scan(&count)
	return count, err
}
