package profile

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, organization_id, store_id, area_id, role)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.OrganizationID, p.StoreID, p.AreaID, p.Role)
	return err
}

func scanProfile(scan func(...interface{}) error) (*Profile, error) {
	p := &Profile{}
	var storeID, areaID sql.NullString
	err := scan(&p.ID, &p.OrganizationID, &storeID, &areaID, &p.Role, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if storeID.Valid {
		id, err := uuid.Parse(storeID.String)
		if err != nil {
			return nil, err
		}
		p.StoreID = &id
	}
	if areaID.Valid {
		id, err := uuid.Parse(areaID.String)
		if err != nil {
			return nil, err
		}
		p.AreaID = &id
	}
	return p, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, store_id, area_id, role, created_at
		FROM profiles WHERE id = $1`, uid)
	return scanProfile(row.Scan)
}

func (r *postgresRepository) ListByOrganization(ctx context.Context, orgID string) ([]*Profile, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organization_id, store_id, area_id, role, created_at
		FROM profiles WHERE organization_id = $1`, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *postgresRepository) UpdateRoleStore(ctx context.Context, id string, role Role, storeID *string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	var sid interface{}
	if storeID != nil {
		parsed, err := uuid.Parse(*storeID)
		if err != nil {
			return err
		}
		sid = parsed
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE profiles SET role = $1, store_id = $2 WHERE id = $3`,
		role, sid, uid)
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, uid)
	return err
}
