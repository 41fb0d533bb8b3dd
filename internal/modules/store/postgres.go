package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListForScope(ctx context.Context, orgID string, areaID *string) ([]*Info, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT s.id, s.name, s.code, s.area_id, a.name
		FROM stores s
		LEFT JOIN areas a ON a.id = s.area_id
		WHERE s.organization_id = $1
	`
	args := []interface{}{oid}
	if areaID != nil {
		aid, err := uuid.Parse(*areaID)
		if err != nil {
			return nil, err
		}
		query += ` AND s.area_id = $2`
		args = append(args, aid)
	}
	query += ` ORDER BY s.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*Info
	for rows.Next() {
		info := &Info{}
		var code, areaName sql.NullString
		var area sql.NullString
		if err := rows.Scan(&info.ID, &info.Name, &code, &area, &areaName); err != nil {
			return nil, err
		}
		if code.Valid {
			info.Code = &code.String
		}
		if area.Valid {
			id, err := uuid.Parse(area.String)
			if err != nil {
				return nil, err
			}
			info.AreaID = &id
		}
		if areaName.Valid {
			info.AreaName = &areaName.String
		}
		stores = append(stores, info)
	}
	return stores, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Store, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	s := &Store{}
	var code sql.NullString
	var areaID sql.NullString
	err = r.db.QueryRowContext(ctx, `
		SELECT id, organization_id, name, code, area_id, created_at
		FROM stores WHERE id = $1`, sid).
		Scan(&s.ID, &s.OrganizationID, &s.Name, &code, &areaID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if code.Valid {
		s.Code = &code.String
	}
	if areaID.Valid {
		id, err := uuid.Parse(areaID.String)
		if err != nil {
			return nil, err
		}
		s.AreaID = &id
	}
	return s, nil
}

func (r *postgresRepository) ListAreas(ctx context.Context, orgID string) ([]*Area, error) {
	oid, err := uuid.Parse(orgID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organization_id, name
		FROM areas WHERE organization_id = $1
		ORDER BY name ASC`, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []*Area
	for rows.Next() {
		a := &Area{}
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.Name); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (r *postgresRepository) GetStoreName(ctx context.Context, id string) (string, error) {
	return r.lookupName(ctx, `SELECT name FROM stores WHERE id = $1`, id)
}

func (r *postgresRepository) GetAreaName(ctx context.Context, id string) (string, error) {
	return r.lookupName(ctx, `SELECT name FROM areas WHERE id = $1`, id)
}

func (r *postgresRepository) GetOrganizationName(ctx context.Context, id string) (string, error) {
	return r.lookupName(ctx, `SELECT name FROM organizations WHERE id = $1`, id)
}

func (r *postgresRepository) lookupName(ctx context.Context, query, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	var name string
	if err := r.db.QueryRowContext(ctx, query, parsed).Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}
