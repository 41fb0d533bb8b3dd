package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrProductInvalid = errors.New("sku and name are required")

// Service defines catalog business logic.
type Service interface {
	ListProducts(ctx context.Context, orgID string) ([]*Product, error)
	GetProduct(ctx context.Context, orgID, sku string) (*Product, error)
	SaveProduct(ctx context.Context, req SaveProductRequest) (*Product, error)
}

// SaveProductRequest holds data for creating or replacing one product.
type SaveProductRequest struct {
	OrganizationID string `json:"organization_id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Brand          string `json:"brand"`
	IsActive       *bool  `json:"is_active"`
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, orgID string) ([]*Product, error) {
	return s.repo.ListByOrganization(ctx, orgID)
}

func (s *service) GetProduct(ctx context.Context, orgID, sku string) (*Product, error) {
	return s.repo.GetBySKU(ctx, orgID, sku)
}

// SaveProduct writes a single product through the same upsert path the
// importer uses, so manual edits and CSV imports cannot diverge.
func (s *service) SaveProduct(ctx context.Context, req SaveProductRequest) (*Product, error) {
	oid, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(req.SKU)
	name := strings.TrimSpace(req.Name)
	if sku == "" || name == "" {
		return nil, ErrProductInvalid
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p := &Product{
		ID:             uuid.New(),
		OrganizationID: oid,
		SKU:            sku,
		Name:           name,
		Category:       optional(strings.TrimSpace(req.Category)),
		Brand:          optional(strings.TrimSpace(req.Brand)),
		IsActive:       active,
	}
	if err := s.repo.UpsertBatch(ctx, []*Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}
