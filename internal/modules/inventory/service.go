package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/expiry"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/store"
)

var (
	ErrNoStore     = errors.New("profile has no store assigned")
	ErrStoreDenied = errors.New("store is outside the caller's scope")
)

// Service defines inventory business logic. Every operation is scoped
// by the caller's profile; nothing here trusts a raw store id from the
// request.
type Service interface {
	Intake(ctx context.Context, caller *profile.Profile, req IntakeRequest) (*Batch, error)
	ListInventory(ctx context.Context, caller *profile.Profile, storeID *string) ([]*Item, error)
	Kpi(ctx context.Context, caller *profile.Profile, areaID, storeID *string) (expiry.Kpi, error)
}

// IntakeRequest holds data for registering a batch.
type IntakeRequest struct {
	StoreID    string  `json:"store_id"`
	ProductID  string  `json:"product_id"`
	BatchCode  string  `json:"batch_code"`
	ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD
	Quantity   int     `json:"quantity"`
	Note       string  `json:"note"`
}

type service struct {
	repo      Repository
	storeRepo store.Repository
	now       func() time.Time
}

// NewService creates a new inventory service.
func NewService(repo Repository, storeRepo store.Repository) Service {
	return &service{repo: repo, storeRepo: storeRepo, now: time.Now}
}

func (s *service) Intake(ctx context.Context, caller *profile.Profile, req IntakeRequest) (*Batch, error) {
	storeID, err := s.resolveIntakeStore(ctx, caller, req.StoreID)
	if err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	if strings.TrimSpace(req.BatchCode) == "" {
		return nil, errors.New("batch_code is required")
	}
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	var expiryDate *time.Time
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		d, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid expiry_date: %w", err)
		}
		expiryDate = &d
	}

	var note *string
	if n := strings.TrimSpace(req.Note); n != "" {
		note = &n
	}

	b := &Batch{
		ID:         uuid.New(),
		StoreID:    storeID,
		ProductID:  productID,
		BatchCode:  strings.TrimSpace(req.BatchCode),
		ExpiryDate: expiryDate,
		Quantity:   req.Quantity,
		Note:       note,
	}
	if err := s.repo.CreateBatch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveIntakeStore decides which store a new batch belongs to.
// Store-level roles always write to their own store regardless of the
// request; hq may pick any store in the organization; an area manager
// may pick stores inside their area.
func (s *service) resolveIntakeStore(ctx context.Context, caller *profile.Profile, requested string) (uuid.UUID, error) {
	scope := profile.ResolveScope(caller)

	if !scope.All && scope.AreaID == nil {
		if caller.StoreID == nil {
			return uuid.Nil, ErrNoStore
		}
		return *caller.StoreID, nil
	}

	if requested == "" {
		if caller.StoreID != nil {
			return *caller.StoreID, nil
		}
		return uuid.Nil, ErrNoStore
	}

	target, err := s.storeRepo.GetByID(ctx, requested)
	if err != nil {
		return uuid.Nil, err
	}
	if target.OrganizationID != caller.OrganizationID {
		return uuid.Nil, ErrStoreDenied
	}
	if scope.AreaID != nil {
		if target.AreaID == nil || *target.AreaID != *scope.AreaID {
			return uuid.Nil, ErrStoreDenied
		}
	}
	return target.ID, nil
}

func (s *service) ListInventory(ctx context.Context, caller *profile.Profile, storeID *string) ([]*Item, error) {
	orgID := caller.OrganizationID.String()
	scope := profile.ResolveScope(caller)

	var restrictTo *string
	switch {
	case scope.All:
		restrictTo = storeID
	case scope.AreaID != nil:
		// Area managers list per store; default to nothing when no
		// store is requested and let the KPI view cover the area level.
		restrictTo = storeID
		if restrictTo != nil {
			target, err := s.storeRepo.GetByID(ctx, *restrictTo)
			if err != nil {
				return nil, err
			}
			if target.AreaID == nil || *target.AreaID != *scope.AreaID {
				return nil, ErrStoreDenied
			}
		} else {
			areaID := scope.AreaID.String()
			return s.listArea(ctx, orgID, areaID)
		}
	default:
		if caller.StoreID == nil {
			return []*Item{}, nil
		}
		own := caller.StoreID.String()
		if storeID != nil && *storeID != own {
			return nil, ErrStoreDenied
		}
		restrictTo = &own
	}

	items, err := s.repo.ListItems(ctx, orgID, restrictTo)
	if err != nil {
		return nil, err
	}
	s.decorate(items)
	return items, nil
}

// listArea lists every batch in the caller's area by filtering the
// organization-wide join on the stores' area.
func (s *service) listArea(ctx context.Context, orgID, areaID string) ([]*Item, error) {
	stores, err := s.storeRepo.ListForScope(ctx, orgID, &areaID)
	if err != nil {
		return nil, err
	}
	inArea := make(map[uuid.UUID]bool, len(stores))
	for _, st := range stores {
		inArea[st.ID] = true
	}

	all, err := s.repo.ListItems(ctx, orgID, nil)
	if err != nil {
		return nil, err
	}
	var items []*Item
	for _, item := range all {
		if inArea[item.StoreID] {
			items = append(items, item)
		}
	}
	s.decorate(items)
	return items, nil
}

// decorate recomputes days-to-expiry and the severity bucket for each
// row relative to the current date.
func (s *service) decorate(items []*Item) {
	now := s.now()
	for _, item := range items {
		if item.ExpiryDate == nil {
			item.Bucket = string(expiry.BucketUnknown)
			continue
		}
		days := expiry.DaysUntil(*item.ExpiryDate, now)
		d := days
		item.DaysToExpiry = &d
		item.Bucket = string(expiry.Classify(days))
	}
}

func (s *service) Kpi(ctx context.Context, caller *profile.Profile, areaID, storeID *string) (expiry.Kpi, error) {
	facts, err := s.repo.ListFacts(ctx, caller.OrganizationID.String())
	if err != nil {
		// Report the failure instead of a zeroed aggregate: an empty
		// KPI would read as "nothing expiring".
		return expiry.Kpi{}, err
	}

	// Caller visibility first, request narrowing second.
	scope := profile.ResolveScope(caller)
	visible := facts
	switch {
	case scope.All:
	case scope.AreaID != nil:
		visible = filterFacts(facts, func(f expiry.BatchFact) bool {
			return f.AreaID != nil && *f.AreaID == *scope.AreaID
		})
	default:
		visible = filterFacts(facts, func(f expiry.BatchFact) bool {
			return scope.CanSeeStore(f.StoreID)
		})
	}

	requested := expiry.Scope{}
	if areaID != nil {
		id, err := uuid.Parse(*areaID)
		if err != nil {
			return expiry.Kpi{}, fmt.Errorf("invalid areaId: %w", err)
		}
		requested.AreaID = &id
	}
	if storeID != nil {
		id, err := uuid.Parse(*storeID)
		if err != nil {
			return expiry.Kpi{}, fmt.Errorf("invalid storeId: %w", err)
		}
		requested.StoreID = &id
	}

	return expiry.Aggregate(visible, requested, s.now()), nil
}

func filterFacts(facts []expiry.BatchFact, keep func(expiry.BatchFact) bool) []expiry.BatchFact {
	var out []expiry.BatchFact
	for _, f := range facts {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
