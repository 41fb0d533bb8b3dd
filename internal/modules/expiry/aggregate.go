package expiry

import (
	"time"

	"github.com/google/uuid"
)

// BatchFact is the slice of an inventory batch the aggregation engine
// needs: where it lives and how much of it expires when. AreaID comes
// from the batch's store.
type BatchFact struct {
	StoreID    uuid.UUID
	AreaID     *uuid.UUID
	Quantity   int
	ExpiryDate *time.Time
}

// Scope selects which batches an aggregation covers. Zero value means
// the whole organization; StoreID wins over AreaID when both are set.
type Scope struct {
	AreaID  *uuid.UUID
	StoreID *uuid.UUID
}

// Matches reports whether a batch falls inside the scope.
func (s Scope) Matches(f BatchFact) bool {
	if s.StoreID != nil {
		return f.StoreID == *s.StoreID
	}
	if s.AreaID != nil {
		return f.AreaID != nil && *f.AreaID == *s.AreaID
	}
	return true
}

// Kpi holds the dashboard counters. A batch with a known expiry date
// lands in exactly one of expired / next30 / next90 / safe (safe is
// implicit: total minus the other three minus unknown).
type Kpi struct {
	TotalBatches    int `json:"total_batches"`
	TotalQuantity   int `json:"total_quantity"`
	ExpiredBatches  int `json:"expired_batches"`
	ExpiredQuantity int `json:"expired_quantity"`
	Next30Batches   int `json:"next30_batches"`
	Next30Quantity  int `json:"next30_quantity"`
	Next90Batches   int `json:"next90_batches"`
	Next90Quantity  int `json:"next90_quantity"`
}

// Aggregate reduces a batch set into KPI counters relative to now.
// Batches without an expiry date count toward the totals only.
func Aggregate(facts []BatchFact, scope Scope, now time.Time) Kpi {
	var kpi Kpi
	for _, f := range facts {
		if !scope.Matches(f) {
			continue
		}

		kpi.TotalBatches++
		kpi.TotalQuantity += f.Quantity

		if f.ExpiryDate == nil {
			continue
		}

		days := DaysUntil(*f.ExpiryDate, now)
		switch {
		case days < 0:
			kpi.ExpiredBatches++
			kpi.ExpiredQuantity += f.Quantity
		case days <= 30:
			kpi.Next30Batches++
			kpi.Next30Quantity += f.Quantity
		case days <= 90:
			kpi.Next90Batches++
			kpi.Next90Quantity += f.Quantity
		}
	}
	return kpi
}
