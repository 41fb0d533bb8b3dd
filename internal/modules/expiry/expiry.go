package expiry

import (
	"math"
	"time"
)

// Bucket is a severity tier derived from the days left until expiry.
type Bucket string

const (
	BucketCritical Bucket = "critical" // expired or within 7 days
	BucketNear     Bucket = "near"     // 8-30 days
	BucketMedium   Bucket = "medium"   // 31-90 days
	BucketSafe     Bucket = "safe"     // more than 90 days
	BucketUnknown  Bucket = "unknown"  // no expiry date recorded
)

// DaysUntil returns the whole-day difference between target and now.
// Both dates are normalized to midnight before subtracting and the
// result is rounded to the nearest day, so daylight-saving shifts
// never produce an off-by-one.
func DaysUntil(target, now time.Time) int {
	t := midnight(target)
	n := midnight(now)
	return int(math.Round(t.Sub(n).Hours() / 24))
}

// Classify maps a day count to its severity bucket. A batch expiring
// today (days = 0) and anything already expired are both critical.
func Classify(days int) Bucket {
	switch {
	case days <= 7:
		return BucketCritical
	case days <= 30:
		return BucketNear
	case days <= 90:
		return BucketMedium
	default:
		return BucketSafe
	}
}

// ClassifyDate classifies an optional expiry date relative to now.
// A missing date is BucketUnknown.
func ClassifyDate(expiry *time.Time, now time.Time) Bucket {
	if expiry == nil {
		return BucketUnknown
	}
	return Classify(DaysUntil(*expiry, now))
}

// Expired reports whether a day count is strictly in the past. The
// table views fold this into the critical tier; the KPI cards keep it
// as a separate counter.
func Expired(days int) bool {
	return days < 0
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
