// internal/analytics/trend.go
package analytics

import (
	"sort"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// TrendLimit is the number of most recent periods the dashboard
// trend chart shows.
const TrendLimit = 6

// SpoilageTrend orders the period buckets chronologically by the
// earliest transaction seen in each period and keeps the most recent
// limit entries. Periods are never re-sorted by label; the value is
// the period's spoiled-unit percentage, 0 when the period sold
// nothing.
func SpoilageTrend(acc *Accumulators, limit int) []domain.SpoilageTrendPoint {
	type bucket struct {
		label string
		accum *PeriodAccum
	}

	buckets := make([]bucket, 0, len(acc.Periods))
	for label, p := range acc.Periods {
		buckets = append(buckets, bucket{label: label, accum: p})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].accum.First.Before(buckets[j].accum.First)
	})

	if limit > 0 && len(buckets) > limit {
		buckets = buckets[len(buckets)-limit:]
	}

	points := make([]domain.SpoilageTrendPoint, 0, len(buckets))
	for _, b := range buckets {
		value := 0.0
		if b.accum.Units > 0 {
			value = float64(b.accum.Spoiled) / float64(b.accum.Units) * 100
		}
		points = append(points, domain.SpoilageTrendPoint{Period: b.label, Value: value})
	}
	return points
}
