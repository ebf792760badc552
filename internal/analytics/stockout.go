// internal/analytics/stockout.go
package analytics

import "math/rand"

// StockoutEstimator supplies the stockout incident counts shown on
// the KPI dashboard. This is a declared placeholder: the counts are
// not derived from the transaction log, and the interface exists so a
// real inventory-depletion signal can replace the estimate without
// touching the aggregation pipeline.
type StockoutEstimator interface {
	// Incidents is the overall incident count, in [5, 24].
	Incidents() int
	// StoreIncidents is a per-store incident count, in [0, 4].
	StoreIncidents(storeID int64) int
}

// SeededEstimator produces stable pseudo-random counts for a given
// seed, so repeated queries over an unchanged log rank identically.
type SeededEstimator struct {
	seed int64
}

func NewSeededEstimator(seed int64) *SeededEstimator {
	return &SeededEstimator{seed: seed}
}

func (e *SeededEstimator) Incidents() int {
	rng := rand.New(rand.NewSource(e.seed))
	return 5 + rng.Intn(20)
}

func (e *SeededEstimator) StoreIncidents(storeID int64) int {
	rng := rand.New(rand.NewSource(e.seed ^ storeID*0x9e3779b9))
	return rng.Intn(5)
}

// ZeroEstimator reports no incidents; used in tests.
type ZeroEstimator struct{}

func (ZeroEstimator) Incidents() int           { return 0 }
func (ZeroEstimator) StoreIncidents(int64) int { return 0 }
