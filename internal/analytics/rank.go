// internal/analytics/rank.go
package analytics

import (
	"fmt"
	"sort"

	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// TopStoreLimit is the dashboard's top-performing stores cutoff.
const TopStoreLimit = 10

// TopStores ranks store accumulators by revenue descending, ties
// broken by ascending store id so the result is deterministic,
// truncates to n entries and assigns dense 1-based ranks. Store names
// resolve through the catalog with a "Store <id>" fallback for
// reference gaps.
func TopStores(acc *Accumulators, src dataset.Source, est StockoutEstimator, n int) []domain.TopStore {
	entries := make([]domain.TopStore, 0, len(acc.Stores))
	for id, s := range acc.Stores {
		name := fmt.Sprintf("Store %d", id)
		if store, ok := src.StoreByID(id); ok {
			name = store.Name
		}

		rate := 0.0
		if s.Units > 0 {
			rate = float64(s.Spoiled) / float64(s.Units) * 100
		}

		entries = append(entries, domain.TopStore{
			StoreID:      id,
			Name:         name,
			SpoilageRate: rate,
			Stockouts:    est.StoreIncidents(id),
			Revenue:      s.Revenue,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		cmp := entries[i].Revenue.Cmp(entries[j].Revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[i].StoreID < entries[j].StoreID
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// CategoryBreakdown computes each category's share of total spoiled
// units, omitting zero-share categories, sorted by share descending
// with ties broken by category name. The result is empty when nothing
// spoiled; otherwise the shares sum to 100 within rounding.
func CategoryBreakdown(acc *Accumulators) []domain.CategorySpoilage {
	totalSpoiled := 0
	for _, c := range acc.Categories {
		totalSpoiled += c.Spoiled
	}
	if totalSpoiled == 0 {
		return []domain.CategorySpoilage{}
	}

	breakdown := make([]domain.CategorySpoilage, 0, len(acc.Categories))
	for name, c := range acc.Categories {
		if c.Spoiled == 0 {
			continue
		}
		breakdown = append(breakdown, domain.CategorySpoilage{
			Category:           name,
			SpoilagePercentage: float64(c.Spoiled) / float64(totalSpoiled) * 100,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].SpoilagePercentage != breakdown[j].SpoilagePercentage {
			return breakdown[i].SpoilagePercentage > breakdown[j].SpoilagePercentage
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}
