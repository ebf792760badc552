// internal/analytics/filter.go
package analytics

import (
	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// Filter narrows the transaction log to the subset matching the
// criteria. Date bounds are inclusive; an inverted range yields an
// empty subset, never an error. The log itself is never mutated.
func Filter(src dataset.Source, f domain.KPIFilter) []domain.Transaction {
	matched := make([]domain.Transaction, 0)
	for _, tx := range src.Transactions() {
		if tx.Timestamp.Before(f.Start) || tx.Timestamp.After(f.End) {
			continue
		}
		if !matchesStore(src, tx, f) {
			continue
		}
		if !matchesSupplier(src, tx, f) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

// matchesStore applies the region and store predicates. A transaction
// whose store reference cannot be resolved is excluded whenever
// either predicate is active.
func matchesStore(src dataset.Source, tx domain.Transaction, f domain.KPIFilter) bool {
	if f.Region == nil && f.StoreID == nil {
		return true
	}

	store, ok := src.StoreByID(tx.StoreID)
	if !ok {
		return false
	}
	if f.Region != nil && store.Region != *f.Region {
		return false
	}
	if f.StoreID != nil && store.ID != *f.StoreID {
		return false
	}
	return true
}

// matchesSupplier is an existence check across line items: the
// transaction matches when any item's product resolves to the
// requested supplier. Items from other suppliers inside a matching
// transaction still contribute to that transaction's revenue.
func matchesSupplier(src dataset.Source, tx domain.Transaction, f domain.KPIFilter) bool {
	if f.Supplier == nil {
		return true
	}
	for _, item := range tx.Items {
		product, ok := src.ProductByID(item.ProductID)
		if ok && product.Supplier == *f.Supplier {
			return true
		}
	}
	return false
}
