// internal/analytics/aggregator.go
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

const dateKeyFormat = "2006-01-02"

// StoreAccum accumulates one store's figures over the filtered subset.
type StoreAccum struct {
	Transactions int
	Units        int
	Revenue      decimal.Decimal
	Spoiled      int
}

// ProductAccum accumulates one product's figures. Revenue is the sum
// of quantity x unit price over the product's line items.
type ProductAccum struct {
	Units   int
	Revenue decimal.Decimal
	Spoiled int
}

// DateAccum accumulates one calendar date's figures.
type DateAccum struct {
	Transactions int
	Units        int
	Revenue      decimal.Decimal
	Spoiled      int
}

// PeriodAccum accumulates one trend period (calendar month). First is
// the earliest transaction timestamp seen for the period; trend
// ordering is reconciled by this timestamp, never by the order
// workers happen to finish in.
type PeriodAccum struct {
	Units   int
	Spoiled int
	First   time.Time
}

// CategoryAccum accumulates one product category's figures.
type CategoryAccum struct {
	Units   int
	Spoiled int
}

// Accumulators is the output of one aggregation pass: parallel
// dimension-keyed maps plus running totals. Instances are local to a
// query and never shared between requests.
type Accumulators struct {
	Stores     map[int64]*StoreAccum
	Products   map[int64]*ProductAccum
	Dates      map[string]*DateAccum
	Periods    map[string]*PeriodAccum
	Categories map[string]*CategoryAccum

	Transactions int
	Units        int
	Spoiled      int
	Revenue      decimal.Decimal
}

func newAccumulators() *Accumulators {
	return &Accumulators{
		Stores:     make(map[int64]*StoreAccum),
		Products:   make(map[int64]*ProductAccum),
		Dates:      make(map[string]*DateAccum),
		Periods:    make(map[string]*PeriodAccum),
		Categories: make(map[string]*CategoryAccum),
		Revenue:    decimal.Zero,
	}
}

// SpoilageRate returns the overall spoiled-unit percentage, 0 when no
// units were sold.
func (a *Accumulators) SpoilageRate() float64 {
	if a.Units == 0 {
		return 0
	}
	return float64(a.Spoiled) / float64(a.Units) * 100
}

// Aggregate makes a single pass over the filtered subset. Catalog
// reference gaps are recovered locally: a line item whose product is
// unknown still counts toward store/date units and revenue but is
// skipped for product and category attribution.
func Aggregate(txs []domain.Transaction, src dataset.Source, model SpoilageModel) *Accumulators {
	acc := newAccumulators()
	for i := range txs {
		acc.addTransaction(&txs[i], src, model)
	}
	return acc
}

func (a *Accumulators) addTransaction(tx *domain.Transaction, src dataset.Source, model SpoilageModel) {
	a.Transactions++
	a.Revenue = a.Revenue.Add(tx.TotalAmount)

	store := a.Stores[tx.StoreID]
	if store == nil {
		store = &StoreAccum{Revenue: decimal.Zero}
		a.Stores[tx.StoreID] = store
	}
	store.Transactions++
	store.Revenue = store.Revenue.Add(tx.TotalAmount)

	dateKey := tx.Timestamp.Format(dateKeyFormat)
	date := a.Dates[dateKey]
	if date == nil {
		date = &DateAccum{Revenue: decimal.Zero}
		a.Dates[dateKey] = date
	}
	date.Transactions++
	date.Revenue = date.Revenue.Add(tx.TotalAmount)

	periodKey := tx.Timestamp.Format("Jan")
	period := a.Periods[periodKey]
	if period == nil {
		period = &PeriodAccum{First: tx.Timestamp}
		a.Periods[periodKey] = period
	} else if tx.Timestamp.Before(period.First) {
		period.First = tx.Timestamp
	}

	for _, item := range tx.Items {
		qty := item.Quantity
		a.Units += qty
		store.Units += qty
		date.Units += qty
		period.Units += qty

		product, resolved := src.ProductByID(item.ProductID)

		var (
			prodAcc  *ProductAccum
			category *CategoryAccum
		)
		if resolved {
			prodAcc = a.Products[item.ProductID]
			if prodAcc == nil {
				prodAcc = &ProductAccum{Revenue: decimal.Zero}
				a.Products[item.ProductID] = prodAcc
			}
			prodAcc.Units += qty
			prodAcc.Revenue = prodAcc.Revenue.Add(item.Subtotal())

			category = a.Categories[product.Category]
			if category == nil {
				category = &CategoryAccum{}
				a.Categories[product.Category] = category
			}
			category.Units += qty
		}

		spoiled := model.SpoiledUnits(item)
		if spoiled > qty {
			spoiled = qty
		}
		if spoiled > 0 {
			a.Spoiled += spoiled
			store.Spoiled += spoiled
			date.Spoiled += spoiled
			period.Spoiled += spoiled
			if prodAcc != nil {
				prodAcc.Spoiled += spoiled
			}
			if category != nil {
				category.Spoiled += spoiled
			}
		}
	}
}

// merge folds other into a. Every tracked field is a sum, so merging
// is associative and commutative; the period first-seen timestamp
// takes the minimum.
func (a *Accumulators) merge(other *Accumulators) {
	a.Transactions += other.Transactions
	a.Units += other.Units
	a.Spoiled += other.Spoiled
	a.Revenue = a.Revenue.Add(other.Revenue)

	for id, s := range other.Stores {
		dst := a.Stores[id]
		if dst == nil {
			a.Stores[id] = s
			continue
		}
		dst.Transactions += s.Transactions
		dst.Units += s.Units
		dst.Spoiled += s.Spoiled
		dst.Revenue = dst.Revenue.Add(s.Revenue)
	}

	for id, p := range other.Products {
		dst := a.Products[id]
		if dst == nil {
			a.Products[id] = p
			continue
		}
		dst.Units += p.Units
		dst.Spoiled += p.Spoiled
		dst.Revenue = dst.Revenue.Add(p.Revenue)
	}

	for key, d := range other.Dates {
		dst := a.Dates[key]
		if dst == nil {
			a.Dates[key] = d
			continue
		}
		dst.Transactions += d.Transactions
		dst.Units += d.Units
		dst.Spoiled += d.Spoiled
		dst.Revenue = dst.Revenue.Add(d.Revenue)
	}

	for key, p := range other.Periods {
		dst := a.Periods[key]
		if dst == nil {
			a.Periods[key] = p
			continue
		}
		dst.Units += p.Units
		dst.Spoiled += p.Spoiled
		if p.First.Before(dst.First) {
			dst.First = p.First
		}
	}

	for key, c := range other.Categories {
		dst := a.Categories[key]
		if dst == nil {
			a.Categories[key] = c
			continue
		}
		dst.Units += c.Units
		dst.Spoiled += c.Spoiled
	}
}

// AggregateParallel partitions the subset across workers and merges
// partial accumulators. Each worker gets its own spoilage model from
// the factory. Merge order does not affect any total; partials are
// still merged in partition order for reproducibility with seeded
// models. Cancellation is honored between partitions.
func AggregateParallel(ctx context.Context, txs []domain.Transaction, src dataset.Source, factory ModelFactory, workers int) (*Accumulators, error) {
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || len(txs) < workers*2 {
		return Aggregate(txs, src, factory()), nil
	}

	chunk := (len(txs) + workers - 1) / workers
	partials := make([]*Accumulators, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(txs) {
			hi = len(txs)
		}
		if lo >= hi {
			break
		}

		w := w
		part := txs[lo:hi]
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			partials[w] = Aggregate(part, src, factory())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc := newAccumulators()
	for _, part := range partials {
		if part != nil {
			acc.merge(part)
		}
	}
	return acc, nil
}
