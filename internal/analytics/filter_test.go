package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

func item(productID int64, qty int, price string) domain.LineItem {
	return domain.LineItem{
		ProductID: productID,
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
	}
}

func tx(id string, storeID int64, ts time.Time, items ...domain.LineItem) domain.Transaction {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return domain.Transaction{
		ID:            id,
		StoreID:       storeID,
		Timestamp:     ts,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: domain.PaymentCash,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func testSource(txs ...domain.Transaction) *dataset.MemorySource {
	stores := []domain.Store{
		{ID: 1, Name: "Downtown Market", Region: domain.RegionNorth},
		{ID: 2, Name: "Harbor Grocery", Region: domain.RegionSouth},
		{ID: 3, Name: "Eastside Pantry", Region: domain.RegionEast},
	}
	products := []domain.Product{
		{ID: 1, Name: "Organic Bananas", Category: "Fruits", Supplier: "Fresh Produce Inc.", Unit: "Lbs"},
		{ID: 2, Name: "Whole Milk", Category: "Dairy", Supplier: "Dairy National", Unit: "Gallons"},
		{ID: 3, Name: "Sourdough Bread", Category: "Bakery", Supplier: "Bakery Delights", Unit: "Loaves"},
	}
	suppliers := []domain.Supplier{
		{ID: 1, Name: "Fresh Produce Inc."},
		{ID: 2, Name: "Dairy National"},
		{ID: 3, Name: "Bakery Delights"},
	}
	return dataset.NewMemorySource(txs, stores, products, suppliers)
}

func rangeFilter(start, end time.Time) domain.KPIFilter {
	return domain.KPIFilter{Start: start, End: end}
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	start := day(2025, time.March, 10)
	end := day(2025, time.March, 20)

	src := testSource(
		tx("t-before", 1, start.Add(-time.Second), item(1, 1, "1.00")),
		tx("t-start", 1, start, item(1, 1, "1.00")),
		tx("t-mid", 1, day(2025, time.March, 15), item(1, 1, "1.00")),
		tx("t-end", 1, end, item(1, 1, "1.00")),
		tx("t-after", 1, end.Add(time.Second), item(1, 1, "1.00")),
	)

	matched := Filter(src, rangeFilter(start, end))
	require.Len(t, matched, 3)
	assert.Equal(t, "t-start", matched[0].ID)
	assert.Equal(t, "t-mid", matched[1].ID)
	assert.Equal(t, "t-end", matched[2].ID)
}

func TestFilterInvertedRangeYieldsEmptySubset(t *testing.T) {
	src := testSource(
		tx("t1", 1, day(2025, time.March, 15), item(1, 1, "1.00")),
	)

	matched := Filter(src, rangeFilter(day(2025, time.April, 1), day(2025, time.March, 1)))
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestFilterByRegion(t *testing.T) {
	src := testSource(
		tx("t-north", 1, day(2025, time.March, 15), item(1, 1, "1.00")),
		tx("t-south", 2, day(2025, time.March, 15), item(1, 1, "1.00")),
	)

	f := rangeFilter(day(2025, time.March, 1), day(2025, time.March, 31)).WithRegion(domain.RegionSouth)
	matched := Filter(src, f)
	require.Len(t, matched, 1)
	assert.Equal(t, "t-south", matched[0].ID)
}

func TestFilterByStore(t *testing.T) {
	src := testSource(
		tx("t1", 1, day(2025, time.March, 15), item(1, 1, "1.00")),
		tx("t2", 2, day(2025, time.March, 15), item(1, 1, "1.00")),
		tx("t3", 1, day(2025, time.March, 16), item(1, 1, "1.00")),
	)

	f := rangeFilter(day(2025, time.March, 1), day(2025, time.March, 31)).WithStore(1)
	matched := Filter(src, f)
	require.Len(t, matched, 2)
	assert.Equal(t, "t1", matched[0].ID)
	assert.Equal(t, "t3", matched[1].ID)
}

func TestFilterUnresolvedStoreReference(t *testing.T) {
	src := testSource(
		tx("t-known", 1, day(2025, time.March, 15), item(1, 1, "1.00")),
		tx("t-orphan", 99, day(2025, time.March, 15), item(1, 1, "1.00")),
	)
	window := rangeFilter(day(2025, time.March, 1), day(2025, time.March, 31))

	// No store-axis predicate: the orphan still participates.
	matched := Filter(src, window)
	assert.Len(t, matched, 2)

	// A region predicate excludes transactions it cannot resolve.
	matched = Filter(src, window.WithRegion(domain.RegionNorth))
	require.Len(t, matched, 1)
	assert.Equal(t, "t-known", matched[0].ID)

	matched = Filter(src, window.WithStore(99))
	assert.Empty(t, matched)
}

func TestFilterBySupplierMatchesAnyLineItem(t *testing.T) {
	src := testSource(
		tx("t-mixed", 1, day(2025, time.March, 15),
			item(1, 2, "0.79"),
			item(2, 1, "4.29"),
		),
		tx("t-bakery", 1, day(2025, time.March, 16), item(3, 1, "5.49")),
	)
	window := rangeFilter(day(2025, time.March, 1), day(2025, time.March, 31))

	matched := Filter(src, window.WithSupplier("Dairy National"))
	require.Len(t, matched, 1)
	assert.Equal(t, "t-mixed", matched[0].ID)

	// The whole matching transaction survives, other suppliers' items
	// included.
	acc := Aggregate(matched, src, FixedModel{})
	assert.Equal(t, "5.87", acc.Revenue.StringFixed(2))
	assert.Equal(t, 3, acc.Units)
}

func TestFilterBySupplierUnknownSupplier(t *testing.T) {
	src := testSource(
		tx("t1", 1, day(2025, time.March, 15), item(1, 1, "1.00")),
	)
	window := rangeFilter(day(2025, time.March, 1), day(2025, time.March, 31))

	matched := Filter(src, window.WithSupplier("No Such Supplier"))
	assert.Empty(t, matched)
}
