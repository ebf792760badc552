package analytics

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeAccum(revenue string, units, spoiled int) *StoreAccum {
	return &StoreAccum{
		Transactions: 1,
		Units:        units,
		Spoiled:      spoiled,
		Revenue:      decimal.RequireFromString(revenue),
	}
}

func TestTopStoresRanking(t *testing.T) {
	src := testSource()
	acc := newAccumulators()
	acc.Stores[1] = storeAccum("100.00", 50, 5)
	acc.Stores[2] = storeAccum("300.00", 80, 0)
	acc.Stores[3] = storeAccum("200.00", 40, 4)

	top := TopStores(acc, src, ZeroEstimator{}, TopStoreLimit)
	require.Len(t, top, 3)

	assert.Equal(t, []int64{2, 3, 1}, []int64{top[0].StoreID, top[1].StoreID, top[2].StoreID})
	assert.Equal(t, 1, top[0].Rank)
	assert.Equal(t, 2, top[1].Rank)
	assert.Equal(t, 3, top[2].Rank)

	assert.Equal(t, "Harbor Grocery", top[0].Name)
	assert.Zero(t, top[0].SpoilageRate)
	assert.InDelta(t, 10.0, top[1].SpoilageRate, 1e-9)
	assert.Equal(t, "300.00", top[0].Revenue.StringFixed(2))
}

func TestTopStoresTieBreaksByStoreID(t *testing.T) {
	src := testSource()
	acc := newAccumulators()
	acc.Stores[5] = storeAccum("50.00", 10, 0)
	acc.Stores[3] = storeAccum("50.00", 10, 0)
	acc.Stores[9] = storeAccum("50.00", 10, 0)

	top := TopStores(acc, src, ZeroEstimator{}, TopStoreLimit)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{3, 5, 9}, []int64{top[0].StoreID, top[1].StoreID, top[2].StoreID})
}

func TestTopStoresTruncatesAndRanksDensely(t *testing.T) {
	src := testSource()
	acc := newAccumulators()
	for i := 1; i <= 14; i++ {
		acc.Stores[int64(i)] = storeAccum(fmt.Sprintf("%d.00", i*10), 10, 0)
	}

	top := TopStores(acc, src, ZeroEstimator{}, TopStoreLimit)
	require.Len(t, top, TopStoreLimit)
	for i, entry := range top {
		assert.Equal(t, i+1, entry.Rank)
	}
	// Highest revenue first: stores 14 down to 5.
	assert.Equal(t, int64(14), top[0].StoreID)
	assert.Equal(t, int64(5), top[9].StoreID)
}

func TestTopStoresNameFallback(t *testing.T) {
	src := testSource()
	acc := newAccumulators()
	acc.Stores[99] = storeAccum("10.00", 5, 0)

	top := TopStores(acc, src, ZeroEstimator{}, TopStoreLimit)
	require.Len(t, top, 1)
	assert.Equal(t, "Store 99", top[0].Name)
}

func TestTopStoresDeterministic(t *testing.T) {
	src := testSource()
	acc := newAccumulators()
	for i := 1; i <= 8; i++ {
		acc.Stores[int64(i)] = storeAccum("25.00", 10, 0)
	}

	first := TopStores(acc, src, ZeroEstimator{}, TopStoreLimit)
	for run := 0; run < 5; run++ {
		again := TopStores(acc, src, ZeroEstimator{}, TopStoreLimit)
		assert.Equal(t, first, again)
	}
}

func TestCategoryBreakdownSharesSumToHundred(t *testing.T) {
	acc := newAccumulators()
	acc.Categories["Fruits"] = &CategoryAccum{Units: 100, Spoiled: 6}
	acc.Categories["Dairy"] = &CategoryAccum{Units: 80, Spoiled: 3}
	acc.Categories["Bakery"] = &CategoryAccum{Units: 60, Spoiled: 1}
	acc.Categories["Vegetables"] = &CategoryAccum{Units: 40, Spoiled: 0}

	breakdown := CategoryBreakdown(acc)
	require.Len(t, breakdown, 3)

	assert.Equal(t, "Fruits", breakdown[0].Category)
	assert.Equal(t, "Dairy", breakdown[1].Category)
	assert.Equal(t, "Bakery", breakdown[2].Category)

	sum := 0.0
	for _, entry := range breakdown {
		assert.Greater(t, entry.SpoilagePercentage, 0.0)
		sum += entry.SpoilagePercentage
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestCategoryBreakdownTieBreaksByName(t *testing.T) {
	acc := newAccumulators()
	acc.Categories["Dairy"] = &CategoryAccum{Units: 10, Spoiled: 2}
	acc.Categories["Bakery"] = &CategoryAccum{Units: 10, Spoiled: 2}

	breakdown := CategoryBreakdown(acc)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Bakery", breakdown[0].Category)
	assert.Equal(t, "Dairy", breakdown[1].Category)
}

func TestCategoryBreakdownEmptyWhenNothingSpoiled(t *testing.T) {
	acc := newAccumulators()
	acc.Categories["Fruits"] = &CategoryAccum{Units: 100, Spoiled: 0}

	breakdown := CategoryBreakdown(acc)
	assert.NotNil(t, breakdown)
	assert.Empty(t, breakdown)
}
