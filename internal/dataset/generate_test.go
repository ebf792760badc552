package dataset

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := GenerateOptions{Seed: 7, Transactions: 200, Stores: 10}

	first := Generate(opts)
	second := Generate(opts)

	assert.Equal(t, first.Stores(), second.Stores())
	assert.Equal(t, first.Products(), second.Products())
	assert.Equal(t, first.Suppliers(), second.Suppliers())
	require.Equal(t, len(first.Transactions()), len(second.Transactions()))
	for i, tx := range first.Transactions() {
		assert.Equal(t, tx.ID, second.Transactions()[i].ID)
		assert.True(t, tx.TotalAmount.Equal(second.Transactions()[i].TotalAmount))
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a := Generate(GenerateOptions{Seed: 1, Transactions: 50, Stores: 5})
	b := Generate(GenerateOptions{Seed: 2, Transactions: 50, Stores: 5})

	assert.NotEqual(t, a.Transactions()[0].ID, b.Transactions()[0].ID)
}

func TestGenerateCatalogSizes(t *testing.T) {
	src := Generate(GenerateOptions{Seed: 3, Transactions: 10, Stores: 12})

	assert.Len(t, src.Stores(), 12)
	assert.Len(t, src.Products(), 8)
	assert.Len(t, src.Suppliers(), 5)
	assert.Len(t, src.Transactions(), 10)
}

func TestGenerateTotalsMatchLineItems(t *testing.T) {
	src := Generate(GenerateOptions{Seed: 11, Transactions: 300, Stores: 8})

	for _, tx := range src.Transactions() {
		require.NotEmpty(t, tx.Items)

		sum := decimal.Zero
		for _, item := range tx.Items {
			assert.Positive(t, item.Quantity)
			sum = sum.Add(item.Subtotal())
		}
		assert.True(t, tx.TotalAmount.Equal(sum), "transaction %s total %s != %s", tx.ID, tx.TotalAmount, sum)
	}
}

func TestGenerateReferencesResolve(t *testing.T) {
	src := Generate(GenerateOptions{Seed: 5, Transactions: 200, Stores: 6})

	for _, tx := range src.Transactions() {
		_, ok := src.StoreByID(tx.StoreID)
		assert.True(t, ok, "transaction %s references unknown store %d", tx.ID, tx.StoreID)
		for _, item := range tx.Items {
			_, ok := src.ProductByID(item.ProductID)
			assert.True(t, ok, "transaction %s references unknown product %d", tx.ID, item.ProductID)
		}
	}
}

func TestGenerateTimestampsWithinWindow(t *testing.T) {
	end := time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)
	span := 90 * 24 * time.Hour
	src := Generate(GenerateOptions{Seed: 13, Transactions: 100, Stores: 4, End: end, Span: span})

	start := end.Add(-span)
	for _, tx := range src.Transactions() {
		assert.False(t, tx.Timestamp.Before(start), "timestamp %s before window", tx.Timestamp)
		assert.False(t, tx.Timestamp.After(end), "timestamp %s after window", tx.Timestamp)
	}
}
