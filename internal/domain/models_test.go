package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemSubtotal(t *testing.T) {
	item := LineItem{ProductID: 1, Quantity: 3, Price: decimal.RequireFromString("0.79")}
	assert.Equal(t, "2.37", item.Subtotal().StringFixed(2))
}

func TestTransactionTotalUnits(t *testing.T) {
	tx := Transaction{Items: []LineItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 5},
	}}
	assert.Equal(t, 7, tx.TotalUnits())

	assert.Zero(t, Transaction{}.TotalUnits())
}

func TestValidRegion(t *testing.T) {
	for _, r := range Regions() {
		assert.True(t, ValidRegion(r))
	}
	assert.False(t, ValidRegion(Region("Midlands")))
	assert.False(t, ValidRegion(Region("")))
}

func TestValidDimension(t *testing.T) {
	assert.True(t, ValidDimension(DimensionStore))
	assert.True(t, ValidDimension(DimensionProduct))
	assert.True(t, ValidDimension(DimensionDate))
	assert.False(t, ValidDimension(SummaryDimension("supplier")))
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	payload, err := json.Marshal(map[string]decimal.Decimal{
		"total": decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":12.5}`, string(payload))
}
