package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The dashboard consumes money fields as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Region is the fixed set of sales regions a store belongs to.
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Regions lists all known regions in display order.
func Regions() []Region {
	return []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}
}

// ValidRegion reports whether r names a known region.
func ValidRegion(r Region) bool {
	switch r {
	case RegionNorth, RegionSouth, RegionEast, RegionWest:
		return true
	}
	return false
}

// Store is immutable reference data.
type Store struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Region Region `json:"region" db:"region"`
}

type Supplier struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Product carries catalog data plus the informational stock/forecast
// fields used by order placement. The aggregation engine only reads
// Name, Category, Supplier and Unit.
type Product struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Supplier     string  `json:"supplier" db:"supplier"`
	Category     string  `json:"category" db:"category"`
	CurrentStock int     `json:"current_stock" db:"current_stock"`
	ForecastRec  int     `json:"forecast_rec" db:"forecast_rec"`
	Unit         string  `json:"unit" db:"unit"`
	SpoilageRate float64 `json:"spoilage_rate" db:"spoilage_rate"`
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentCash       PaymentMethod = "Cash"
	PaymentMobile     PaymentMethod = "Mobile"
)

// LineItem is one product position inside a transaction.
type LineItem struct {
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// Subtotal returns quantity x unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Transaction is one completed point-of-sale transaction. Immutable
// once created; TotalAmount equals the sum of its line item subtotals.
type Transaction struct {
	ID            string          `json:"transaction_id" db:"transaction_id"`
	StoreID       int64           `json:"store_id" db:"store_id"`
	Timestamp     time.Time       `json:"timestamp" db:"timestamp"`
	Items         []LineItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method" db:"payment_method"`
}

// TotalUnits returns the sum of line item quantities.
func (t Transaction) TotalUnits() int {
	units := 0
	for _, item := range t.Items {
		units += item.Quantity
	}
	return units
}
