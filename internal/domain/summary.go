package domain

import "github.com/shopspring/decimal"

// SummaryDimension is the grouping axis for a sales summary.
type SummaryDimension string

const (
	DimensionStore   SummaryDimension = "store"
	DimensionProduct SummaryDimension = "product"
	DimensionDate    SummaryDimension = "date"
)

// ValidDimension reports whether d names a known summary dimension.
func ValidDimension(d SummaryDimension) bool {
	switch d {
	case DimensionStore, DimensionProduct, DimensionDate:
		return true
	}
	return false
}

// StoreSalesSummary is the per-store rollup row.
type StoreSalesSummary struct {
	StoreID             int64           `json:"store_id"`
	StoreName           string          `json:"store_name"`
	Region              Region          `json:"region"`
	TotalTransactions   int             `json:"total_transactions"`
	TotalItemsSold      int             `json:"total_items_sold"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	AvgTransactionValue decimal.Decimal `json:"avg_transaction_value"`
}

// ProductSalesSummary is the per-product rollup row. Revenue is the
// sum of quantity x unit price over the product's line items.
type ProductSalesSummary struct {
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Category       string          `json:"category"`
	TotalUnitsSold int             `json:"total_units_sold"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// DateSalesSummary is the per-calendar-date rollup row.
type DateSalesSummary struct {
	Date                string          `json:"date"`
	TotalTransactions   int             `json:"total_transactions"`
	TotalItemsSold      int             `json:"total_items_sold"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	AvgTransactionValue decimal.Decimal `json:"avg_transaction_value"`
}

// SpoilageTrendPoint is one calendar-period bucket in the spoilage
// trend series.
type SpoilageTrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// TopStore is one entry in the ranked top-performing stores list.
type TopStore struct {
	Rank         int             `json:"rank"`
	StoreID      int64           `json:"store_id"`
	Name         string          `json:"name"`
	SpoilageRate float64         `json:"spoilage_rate"`
	Stockouts    int             `json:"stockouts"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// CategorySpoilage is one category's share of total spoiled units.
type CategorySpoilage struct {
	Category           string  `json:"category"`
	SpoilagePercentage float64 `json:"spoilage_percentage"`
}

// KPIData is the leadership dashboard snapshot.
//
// StockoutIncidents is an independently estimated placeholder metric:
// it is not derived from the transaction log and is produced by a
// separate estimator so a real inventory-depletion signal can replace
// it without touching the aggregation pipeline.
type KPIData struct {
	SpoilageRate       float64              `json:"spoilage_rate"`
	StockoutIncidents  int                  `json:"stockout_incidents"`
	TotalRevenue       decimal.Decimal      `json:"total_revenue"`
	SpoilageTrend      []SpoilageTrendPoint `json:"spoilage_trend"`
	TopStores          []TopStore           `json:"top_stores"`
	SpoilageByCategory []CategorySpoilage   `json:"spoilage_by_category"`
}

// ProductPerformance is one product row in the manager dashboard
// lists. Value is units sold or spoiled units depending on the list.
type ProductPerformance struct {
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Value       int              `json:"value"`
	Unit        string           `json:"unit,omitempty"`
	Revenue     *decimal.Decimal `json:"revenue,omitempty"`
}

// ManagerDashboard is the store-scoped manager view.
type ManagerDashboard struct {
	TotalRevenue         decimal.Decimal      `json:"total_revenue"`
	TotalUnitsSold       int                  `json:"total_units_sold"`
	SpoilageRate         float64              `json:"spoilage_rate"`
	AverageSaleValue     decimal.Decimal      `json:"average_sale_value"`
	TopSellingProducts   []ProductPerformance `json:"top_selling_products"`
	HighSpoilageProducts []ProductPerformance `json:"high_spoilage_products"`
}

// FilterOptions lists the catalog values the dashboard filter bar
// offers.
type FilterOptions struct {
	Regions   []Region   `json:"regions"`
	Stores    []Store    `json:"stores"`
	Suppliers []Supplier `json:"suppliers"`
}
