// internal/report/tables.go
package report

import (
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// StoreSummaryTable builds the by-store sales summary table.
func StoreSummaryTable(rows []domain.StoreSalesSummary) Table {
	t := Table{
		Headers: []string{"Store ID", "Store Name", "Region", "Transactions", "Items Sold", "Total Revenue", "Avg Transaction Value"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []Field{
			Int(int(r.StoreID)),
			Text(r.StoreName),
			Text(string(r.Region)),
			Int(r.TotalTransactions),
			Int(r.TotalItemsSold),
			Money(r.TotalRevenue),
			Money(r.AvgTransactionValue),
		})
	}
	return t
}

// ProductSummaryTable builds the by-product sales summary table.
func ProductSummaryTable(rows []domain.ProductSalesSummary) Table {
	t := Table{
		Headers: []string{"Product ID", "Product Name", "Category", "Units Sold", "Total Revenue"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []Field{
			Int(int(r.ProductID)),
			Text(r.ProductName),
			Text(r.Category),
			Int(r.TotalUnitsSold),
			Money(r.TotalRevenue),
		})
	}
	return t
}

// DateSummaryTable builds the by-date sales summary table.
func DateSummaryTable(rows []domain.DateSalesSummary) Table {
	t := Table{
		Headers: []string{"Date", "Transactions", "Items Sold", "Total Revenue", "Avg Transaction Value"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []Field{
			Text(r.Date),
			Int(r.TotalTransactions),
			Int(r.TotalItemsSold),
			Money(r.TotalRevenue),
			Money(r.AvgTransactionValue),
		})
	}
	return t
}

// TopStoresTable builds the dashboard top-performing stores export.
func TopStoresTable(stores []domain.TopStore) Table {
	t := Table{
		Headers: []string{"Rank", "Store Name", "Revenue", "Spoilage Rate", "Stockouts"},
	}
	for _, s := range stores {
		t.Rows = append(t.Rows, []Field{
			Int(s.Rank),
			Text(s.Name),
			Money(s.Revenue),
			Percent(s.SpoilageRate),
			Int(s.Stockouts),
		})
	}
	return t
}
