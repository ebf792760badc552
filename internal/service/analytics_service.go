// internal/service/analytics_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/freshmart/retail-ops/backend-go/internal/analytics"
	"github.com/freshmart/retail-ops/backend-go/internal/cache"
	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
	"github.com/freshmart/retail-ops/backend-go/internal/report"
)

// ErrUnknownDimension is returned for a sales summary dimension
// outside store/product/date.
var ErrUnknownDimension = errors.New("unknown summary dimension")

const managerTopProducts = 5

// AnalyticsService is the KPI facade: it orchestrates the filter
// pipeline, aggregator, trend bucketer, ranker and report formatter
// over the injected read-only data source.
type AnalyticsService struct {
	src       dataset.Source
	cache     cache.KPICache
	models    analytics.ModelFactory
	stockouts analytics.StockoutEstimator
	workers   int
}

func NewAnalyticsService(
	src dataset.Source,
	kpiCache cache.KPICache,
	models analytics.ModelFactory,
	stockouts analytics.StockoutEstimator,
	workers int,
) *AnalyticsService {
	if kpiCache == nil {
		kpiCache = cache.NewNoopKPICache()
	}
	if workers < 1 {
		workers = 1
	}
	return &AnalyticsService{
		src:       src,
		cache:     kpiCache,
		models:    models,
		stockouts: stockouts,
		workers:   workers,
	}
}

// GetKPIData answers the leadership KPI query: filter, aggregate,
// rank top stores, bucket the spoilage trend and break spoilage down
// by category. An empty filtered subset yields zero figures and empty
// lists, never an error.
func (s *AnalyticsService) GetKPIData(ctx context.Context, filter domain.KPIFilter) (*domain.KPIData, error) {
	if data, ok, err := s.cache.Get(ctx, filter); err == nil && ok {
		return data, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("analytics: kpi cache get failed")
	}

	subset := analytics.Filter(s.src, filter)
	acc, err := analytics.AggregateParallel(ctx, subset, s.src, s.models, s.workers)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	data := &domain.KPIData{
		SpoilageRate:       acc.SpoilageRate(),
		StockoutIncidents:  s.stockouts.Incidents(),
		TotalRevenue:       acc.Revenue,
		SpoilageTrend:      analytics.SpoilageTrend(acc, analytics.TrendLimit),
		TopStores:          analytics.TopStores(acc, s.src, s.stockouts, analytics.TopStoreLimit),
		SpoilageByCategory: analytics.CategoryBreakdown(acc),
	}

	if err := s.cache.Set(ctx, filter, data); err != nil {
		log.Warn().Err(err).Msg("analytics: kpi cache set failed")
	}

	return data, nil
}

// fullLogAccumulators aggregates the entire log with spoilage
// disabled; the sales summary views carry no spoilage figures.
func (s *AnalyticsService) fullLogAccumulators() *analytics.Accumulators {
	return analytics.Aggregate(s.src.Transactions(), s.src, analytics.FixedModel{})
}

// GetStoreSummary reports over the full log grouped by store, rows in
// ascending store id order. Transactions whose store reference does
// not resolve are skipped for this view.
func (s *AnalyticsService) GetStoreSummary(ctx context.Context) []domain.StoreSalesSummary {
	acc := s.fullLogAccumulators()

	rows := make([]domain.StoreSalesSummary, 0, len(acc.Stores))
	for id, a := range acc.Stores {
		store, ok := s.src.StoreByID(id)
		if !ok {
			log.Debug().Int64("store_id", id).Msg("analytics: skipping unresolved store reference")
			continue
		}
		rows = append(rows, domain.StoreSalesSummary{
			StoreID:             id,
			StoreName:           store.Name,
			Region:              store.Region,
			TotalTransactions:   a.Transactions,
			TotalItemsSold:      a.Units,
			TotalRevenue:        a.Revenue,
			AvgTransactionValue: avgValue(a.Revenue, a.Transactions),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].StoreID < rows[j].StoreID })
	return rows
}

// GetProductSummary reports over the full log grouped by product,
// rows in ascending product id order. Line items whose product
// reference does not resolve are skipped for this view.
func (s *AnalyticsService) GetProductSummary(ctx context.Context) []domain.ProductSalesSummary {
	acc := s.fullLogAccumulators()

	rows := make([]domain.ProductSalesSummary, 0, len(acc.Products))
	for id, a := range acc.Products {
		product, ok := s.src.ProductByID(id)
		if !ok {
			continue
		}
		rows = append(rows, domain.ProductSalesSummary{
			ProductID:      id,
			ProductName:    product.Name,
			Category:       product.Category,
			TotalUnitsSold: a.Units,
			TotalRevenue:   a.Revenue,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ProductID < rows[j].ProductID })
	return rows
}

// GetDateSummary reports over the full log grouped by calendar date,
// newest date first.
func (s *AnalyticsService) GetDateSummary(ctx context.Context) []domain.DateSalesSummary {
	acc := s.fullLogAccumulators()

	rows := make([]domain.DateSalesSummary, 0, len(acc.Dates))
	for date, a := range acc.Dates {
		rows = append(rows, domain.DateSalesSummary{
			Date:                date,
			TotalTransactions:   a.Transactions,
			TotalItemsSold:      a.Units,
			TotalRevenue:        a.Revenue,
			AvgTransactionValue: avgValue(a.Revenue, a.Transactions),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows
}

// GetSalesSummary dispatches on the dimension. The result is one of
// the three typed row slices.
func (s *AnalyticsService) GetSalesSummary(ctx context.Context, dimension domain.SummaryDimension) (interface{}, error) {
	switch dimension {
	case domain.DimensionStore:
		return s.GetStoreSummary(ctx), nil
	case domain.DimensionProduct:
		return s.GetProductSummary(ctx), nil
	case domain.DimensionDate:
		return s.GetDateSummary(ctx), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}
}

// ExportSalesSummary renders a sales summary as CSV and returns the
// download filename.
func (s *AnalyticsService) ExportSalesSummary(ctx context.Context, dimension domain.SummaryDimension) ([]byte, string, error) {
	var table report.Table
	switch dimension {
	case domain.DimensionStore:
		table = report.StoreSummaryTable(s.GetStoreSummary(ctx))
	case domain.DimensionProduct:
		table = report.ProductSummaryTable(s.GetProductSummary(ctx))
	case domain.DimensionDate:
		table = report.DateSummaryTable(s.GetDateSummary(ctx))
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}

	filename := fmt.Sprintf("sales-summary-by-%s.csv", dimension)
	return report.CSVBytes(table), filename, nil
}

// ExportTopStores renders the dashboard's ranked store list as CSV.
func (s *AnalyticsService) ExportTopStores(ctx context.Context, filter domain.KPIFilter) ([]byte, string, error) {
	data, err := s.GetKPIData(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	return report.CSVBytes(report.TopStoresTable(data.TopStores)), "top-performing-stores.csv", nil
}

// GetManagerDashboard answers the store-scoped manager view: totals,
// average sale value and the store's top products by revenue and by
// spoiled units.
func (s *AnalyticsService) GetManagerDashboard(ctx context.Context, filter domain.KPIFilter) (*domain.ManagerDashboard, error) {
	subset := analytics.Filter(s.src, filter)
	acc, err := analytics.AggregateParallel(ctx, subset, s.src, s.models, s.workers)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	type productEntry struct {
		id    int64
		accum *analytics.ProductAccum
	}
	entries := make([]productEntry, 0, len(acc.Products))
	for id, a := range acc.Products {
		entries = append(entries, productEntry{id: id, accum: a})
	}

	performance := func(e productEntry, value int, withRevenue bool) domain.ProductPerformance {
		p := domain.ProductPerformance{ProductID: e.id, Value: value}
		if product, ok := s.src.ProductByID(e.id); ok {
			p.ProductName = product.Name
			p.Unit = product.Unit
		} else {
			p.ProductName = fmt.Sprintf("Product %d", e.id)
		}
		if withRevenue {
			revenue := e.accum.Revenue
			p.Revenue = &revenue
		}
		return p
	}

	sort.Slice(entries, func(i, j int) bool {
		cmp := entries[i].accum.Revenue.Cmp(entries[j].accum.Revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[i].id < entries[j].id
	})
	topSelling := make([]domain.ProductPerformance, 0, managerTopProducts)
	for _, e := range entries {
		if len(topSelling) == managerTopProducts {
			break
		}
		topSelling = append(topSelling, performance(e, e.accum.Units, true))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].accum.Spoiled != entries[j].accum.Spoiled {
			return entries[i].accum.Spoiled > entries[j].accum.Spoiled
		}
		return entries[i].id < entries[j].id
	})
	highSpoilage := make([]domain.ProductPerformance, 0, managerTopProducts)
	for _, e := range entries {
		if len(highSpoilage) == managerTopProducts || e.accum.Spoiled == 0 {
			break
		}
		highSpoilage = append(highSpoilage, performance(e, e.accum.Spoiled, false))
	}

	return &domain.ManagerDashboard{
		TotalRevenue:         acc.Revenue,
		TotalUnitsSold:       acc.Units,
		SpoilageRate:         acc.SpoilageRate(),
		AverageSaleValue:     avgValue(acc.Revenue, acc.Transactions),
		TopSellingProducts:   topSelling,
		HighSpoilageProducts: highSpoilage,
	}, nil
}

// FilterOptions lists the catalog values for the dashboard filter bar.
func (s *AnalyticsService) FilterOptions() domain.FilterOptions {
	return domain.FilterOptions{
		Regions:   domain.Regions(),
		Stores:    s.src.Stores(),
		Suppliers: s.src.Suppliers(),
	}
}

func avgValue(revenue decimal.Decimal, transactions int) decimal.Decimal {
	if transactions == 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(int64(transactions)), 2)
}
