// internal/dataset/generate.go
package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// GenerateOptions controls the synthetic dataset generator.
type GenerateOptions struct {
	Seed         int64
	Transactions int
	Stores       int
	// Span is the time window ending at End that transactions are
	// spread across.
	End  time.Time
	Span time.Duration
}

type productTemplate struct {
	name     string
	category string
	supplier string
	unit     string
	price    string
}

var productTemplates = []productTemplate{
	{"Organic Bananas", "Fruits", "Fresh Produce Inc.", "Lbs", "0.79"},
	{"Local Strawberries", "Fruits", "Organic Farms Co.", "Cases", "24.99"},
	{"Hass Avocados", "Fruits", "Global Fruit Importers", "Cases", "35.50"},
	{"Romaine Lettuce", "Vegetables", "Fresh Produce Inc.", "Heads", "1.99"},
	{"Whole Milk", "Dairy", "Dairy National", "Gallons", "4.29"},
	{"Sourdough Bread", "Bakery", "Bakery Delights", "Loaves", "5.49"},
	{"Free-Range Eggs", "Dairy", "Organic Farms Co.", "Dozens", "6.99"},
	{"Cherry Tomatoes", "Vegetables", "Organic Farms Co.", "Pints", "3.49"},
}

var supplierNames = []string{
	"Fresh Produce Inc.",
	"Dairy National",
	"Organic Farms Co.",
	"Global Fruit Importers",
	"Bakery Delights",
}

var storeLocations = []struct {
	city   string
	area   string
	region domain.Region
}{
	{"New York", "Midtown", domain.RegionEast},
	{"Los Angeles", "Downtown", domain.RegionWest},
	{"Chicago", "River North", domain.RegionNorth},
	{"Houston", "Galleria", domain.RegionSouth},
	{"Phoenix", "Camelback", domain.RegionWest},
	{"Philadelphia", "Center City", domain.RegionEast},
	{"San Antonio", "Riverwalk", domain.RegionSouth},
	{"San Diego", "Gaslamp", domain.RegionWest},
	{"Dallas", "Uptown", domain.RegionSouth},
	{"Columbus", "Short North", domain.RegionNorth},
	{"Charlotte", "South End", domain.RegionEast},
	{"San Francisco", "SOMA", domain.RegionWest},
	{"Indianapolis", "Broad Ripple", domain.RegionNorth},
	{"Seattle", "Capitol Hill", domain.RegionWest},
	{"Washington", "Georgetown", domain.RegionEast},
	{"Boston", "Back Bay", domain.RegionEast},
	{"Detroit", "Midtown", domain.RegionNorth},
	{"Nashville", "The Gulch", domain.RegionSouth},
	{"Portland", "Pearl District", domain.RegionWest},
	{"Minneapolis", "North Loop", domain.RegionNorth},
}

var paymentMethods = []domain.PaymentMethod{
	domain.PaymentCreditCard,
	domain.PaymentDebitCard,
	domain.PaymentCash,
	domain.PaymentMobile,
}

// Generate produces a deterministic synthetic dataset: the same seed
// yields the same catalogs and transaction log. Transaction totals
// always equal the sum of their line item subtotals.
func Generate(opts GenerateOptions) *MemorySource {
	if opts.Transactions <= 0 {
		opts.Transactions = 5000
	}
	if opts.Stores <= 0 {
		opts.Stores = 40
	}
	if opts.End.IsZero() {
		opts.End = time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)
	}
	if opts.Span <= 0 {
		opts.Span = 365 * 24 * time.Hour
	}

	rng := rand.New(rand.NewSource(opts.Seed))

	suppliers := make([]domain.Supplier, 0, len(supplierNames))
	for i, name := range supplierNames {
		suppliers = append(suppliers, domain.Supplier{ID: int64(i + 1), Name: name})
	}

	products := make([]domain.Product, 0, len(productTemplates))
	for i, tpl := range productTemplates {
		products = append(products, domain.Product{
			ID:           int64(i + 1),
			Name:         tpl.name,
			Category:     tpl.category,
			Supplier:     tpl.supplier,
			Unit:         tpl.unit,
			CurrentStock: 10 + rng.Intn(91),
			ForecastRec:  50 + rng.Intn(101),
			SpoilageRate: 5 + rng.Float64()*15,
		})
	}

	stores := make([]domain.Store, 0, opts.Stores)
	for i := 0; i < opts.Stores; i++ {
		loc := storeLocations[i%len(storeLocations)]
		stores = append(stores, domain.Store{
			ID:     int64(i + 1),
			Name:   fmt.Sprintf("%s_%s_GG", loc.city, loc.area),
			Region: loc.region,
		})
	}

	start := opts.End.Add(-opts.Span)
	transactions := make([]domain.Transaction, 0, opts.Transactions)
	for i := 0; i < opts.Transactions; i++ {
		ts := start.Add(time.Duration(rng.Int63n(int64(opts.Span))))

		numItems := 1 + rng.Intn(5)
		items := make([]domain.LineItem, 0, numItems)
		total := decimal.Zero
		for j := 0; j < numItems; j++ {
			idx := rng.Intn(len(productTemplates))
			item := domain.LineItem{
				ProductID: int64(idx + 1),
				Quantity:  1 + rng.Intn(3),
				Price:     decimal.RequireFromString(productTemplates[idx].price),
			}
			items = append(items, item)
			total = total.Add(item.Subtotal())
		}

		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("trx-%d-%d", opts.Seed, i)))
		transactions = append(transactions, domain.Transaction{
			ID:            fmt.Sprintf("TRX-%s-%06d", ts.Format("200601"), i+1) + "-" + id.String()[:8],
			StoreID:       int64(rng.Intn(opts.Stores) + 1),
			Timestamp:     ts,
			Items:         items,
			TotalAmount:   total,
			PaymentMethod: paymentMethods[rng.Intn(len(paymentMethods))],
		})
	}

	return NewMemorySource(transactions, stores, products, suppliers)
}
