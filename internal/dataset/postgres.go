// internal/dataset/postgres.go
package dataset

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/freshmart/retail-ops/backend-go/internal/config"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

type transactionRow struct {
	ID            string    `db:"transaction_id"`
	StoreID       int64     `db:"store_id"`
	Timestamp     time.Time `db:"timestamp"`
	TotalAmount   string    `db:"total_amount"`
	PaymentMethod string    `db:"payment_method"`
}

type lineItemRow struct {
	TransactionID string `db:"transaction_id"`
	ProductID     int64  `db:"product_id"`
	Quantity      int    `db:"quantity"`
	Price         string `db:"price"`
}

// LoadPostgres reads the full transaction log and catalogs from
// Postgres in one shot and returns an in-memory source. The engine
// never touches the database again after startup.
func LoadPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*MemorySource, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.ConnectContext(ctx, "pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var stores []domain.Store
	if err := db.SelectContext(ctx, &stores,
		`SELECT id, name, region FROM stores ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}

	var products []domain.Product
	if err := db.SelectContext(ctx, &products,
		`SELECT id, name, supplier, category, current_stock, forecast_rec, unit, spoilage_rate
		 FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var suppliers []domain.Supplier
	if err := db.SelectContext(ctx, &suppliers,
		`SELECT id, name FROM suppliers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}

	var txRows []transactionRow
	if err := db.SelectContext(ctx, &txRows,
		`SELECT transaction_id, store_id, timestamp, total_amount::text AS total_amount, payment_method
		 FROM pos_transactions ORDER BY timestamp DESC`); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	var itemRows []lineItemRow
	if err := db.SelectContext(ctx, &itemRows,
		`SELECT transaction_id, product_id, quantity, price::text AS price
		 FROM pos_line_items ORDER BY transaction_id, product_id`); err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}

	itemsByTx := make(map[string][]domain.LineItem, len(txRows))
	for _, row := range itemRows {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price for transaction %s: %w", row.TransactionID, err)
		}
		itemsByTx[row.TransactionID] = append(itemsByTx[row.TransactionID], domain.LineItem{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Price:     price,
		})
	}

	transactions := make([]domain.Transaction, 0, len(txRows))
	for _, row := range txRows {
		total, err := decimal.NewFromString(row.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid total for transaction %s: %w", row.ID, err)
		}
		transactions = append(transactions, domain.Transaction{
			ID:            row.ID,
			StoreID:       row.StoreID,
			Timestamp:     row.Timestamp,
			Items:         itemsByTx[row.ID],
			TotalAmount:   total,
			PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		})
	}

	return NewMemorySource(transactions, stores, products, suppliers), nil
}
