// internal/dataset/source.go
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// Source is the read-only data source the analytics engine depends
// on. The transaction log and catalogs are loaded once at startup and
// never mutated afterwards, so a Source is safe for concurrent use.
type Source interface {
	Transactions() []domain.Transaction
	Stores() []domain.Store
	Products() []domain.Product
	Suppliers() []domain.Supplier
	StoreByID(id int64) (domain.Store, bool)
	ProductByID(id int64) (domain.Product, bool)
}

// MemorySource keeps the whole dataset in memory with catalog indexes
// by id.
type MemorySource struct {
	transactions []domain.Transaction
	stores       []domain.Store
	products     []domain.Product
	suppliers    []domain.Supplier
	storeIndex   map[int64]domain.Store
	productIndex map[int64]domain.Product
}

// NewMemorySource builds a MemorySource from the given slices.
func NewMemorySource(
	transactions []domain.Transaction,
	stores []domain.Store,
	products []domain.Product,
	suppliers []domain.Supplier,
) *MemorySource {
	src := &MemorySource{
		transactions: transactions,
		stores:       stores,
		products:     products,
		suppliers:    suppliers,
		storeIndex:   make(map[int64]domain.Store, len(stores)),
		productIndex: make(map[int64]domain.Product, len(products)),
	}
	for _, s := range stores {
		src.storeIndex[s.ID] = s
	}
	for _, p := range products {
		src.productIndex[p.ID] = p
	}
	return src
}

func (s *MemorySource) Transactions() []domain.Transaction { return s.transactions }
func (s *MemorySource) Stores() []domain.Store             { return s.stores }
func (s *MemorySource) Products() []domain.Product         { return s.products }
func (s *MemorySource) Suppliers() []domain.Supplier       { return s.suppliers }

func (s *MemorySource) StoreByID(id int64) (domain.Store, bool) {
	store, ok := s.storeIndex[id]
	return store, ok
}

func (s *MemorySource) ProductByID(id int64) (domain.Product, bool) {
	product, ok := s.productIndex[id]
	return product, ok
}

// Snapshot is the JSON file layout produced by the seed CLI and
// consumed by LoadFile.
type Snapshot struct {
	Stores       []domain.Store       `json:"stores"`
	Products     []domain.Product     `json:"products"`
	Suppliers    []domain.Supplier    `json:"suppliers"`
	Transactions []domain.Transaction `json:"transactions"`
}

// LoadFile reads a dataset snapshot from a JSON file.
func LoadFile(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode dataset file %s: %w", path, err)
	}

	return NewMemorySource(snap.Transactions, snap.Stores, snap.Products, snap.Suppliers), nil
}

// SaveFile writes a dataset snapshot to a JSON file.
func SaveFile(path string, src Source) error {
	snap := Snapshot{
		Stores:       src.Stores(),
		Products:     src.Products(),
		Suppliers:    src.Suppliers(),
		Transactions: src.Transactions(),
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}

	return nil
}
