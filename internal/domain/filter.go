package domain

import "time"

// KPIFilter narrows the transaction log before aggregation. Date
// bounds are inclusive. A nil Region/StoreID/Supplier means no
// restriction on that axis; "all" never collides with a catalog value
// because the unrestricted case is the nil pointer, not a string.
type KPIFilter struct {
	Start    time.Time
	End      time.Time
	Region   *Region
	StoreID  *int64
	Supplier *string
}

// WithRegion returns a copy of the filter restricted to one region.
func (f KPIFilter) WithRegion(r Region) KPIFilter {
	f.Region = &r
	return f
}

// WithStore returns a copy of the filter restricted to one store.
func (f KPIFilter) WithStore(id int64) KPIFilter {
	f.StoreID = &id
	return f
}

// WithSupplier returns a copy of the filter restricted to one supplier.
func (f KPIFilter) WithSupplier(name string) KPIFilter {
	f.Supplier = &name
	return f
}
