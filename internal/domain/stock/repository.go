package stock

import (
	"context"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByName finds an item by its normalized name
	FindByName(ctx context.Context, name string) (*Item, error)

	// FindByNameForUpdate finds an item by normalized name, locking the row
	// for the duration of the surrounding transaction
	FindByNameForUpdate(ctx context.Context, name string) (*Item, error)

	// FindAll finds all items ordered by name
	FindAll(ctx context.Context) ([]Item, error)

	// FindBelowMinimum finds items at or below their reorder threshold
	FindBelowMinimum(ctx context.Context) ([]Item, error)

	// ExistsByName checks whether an item with the normalized name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Count counts all items
	Count(ctx context.Context) (int64, error)
}

// SaleRepository defines the interface for sale record persistence.
// Sales are append-only: there is no update or delete.
type SaleRepository interface {
	// Save appends a sale record
	Save(ctx context.Context, sale *Sale) error

	// FindAll finds all sales in insertion order (sold_at ascending)
	FindAll(ctx context.Context) ([]Sale, error)

	// Count counts all sale records
	Count(ctx context.Context) (int64, error)
}
