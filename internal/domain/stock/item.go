package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storekeep/backend/internal/domain/shared"
)

// NormalizeName canonicalizes an item name for lookup and storage.
// All name matching is case- and surrounding-whitespace-insensitive,
// so the same normalization must be applied on every path.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Item represents a stocked product. It is the aggregate root for all
// stock operations. The normalized name is the business identifier.
type Item struct {
	shared.BaseEntity
	Name            string          `gorm:"type:varchar(200);not null;uniqueIndex:idx_items_name"`
	Price           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity        int64           `gorm:"not null;default:0"`
	MinimumQuantity int64           `gorm:"not null;default:0"` // Reorder threshold for low-stock alerts
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item with a normalized name.
// All field constraints are enforced here, before anything reaches persistence.
func NewItem(name string, price decimal.Decimal, quantity, minimumQuantity int64) (*Item, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be greater than 0")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if minimumQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_MINIMUM_QUANTITY", "Minimum quantity cannot be negative")
	}

	return &Item{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            normalized,
		Price:           price,
		Quantity:        quantity,
		MinimumQuantity: minimumQuantity,
	}, nil
}

// LowStock reports whether the item is at or below its reorder threshold.
// Computed at read time, never stored.
func (i *Item) LowStock() bool {
	return i.Quantity <= i.MinimumQuantity
}

// Restock increases the stock quantity without creating a sale record
func (i *Item) Restock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	i.Quantity += quantity
	i.UpdatedAt = time.Now()
	return nil
}

// Sell deducts the given quantity from stock and returns the resulting
// sale record with the current price captured as the historical snapshot.
// The deduction and the returned sale must be persisted atomically.
func (i *Item) Sell(quantity int64) (*Sale, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be positive")
	}
	if quantity > i.Quantity {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Not enough stock for '%s'. Available quantity: %d", i.Name, i.Quantity))
	}

	i.Quantity -= quantity
	i.UpdatedAt = time.Now()

	return NewSale(i, quantity), nil
}
