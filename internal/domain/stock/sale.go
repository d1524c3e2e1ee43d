package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storekeep/backend/internal/domain/shared"
)

// Sale is an immutable record of a stock-reducing transaction.
// It captures the item name and price at the moment of sale; later changes
// to the item never touch it. Sales are append-only.
type Sale struct {
	shared.BaseEntity
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName     string          `gorm:"type:varchar(200);not null"`
	QuantitySold int64           `gorm:"not null"`
	PriceAtSale  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SoldAt       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a sale record for the given item, snapshotting its
// current price. Quantity validation happens in Item.Sell.
func NewSale(item *Item, quantity int64) *Sale {
	return &Sale{
		BaseEntity:   shared.NewBaseEntity(),
		ItemID:       item.ID,
		ItemName:     item.Name,
		QuantitySold: quantity,
		PriceAtSale:  item.Price,
		SoldAt:       time.Now(),
	}
}
