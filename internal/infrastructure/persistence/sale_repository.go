package persistence

import (
	"context"

	"github.com/storekeep/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save appends a sale record
func (r *GormSaleRepository) Save(ctx context.Context, sale *stock.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// FindAll finds all sales in recording order
func (r *GormSaleRepository) FindAll(ctx context.Context) ([]stock.Sale, error) {
	var sales []stock.Sale
	if err := r.db.WithContext(ctx).Order("sold_at asc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Count counts all sale records
func (r *GormSaleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.Sale{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSaleRepository implements SaleRepository
var _ stock.SaleRepository = (*GormSaleRepository)(nil)
