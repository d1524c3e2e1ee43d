package persistence

import (
	"context"
	"errors"

	"github.com/storekeep/backend/internal/domain/shared"
	"github.com/storekeep/backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByName finds an item by its normalized name
func (r *GormItemRepository) FindByName(ctx context.Context, name string) (*stock.Item, error) {
	var item stock.Item
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByNameForUpdate finds an item by normalized name with a row-level lock.
// Must be called within a transaction: the lock is held until commit or
// rollback, so concurrent sells of the same item serialize on the row.
func (r *GormItemRepository) FindByNameForUpdate(ctx context.Context, name string) (*stock.Item, error) {
	var item stock.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all items ordered by name
func (r *GormItemRepository) FindAll(ctx context.Context) ([]stock.Item, error) {
	var items []stock.Item
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBelowMinimum finds items whose quantity is at or below their reorder threshold
func (r *GormItemRepository) FindBelowMinimum(ctx context.Context) ([]stock.Item, error) {
	var items []stock.Item
	if err := r.db.WithContext(ctx).
		Where("quantity <= minimum_quantity").
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsByName checks whether an item with the normalized name exists
func (r *GormItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.Item{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an item. A unique-index violation on the name
// surfaces as ErrAlreadyExists so concurrent creates of the same item
// resolve as a duplicate rather than a raw database error.
func (r *GormItemRepository) Save(ctx context.Context, item *stock.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Count counts all items
func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&stock.Item{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormItemRepository implements ItemRepository
var _ stock.ItemRepository = (*GormItemRepository)(nil)
