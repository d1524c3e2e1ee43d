package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/storekeep/backend/internal/domain/shared"
	"github.com/storekeep/backend/internal/domain/stock"
)

// StockService handles stock-related business operations
type StockService struct {
	itemRepo stock.ItemRepository
	saleRepo stock.SaleRepository
	txScope  TransactionScope
}

// NewStockService creates a new StockService
func NewStockService(itemRepo stock.ItemRepository, saleRepo stock.SaleRepository, txScope TransactionScope) *StockService {
	return &StockService{
		itemRepo: itemRepo,
		saleRepo: saleRepo,
		txScope:  txScope,
	}
}

// CreateItem creates a new item. The name is normalized before the
// uniqueness check so matching is case- and whitespace-insensitive.
func (s *StockService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := stock.NewItem(req.Name, req.Price, *req.Quantity, *req.MinimumQuantity)
	if err != nil {
		return nil, err
	}

	exists, err := s.itemRepo.ExistsByName(ctx, item.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check item existence: %w", err)
	}
	if exists {
		return nil, duplicateItemError(item.Name)
	}

	// The existence check races with concurrent creates; the unique index
	// on the name is the backstop
	if err := s.itemRepo.Save(ctx, item); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, duplicateItemError(item.Name)
		}
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	return ToItemResponse(item), nil
}

func duplicateItemError(name string) *shared.DomainError {
	return shared.NewDomainError("ALREADY_EXISTS",
		fmt.Sprintf("Item '%s' already exists. Use PUT /stock/items/%s/restock to add stock.", name, name))
}

// Restock adds stock to an existing item identified by name
func (s *StockService) Restock(ctx context.Context, name string, req RestockRequest) (*ItemResponse, error) {
	normalized := stock.NormalizeName(name)

	item, err := s.itemRepo.FindByName(ctx, normalized)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Item '%s' not found", normalized))
		}
		return nil, err
	}

	if err := item.Restock(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	return ToItemResponse(item), nil
}

// Sell deducts stock and records the sale in a single transaction.
// The item row is locked for the duration of the transaction so
// concurrent sells cannot both pass the stock check.
func (s *StockService) Sell(ctx context.Context, req CreateSaleRequest) (*ItemResponse, error) {
	normalized := stock.NormalizeName(req.ItemName)

	var updated *stock.Item
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByNameForUpdate(ctx, normalized)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Item '%s' not found", normalized))
			}
			return err
		}

		sale, err := item.Sell(req.QuantitySold)
		if err != nil {
			return err
		}

		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return fmt.Errorf("failed to save sale: %w", err)
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToItemResponse(updated), nil
}

// ListItems retrieves all items with low_stock computed at response time
func (s *StockService) ListItems(ctx context.Context) (*ItemListResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := ToItemResponses(items)
	return &ItemListResponse{
		Count: len(responses),
		Items: responses,
	}, nil
}

// ListLowStock retrieves items at or below their reorder threshold
func (s *StockService) ListLowStock(ctx context.Context) (*ItemListResponse, error) {
	items, err := s.itemRepo.FindBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}

	responses := ToItemResponses(items)
	return &ItemListResponse{
		Count: len(responses),
		Items: responses,
	}, nil
}

// ListSales retrieves all sale records in insertion order
func (s *StockService) ListSales(ctx context.Context) (*SaleListResponse, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := ToSaleResponses(sales)
	return &SaleListResponse{
		Count: len(responses),
		Sales: responses,
	}, nil
}
