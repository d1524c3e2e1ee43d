package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storekeep/backend/internal/domain/shared"
	"github.com/storekeep/backend/internal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of stock.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByName(ctx context.Context, name string) (*stock.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Item), args.Error(1)
}

func (m *MockItemRepository) FindByNameForUpdate(ctx context.Context, name string) (*stock.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]stock.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]stock.Item), args.Error(1)
}

func (m *MockItemRepository) FindBelowMinimum(ctx context.Context) ([]stock.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]stock.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *stock.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSaleRepository is a mock implementation of stock.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *stock.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindAll(ctx context.Context) ([]stock.Sale, error) {
	args := m.Called(ctx)
	return args.Get(0).([]stock.Sale), args.Error(1)
}

func (m *MockSaleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(itemRepo *MockItemRepository, saleRepo *MockSaleRepository) *StockService {
	return NewStockService(itemRepo, saleRepo, NewNoOpTransactionScope(itemRepo, saleRepo))
}

func createTestItem(t *testing.T, name string, price int64, quantity, minimum int64) *stock.Item {
	t.Helper()
	item, err := stock.NewItem(name, decimal.NewFromInt(price), quantity, minimum)
	require.NoError(t, err)
	return item
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestStockService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with normalized name", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		itemRepo.On("ExistsByName", ctx, "milk").Return(false, nil).Once()
		itemRepo.On("Save", ctx, mock.AnythingOfType("*stock.Item")).Return(nil).Once()

		response, err := service.CreateItem(ctx, CreateItemRequest{
			Name:            "  Milk ",
			Price:           decimal.NewFromInt(50),
			Quantity:        int64Ptr(10),
			MinimumQuantity: int64Ptr(5),
		})

		require.NoError(t, err)
		assert.Equal(t, "milk", response.Name)
		assert.Equal(t, int64(10), response.Quantity)
		assert.False(t, response.LowStock)
		itemRepo.AssertExpectations(t)
	})

	t.Run("fails with conflict when normalized name exists", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		itemRepo.On("ExistsByName", ctx, "eggs").Return(true, nil).Once()

		response, err := service.CreateItem(ctx, CreateItemRequest{
			Name:            "  EGGS ",
			Price:           decimal.NewFromInt(20),
			Quantity:        int64Ptr(12),
			MinimumQuantity: int64Ptr(6),
		})

		require.Error(t, err)
		assert.Nil(t, response)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		assert.Contains(t, domainErr.Message, "already exists")
		assert.Contains(t, domainErr.Message, "restock")
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("fails with conflict when a concurrent create wins the insert", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		itemRepo.On("ExistsByName", ctx, "eggs").Return(false, nil).Once()
		itemRepo.On("Save", ctx, mock.AnythingOfType("*stock.Item")).Return(shared.ErrAlreadyExists).Once()

		response, err := service.CreateItem(ctx, CreateItemRequest{
			Name:            "eggs",
			Price:           decimal.NewFromInt(20),
			Quantity:        int64Ptr(12),
			MinimumQuantity: int64Ptr(6),
		})

		require.Error(t, err)
		assert.Nil(t, response)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		assert.Contains(t, domainErr.Message, "already exists")
		itemRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid price before persistence", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		response, err := service.CreateItem(ctx, CreateItemRequest{
			Name:            "Bread",
			Price:           decimal.NewFromInt(-10),
			Quantity:        int64Ptr(5),
			MinimumQuantity: int64Ptr(2),
		})

		require.Error(t, err)
		assert.Nil(t, response)
		itemRepo.AssertNotCalled(t, "ExistsByName")
		itemRepo.AssertNotCalled(t, "Save")
	})

	t.Run("low stock is derived on create", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		itemRepo.On("ExistsByName", ctx, "bread").Return(false, nil).Once()
		itemRepo.On("Save", ctx, mock.AnythingOfType("*stock.Item")).Return(nil).Once()

		response, err := service.CreateItem(ctx, CreateItemRequest{
			Name:            "Bread",
			Price:           decimal.NewFromInt(40),
			Quantity:        int64Ptr(3),
			MinimumQuantity: int64Ptr(5),
		})

		require.NoError(t, err)
		assert.True(t, response.LowStock)
	})
}

func TestStockService_Restock(t *testing.T) {
	ctx := context.Background()

	t.Run("adds quantity to existing item", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		item := createTestItem(t, "milk", 50, 3, 5)
		itemRepo.On("FindByName", ctx, "milk").Return(item, nil).Once()
		itemRepo.On("Save", ctx, item).Return(nil).Once()

		response, err := service.Restock(ctx, " Milk ", RestockRequest{Quantity: 7})

		require.NoError(t, err)
		assert.Equal(t, int64(10), response.Quantity)
		assert.False(t, response.LowStock)
		itemRepo.AssertExpectations(t)
	})

	t.Run("fails with not found", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		itemRepo.On("FindByName", ctx, "cheese").Return(nil, shared.ErrNotFound).Once()

		response, err := service.Restock(ctx, "Cheese", RestockRequest{Quantity: 5})

		require.Error(t, err)
		assert.Nil(t, response)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		item := createTestItem(t, "milk", 50, 3, 5)
		itemRepo.On("FindByName", ctx, "milk").Return(item, nil).Once()

		response, err := service.Restock(ctx, "milk", RestockRequest{Quantity: 0})

		require.Error(t, err)
		assert.Nil(t, response)
		assert.Equal(t, int64(3), item.Quantity)
		itemRepo.AssertNotCalled(t, "Save")
	})
}

func TestStockService_Sell(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts stock and records sale atomically", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		item := createTestItem(t, "milk", 50, 10, 5)
		itemRepo.On("FindByNameForUpdate", ctx, "milk").Return(item, nil).Once()
		itemRepo.On("Save", ctx, item).Return(nil).Once()
		saleRepo.On("Save", ctx, mock.AnythingOfType("*stock.Sale")).Return(nil).Once()

		response, err := service.Sell(ctx, CreateSaleRequest{ItemName: " MILK ", QuantitySold: 6})

		require.NoError(t, err)
		assert.Equal(t, int64(4), response.Quantity)
		assert.True(t, response.LowStock)
		itemRepo.AssertExpectations(t)
		saleRepo.AssertExpectations(t)

		savedSale := saleRepo.Calls[0].Arguments.Get(1).(*stock.Sale)
		assert.Equal(t, "milk", savedSale.ItemName)
		assert.Equal(t, int64(6), savedSale.QuantitySold)
		assert.Equal(t, decimal.NewFromInt(50), savedSale.PriceAtSale)
	})

	t.Run("fails with not found and records nothing", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		itemRepo.On("FindByNameForUpdate", ctx, "nonexisting").Return(nil, shared.ErrNotFound).Once()

		response, err := service.Sell(ctx, CreateSaleRequest{ItemName: "NonExisting", QuantitySold: 1})

		require.Error(t, err)
		assert.Nil(t, response)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		itemRepo.AssertNotCalled(t, "Save")
		saleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("fails with insufficient stock and leaves stock unchanged", func(t *testing.T) {
		itemRepo := new(MockItemRepository)
		saleRepo := new(MockSaleRepository)
		service := newTestService(itemRepo, saleRepo)

		item := createTestItem(t, "milk", 50, 4, 2)
		itemRepo.On("FindByNameForUpdate", ctx, "milk").Return(item, nil).Once()

		response, err := service.Sell(ctx, CreateSaleRequest{ItemName: "milk", QuantitySold: 999})

		require.Error(t, err)
		assert.Nil(t, response)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Available quantity: 4")
		assert.Equal(t, int64(4), item.Quantity)
		itemRepo.AssertNotCalled(t, "Save")
		saleRepo.AssertNotCalled(t, "Save")
	})
}

func TestStockService_ListItems(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(MockItemRepository)
	saleRepo := new(MockSaleRepository)
	service := newTestService(itemRepo, saleRepo)

	milk := createTestItem(t, "milk", 50, 10, 5)
	bread := createTestItem(t, "bread", 40, 3, 5)
	itemRepo.On("FindAll", ctx).Return([]stock.Item{*milk, *bread}, nil).Once()

	response, err := service.ListItems(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Items, 2)
	assert.False(t, response.Items[0].LowStock)
	assert.True(t, response.Items[1].LowStock)
}

func TestStockService_ListLowStock(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(MockItemRepository)
	saleRepo := new(MockSaleRepository)
	service := newTestService(itemRepo, saleRepo)

	bread := createTestItem(t, "bread", 40, 3, 5)
	itemRepo.On("FindBelowMinimum", ctx).Return([]stock.Item{*bread}, nil).Once()

	response, err := service.ListLowStock(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, response.Count)
	assert.True(t, response.Items[0].LowStock)
}

func TestStockService_ListSales(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(MockItemRepository)
	saleRepo := new(MockSaleRepository)
	service := newTestService(itemRepo, saleRepo)

	milk := createTestItem(t, "milk", 50, 10, 5)
	saleOne, err := milk.Sell(3)
	require.NoError(t, err)
	saleTwo, err := milk.Sell(2)
	require.NoError(t, err)

	saleRepo.On("FindAll", ctx).Return([]stock.Sale{*saleOne, *saleTwo}, nil).Once()

	response, err := service.ListSales(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, int64(3), response.Sales[0].QuantitySold)
	assert.Equal(t, int64(2), response.Sales[1].QuantitySold)
	assert.Equal(t, decimal.NewFromInt(50), response.Sales[0].PriceAtSale)
}
