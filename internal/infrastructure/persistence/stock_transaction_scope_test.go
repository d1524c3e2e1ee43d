package persistence

import (
	"context"
	"errors"
	"testing"

	appstock "github.com/storekeep/backend/internal/application/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when the function succeeds", func(t *testing.T) {
		db := setupSaleTestDB(t)
		scope := NewGormTransactionScope(db)

		itemRepo := NewGormItemRepository(db)
		require.NoError(t, itemRepo.Save(ctx, mustNewItem(t, "milk", 50, 20, 5)))

		err := scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
			item, err := repos.ItemRepo().FindByName(ctx, "milk")
			if err != nil {
				return err
			}
			sale, err := item.Sell(3)
			if err != nil {
				return err
			}
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			return repos.SaleRepo().Save(ctx, sale)
		})
		require.NoError(t, err)

		item, err := itemRepo.FindByName(ctx, "milk")
		require.NoError(t, err)
		assert.Equal(t, int64(17), item.Quantity)

		count, err := NewGormSaleRepository(db).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rolls back all writes when the function fails", func(t *testing.T) {
		db := setupSaleTestDB(t)
		scope := NewGormTransactionScope(db)

		itemRepo := NewGormItemRepository(db)
		require.NoError(t, itemRepo.Save(ctx, mustNewItem(t, "eggs", 6, 10, 4)))

		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
			item, err := repos.ItemRepo().FindByName(ctx, "eggs")
			if err != nil {
				return err
			}
			sale, err := item.Sell(5)
			if err != nil {
				return err
			}
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			if err := repos.SaleRepo().Save(ctx, sale); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		// Neither the stock decrement nor the sale record survives
		item, err := itemRepo.FindByName(ctx, "eggs")
		require.NoError(t, err)
		assert.Equal(t, int64(10), item.Quantity)

		count, err := NewGormSaleRepository(db).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("repositories inside the scope share one transaction", func(t *testing.T) {
		db := setupSaleTestDB(t)
		scope := NewGormTransactionScope(db)

		err := scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
			item := mustNewItem(t, "bread", 40, 3, 5)
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			// Visible within the same transaction before commit
			found, err := repos.ItemRepo().FindByName(ctx, "bread")
			if err != nil {
				return err
			}
			assert.Equal(t, item.ID, found.ID)
			return nil
		})
		require.NoError(t, err)
	})
}

func TestGormTransactionScope_ImplementsInterface(t *testing.T) {
	var _ appstock.TransactionScope = NewGormTransactionScope(nil)
}
