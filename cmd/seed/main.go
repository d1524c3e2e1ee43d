package main

import (
	"context"
	"os"

	"github.com/shopspring/decimal"
	"github.com/storekeep/backend/internal/domain/stock"
	"github.com/storekeep/backend/internal/infrastructure/config"
	"github.com/storekeep/backend/internal/infrastructure/logger"
	"github.com/storekeep/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// seedItems is the development dataset. Bread is deliberately below its
// reorder threshold so the low-stock view has something to show.
var seedItems = []struct {
	name            string
	price           int64
	quantity        int64
	minimumQuantity int64
}{
	{"milk", 50, 20, 5},
	{"eggs", 6, 10, 4},
	{"bread", 40, 3, 5},
}

var seedSales = []struct {
	itemName string
	quantity int64
}{
	{"milk", 2},
	{"eggs", 1},
}

func main() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()
	itemRepo := persistence.NewGormItemRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	count, err := itemRepo.Count(ctx)
	if err != nil {
		log.Fatal("Failed to check existing data", zap.Error(err))
	}
	if count > 0 {
		log.Info("Seed skipped: data already exists", zap.Int64("items", count))
		return
	}

	log.Info("Seeding database")

	items := make(map[string]*stock.Item, len(seedItems))
	for _, s := range seedItems {
		item, err := stock.NewItem(s.name, decimal.NewFromInt(s.price), s.quantity, s.minimumQuantity)
		if err != nil {
			log.Fatal("Invalid seed item", zap.String("name", s.name), zap.Error(err))
		}
		if err := itemRepo.Save(ctx, item); err != nil {
			log.Fatal("Failed to save seed item", zap.String("name", s.name), zap.Error(err))
		}
		items[s.name] = item
	}

	for _, s := range seedSales {
		item := items[s.itemName]
		sale, err := item.Sell(s.quantity)
		if err != nil {
			log.Fatal("Failed to record seed sale", zap.String("item", s.itemName), zap.Error(err))
		}
		if err := itemRepo.Save(ctx, item); err != nil {
			log.Fatal("Failed to update seed item stock", zap.String("item", s.itemName), zap.Error(err))
		}
		if err := saleRepo.Save(ctx, sale); err != nil {
			log.Fatal("Failed to save seed sale", zap.String("item", s.itemName), zap.Error(err))
		}
	}

	log.Info("Seed completed successfully",
		zap.Int("items", len(seedItems)),
		zap.Int("sales", len(seedSales)),
	)
}
