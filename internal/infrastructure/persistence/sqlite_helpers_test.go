package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/warehouse"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory sqlite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name, price string, reorderLevel int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, name, "Hardware", "pcs", decimal.RequireFromString(price), reorderLevel)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func seedWarehouse(t *testing.T, db *gorm.DB, name string) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(name, name+" street", 0)
	require.NoError(t, err)
	require.NoError(t, NewGormWarehouseRepository(db).Save(context.Background(), w))
	return w
}
