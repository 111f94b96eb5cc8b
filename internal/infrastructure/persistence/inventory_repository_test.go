package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPostgres opens gorm on sqlmock with the postgres dialect
func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func stockRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "product_id", "warehouse_id", "quantity", "reserved_quantity"}).
		AddRow(7, now, now, 1, 2, 40, 5)
}

func TestGormStockEntryRepository_FindByKeyForUpdate(t *testing.T) {
	t.Run("locks the row with FOR UPDATE", func(t *testing.T) {
		db, mock, mockDB := newMockPostgres(t)
		defer mockDB.Close()
		repo := NewGormStockEntryRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE product_id = \$1 AND warehouse_id = \$2 .*FOR UPDATE`).
			WithArgs(int64(1), int64(2), 1).
			WillReturnRows(stockRows())

		entry, err := repo.FindByKeyForUpdate(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(7), entry.ID)
		assert.Equal(t, int64(40), entry.OnHand)
		assert.Equal(t, int64(5), entry.Reserved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plain read does not lock", func(t *testing.T) {
		db, mock, mockDB := newMockPostgres(t)
		defer mockDB.Close()
		repo := NewGormStockEntryRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "inventory" WHERE product_id = \$1 AND warehouse_id = \$2 ORDER BY "inventory"."id" LIMIT \$3$`).
			WithArgs(int64(1), int64(2), 1).
			WillReturnRows(stockRows())

		_, err := repo.FindByKey(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockPostgres(t)
		defer mockDB.Close()
		repo := NewGormStockEntryRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "inventory"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByKeyForUpdate(context.Background(), 1, 2)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockEntryRepository_SaveUpdatesQuantities(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t)
	defer mockDB.Close()
	repo := NewGormStockEntryRepository(db)

	entry := &inventory.StockEntry{
		BaseEntity:  shared.BaseEntity{ID: 7, UpdatedAt: time.Now()},
		ProductID:   1,
		WarehouseID: 2,
		OnHand:      30,
		Reserved:    5,
	}

	mock.ExpectExec(`UPDATE "inventory" SET .* WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_FindByIDForUpdate(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 .*FOR UPDATE`).
		WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "kind", "status"}).
			AddRow(3, now, now, "receipt", "ready"))
	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE order_id = \$1 ORDER BY id ASC`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "warehouse_id", "quantity", "created_at"}).
			AddRow(11, 3, 1, 2, 50, now))

	o, err := repo.FindByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "WH/IN/0003", o.Reference())
	require.Len(t, o.Lines, 1)
	assert.Equal(t, int64(50), o.Lines[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
