package persistence

import (
	"context"

	appinv "github.com/stockroom/backend/internal/application/inventory"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/order"
	"github.com/stockroom/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Every repository handed to the callback runs on the same *gorm.DB transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error or panics, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) StockRepo() inventory.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

func (r *gormTransactionalRepositories) AdjustmentRepo() inventory.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) WarehouseRepo() warehouse.Repository {
	return NewGormWarehouseRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

var (
	_ catalog.ProductRepository      = (*GormProductRepository)(nil)
	_ warehouse.Repository           = (*GormWarehouseRepository)(nil)
	_ inventory.StockEntryRepository = (*GormStockEntryRepository)(nil)
	_ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
	_ inventory.MovementRepository   = (*GormMovementRepository)(nil)
	_ order.Repository               = (*GormOrderRepository)(nil)
)
