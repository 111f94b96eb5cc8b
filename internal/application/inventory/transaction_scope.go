package inventory

import (
	"context"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/order"
	"github.com/stockroom/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the ledger repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error or panics, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a transaction.
// All repositories returned share the same underlying database transaction.
type TransactionalRepositories interface {
	StockRepo() inventory.StockEntryRepository
	AdjustmentRepo() inventory.AdjustmentRepository
	MovementRepo() inventory.MovementRepository
	OrderRepo() order.Repository
	ProductRepo() catalog.ProductRepository
	WarehouseRepo() warehouse.Repository
}

// NewLedger builds a stock ledger over the repositories of one transaction
func NewLedger(repos TransactionalRepositories) *inventory.Ledger {
	return inventory.NewLedger(repos.StockRepo(), repos.AdjustmentRepo(), repos.MovementRepo())
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	Stock       inventory.StockEntryRepository
	Adjustments inventory.AdjustmentRepository
	Movements   inventory.MovementRepository
	Orders      order.Repository
	Products    catalog.ProductRepository
	Warehouses  warehouse.Repository
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StockRepo() inventory.StockEntryRepository      { return s.Stock }
func (s *NoOpTransactionScope) AdjustmentRepo() inventory.AdjustmentRepository { return s.Adjustments }
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository     { return s.Movements }
func (s *NoOpTransactionScope) OrderRepo() order.Repository                    { return s.Orders }
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository         { return s.Products }
func (s *NoOpTransactionScope) WarehouseRepo() warehouse.Repository            { return s.Warehouses }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
