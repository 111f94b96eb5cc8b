package inventory

import (
	"context"
)

// StockEntryRepository defines the interface for stock entry persistence
type StockEntryRepository interface {
	// FindByKey finds the entry for a product/warehouse pair
	FindByKey(ctx context.Context, productID, warehouseID int64) (*StockEntry, error)

	// FindByKeyForUpdate finds the entry and holds a row lock until the surrounding
	// transaction ends. Must be called inside a transaction.
	FindByKeyForUpdate(ctx context.Context, productID, warehouseID int64) (*StockEntry, error)

	// ExistsByKey reports whether the pair already has an entry
	ExistsByKey(ctx context.Context, productID, warehouseID int64) (bool, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *StockEntry) error

	// FindViews returns entries joined with product and warehouse display fields
	FindViews(ctx context.Context, filter StockFilter) ([]StockView, error)
}

// AdjustmentRepository persists adjustment audit records. Records are never updated.
type AdjustmentRepository interface {
	Create(ctx context.Context, adjustment *Adjustment) error
	FindByID(ctx context.Context, id int64) (*Adjustment, error)
}

// MovementRepository persists the stock movement journal
type MovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, error)
}
