package inventory

import (
	"time"
)

// MovementType identifies what caused an on-hand change
type MovementType string

const (
	MovementTypeOpening     MovementType = "opening"
	MovementTypeReceipt     MovementType = "receipt"
	MovementTypeDelivery    MovementType = "delivery"
	MovementTypeTransferIn  MovementType = "transfer_in"
	MovementTypeTransferOut MovementType = "transfer_out"
	MovementTypeAdjustment  MovementType = "adjustment"
)

// IsValid checks if the movement type is a known value
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeOpening, MovementTypeReceipt, MovementTypeDelivery,
		MovementTypeTransferIn, MovementTypeTransferOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// MovementSource describes the document behind a ledger mutation
type MovementSource struct {
	Type      MovementType
	Reference string
}

// StockMovement is an append-only journal row written for every on-hand change
type StockMovement struct {
	ID           int64
	ProductID    int64
	WarehouseID  int64
	Type         MovementType
	Quantity     int64 // signed
	BalanceAfter int64
	Reference    string
	CreatedAt    time.Time
}

// NewStockMovement records the state of entry after a signed change
func NewStockMovement(entry *StockEntry, quantity int64, source MovementSource) *StockMovement {
	return &StockMovement{
		ProductID:    entry.ProductID,
		WarehouseID:  entry.WarehouseID,
		Type:         source.Type,
		Quantity:     quantity,
		BalanceAfter: entry.OnHand,
		Reference:    source.Reference,
		CreatedAt:    time.Now(),
	}
}
