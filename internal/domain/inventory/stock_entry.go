package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// StockEntry holds the quantities of one product at one warehouse.
// The composite identifier is ProductID + WarehouseID.
//
// Invariants: 0 <= Reserved <= OnHand.
type StockEntry struct {
	shared.BaseEntity
	ProductID   int64
	WarehouseID int64
	OnHand      int64
	Reserved    int64
}

// NewStockEntry opens a stock entry for a product/warehouse pair
func NewStockEntry(productID, warehouseID, onHand int64) (*StockEntry, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID is required")
	}
	if warehouseID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse ID is required")
	}
	if onHand < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initial quantity cannot be negative")
	}

	return &StockEntry{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      onHand,
	}, nil
}

// Available returns the quantity not committed to outstanding orders
func (s *StockEntry) Available() int64 {
	return s.OnHand - s.Reserved
}

// Credit increases the on-hand quantity
func (s *StockEntry) Credit(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if quantity > math.MaxInt64-s.OnHand {
		return s.overflow(quantity)
	}
	s.OnHand += quantity
	s.UpdatedAt = time.Now()
	return nil
}

// Debit decreases the on-hand quantity. Reserved units cannot leave.
func (s *StockEntry) Debit(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if s.OnHand-quantity < s.Reserved {
		return s.insufficient(-quantity)
	}
	s.OnHand -= quantity
	s.UpdatedAt = time.Now()
	return nil
}

// ApplyDelta shifts the on-hand quantity by a signed delta.
// The entry is left untouched when the result would be negative or below the reserved quantity.
func (s *StockEntry) ApplyDelta(delta int64) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity change cannot be zero")
	}
	if delta > 0 && delta > math.MaxInt64-s.OnHand {
		return s.overflow(delta)
	}
	if s.OnHand+delta < s.Reserved {
		return s.insufficient(delta)
	}
	s.OnHand += delta
	s.UpdatedAt = time.Now()
	return nil
}

// SetReserved replaces the reserved quantity
func (s *StockEntry) SetReserved(reserved int64) error {
	if reserved < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Reserved quantity cannot be negative")
	}
	if reserved > s.OnHand {
		return &shared.DomainError{
			Code:    shared.ErrInvalidState.Code,
			Message: fmt.Sprintf("Reserved quantity %d exceeds on-hand quantity %d", reserved, s.OnHand),
			Details: map[string]any{
				"on_hand":  s.OnHand,
				"reserved": reserved,
			},
		}
	}
	s.Reserved = reserved
	s.UpdatedAt = time.Now()
	return nil
}

// Status classifies the entry against a reorder level
func (s *StockEntry) Status(reorderLevel int64) StockStatus {
	return ClassifyStock(s.OnHand, reorderLevel)
}

func (s *StockEntry) overflow(delta int64) *shared.DomainError {
	return &shared.DomainError{
		Code:    shared.ErrInvalidInput.Code,
		Message: fmt.Sprintf("Cannot change stock by %d: on hand is %d and the result is out of range", delta, s.OnHand),
		Details: map[string]any{
			"product_id":   s.ProductID,
			"warehouse_id": s.WarehouseID,
			"on_hand":      s.OnHand,
			"requested":    delta,
		},
	}
}

func (s *StockEntry) insufficient(delta int64) *shared.DomainError {
	return &shared.DomainError{
		Code: shared.ErrInsufficientStock.Code,
		Message: fmt.Sprintf(
			"Cannot change stock by %d: on hand is %d with %d reserved, result would be %d",
			delta, s.OnHand, s.Reserved, s.OnHand+delta),
		Details: map[string]any{
			"product_id":   s.ProductID,
			"warehouse_id": s.WarehouseID,
			"on_hand":      s.OnHand,
			"reserved":     s.Reserved,
			"requested":    delta,
		},
	}
}
