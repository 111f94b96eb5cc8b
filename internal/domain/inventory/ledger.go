package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Ledger applies quantity mutations to stock entries and journals them.
// Every method locks the entry it touches, so callers must run it inside a
// transaction and treat any returned error as a reason to roll back.
type Ledger struct {
	stock       StockEntryRepository
	adjustments AdjustmentRepository
	movements   MovementRepository
}

// NewLedger creates a Ledger over transaction-bound repositories
func NewLedger(stock StockEntryRepository, adjustments AdjustmentRepository, movements MovementRepository) *Ledger {
	return &Ledger{
		stock:       stock,
		adjustments: adjustments,
		movements:   movements,
	}
}

// Get returns the entry for a pair without locking it
func (l *Ledger) Get(ctx context.Context, productID, warehouseID int64) (*StockEntry, error) {
	return l.stock.FindByKey(ctx, productID, warehouseID)
}

// Open creates the entry for a pair with an initial on-hand quantity
func (l *Ledger) Open(ctx context.Context, productID, warehouseID, quantity int64) (*StockEntry, error) {
	exists, err := l.stock.ExistsByKey(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Stock entry for product %d in warehouse %d already exists", productID, warehouseID))
	}

	entry, err := NewStockEntry(productID, warehouseID, quantity)
	if err != nil {
		return nil, err
	}
	if err := l.stock.Save(ctx, entry); err != nil {
		return nil, err
	}
	if quantity > 0 {
		if err := l.journal(ctx, entry, quantity, MovementSource{Type: MovementTypeOpening}); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// Credit adds quantity to an existing entry
func (l *Ledger) Credit(ctx context.Context, productID, warehouseID, quantity int64, source MovementSource) (*StockEntry, error) {
	entry, err := l.stock.FindByKeyForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := entry.Credit(quantity); err != nil {
		return nil, err
	}
	if err := l.stock.Save(ctx, entry); err != nil {
		return nil, err
	}
	if err := l.journal(ctx, entry, quantity, source); err != nil {
		return nil, err
	}
	return entry, nil
}

// Debit removes quantity from an existing entry.
// Only available units can leave: a debit that would take on hand below the
// reserved quantity fails with ErrInsufficientStock even when on hand covers it.
func (l *Ledger) Debit(ctx context.Context, productID, warehouseID, quantity int64, source MovementSource) (*StockEntry, error) {
	entry, err := l.stock.FindByKeyForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := entry.Debit(quantity); err != nil {
		return nil, err
	}
	if err := l.stock.Save(ctx, entry); err != nil {
		return nil, err
	}
	if err := l.journal(ctx, entry, -quantity, source); err != nil {
		return nil, err
	}
	return entry, nil
}

// AdjustCommand describes a manual correction
type AdjustCommand struct {
	ProductID   int64
	WarehouseID int64
	Delta       int64
	Reason      AdjustmentReason
	Notes       string
	CreatedBy   string
}

// Adjust applies a signed correction and writes its audit record
func (l *Ledger) Adjust(ctx context.Context, cmd AdjustCommand) (*Adjustment, *StockEntry, error) {
	entry, err := l.stock.FindByKeyForUpdate(ctx, cmd.ProductID, cmd.WarehouseID)
	if err != nil {
		return nil, nil, err
	}

	adjustment, err := NewAdjustment(entry, cmd.Delta, cmd.Reason, cmd.Notes, cmd.CreatedBy)
	if err != nil {
		return nil, nil, err
	}
	if err := entry.ApplyDelta(cmd.Delta); err != nil {
		return nil, nil, err
	}

	if err := l.adjustments.Create(ctx, adjustment); err != nil {
		return nil, nil, err
	}
	if err := l.stock.Save(ctx, entry); err != nil {
		return nil, nil, err
	}
	source := MovementSource{
		Type:      MovementTypeAdjustment,
		Reference: "ADJ/" + strconv.FormatInt(adjustment.ID, 10),
	}
	if err := l.journal(ctx, entry, cmd.Delta, source); err != nil {
		return nil, nil, err
	}
	return adjustment, entry, nil
}

// SetReserved replaces the reserved quantity of an entry
func (l *Ledger) SetReserved(ctx context.Context, productID, warehouseID, reserved int64) (*StockEntry, error) {
	entry, err := l.stock.FindByKeyForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := entry.SetReserved(reserved); err != nil {
		return nil, err
	}
	if err := l.stock.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Posting is one signed quantity change against a pair
type Posting struct {
	ProductID   int64
	WarehouseID int64
	Quantity    int64 // positive credits, negative debits
	Type        MovementType
}

// Post applies several postings as one unit. Postings are applied in ascending
// (product, warehouse) order so concurrent callers lock rows in the same order.
// On error the caller's transaction must be rolled back; no partial state is valid.
func (l *Ledger) Post(ctx context.Context, reference string, postings []Posting) error {
	ordered := make([]Posting, len(postings))
	copy(ordered, postings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ProductID != ordered[j].ProductID {
			return ordered[i].ProductID < ordered[j].ProductID
		}
		return ordered[i].WarehouseID < ordered[j].WarehouseID
	})

	for _, p := range ordered {
		source := MovementSource{Type: p.Type, Reference: reference}
		var err error
		switch {
		case p.Quantity > 0:
			_, err = l.Credit(ctx, p.ProductID, p.WarehouseID, p.Quantity, source)
		case p.Quantity < 0:
			_, err = l.Debit(ctx, p.ProductID, p.WarehouseID, -p.Quantity, source)
		default:
			err = shared.NewDomainError("INVALID_INPUT", "Posting quantity cannot be zero")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) journal(ctx context.Context, entry *StockEntry, quantity int64, source MovementSource) error {
	if l.movements == nil {
		return nil
	}
	return l.movements.Create(ctx, NewStockMovement(entry, quantity, source))
}
