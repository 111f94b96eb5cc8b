package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// LineItem is one requested quantity of a product at a warehouse
type LineItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	WarehouseID int64
	Quantity    int64
	CreatedAt   time.Time
}

// Order is a receipt, delivery or transfer document.
// Its ledger effect is applied exactly once, on the ready to done transition.
type Order struct {
	shared.BaseEntity
	Kind         Kind
	Counterparty string // vendor for receipts, customer for deliveries
	Responsible  string
	ScheduleDate *time.Time
	// Transfers only: every line leaves SourceWarehouseID for DestinationWarehouseID
	SourceWarehouseID      int64
	DestinationWarehouseID int64
	Status                 Status
	Lines                  []LineItem
	DoneAt                 *time.Time
}

// NewOrder creates a draft receipt or delivery
func NewOrder(kind Kind, counterparty, responsible string, scheduleDate *time.Time) (*Order, error) {
	if kind != KindReceipt && kind != KindDelivery {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order kind: "+string(kind))
	}
	if len(counterparty) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Counterparty cannot exceed 200 characters")
	}
	return newOrder(kind, counterparty, responsible, scheduleDate), nil
}

// NewTransfer creates a draft transfer between two warehouses
func NewTransfer(sourceWarehouseID, destinationWarehouseID int64, responsible string, scheduleDate *time.Time) (*Order, error) {
	if sourceWarehouseID <= 0 || destinationWarehouseID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer requires source and destination warehouses")
	}
	if sourceWarehouseID == destinationWarehouseID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination warehouse must differ")
	}
	o := newOrder(KindTransfer, "", responsible, scheduleDate)
	o.SourceWarehouseID = sourceWarehouseID
	o.DestinationWarehouseID = destinationWarehouseID
	return o, nil
}

func newOrder(kind Kind, counterparty, responsible string, scheduleDate *time.Time) *Order {
	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		Kind:         kind,
		Counterparty: strings.TrimSpace(counterparty),
		Responsible:  strings.TrimSpace(responsible),
		ScheduleDate: scheduleDate,
		Status:       StatusDraft,
		Lines:        make([]LineItem, 0),
	}
}

// Reference returns the display label, e.g. WH/IN/0001
func (o *Order) Reference() string {
	return Reference(o.Kind, o.ID)
}

// Reference formats a label from a kind and id. Ids wider than four digits print in full.
func Reference(kind Kind, id int64) string {
	return fmt.Sprintf("%s%04d", kind.ReferencePrefix(), id)
}

// AddLine appends a line item. Lines can be added while the order is draft or ready.
// Transfer lines always draw from the source warehouse; a zero warehouseID selects it.
func (o *Order) AddLine(productID, warehouseID, quantity int64) (*LineItem, error) {
	if o.Kind == KindTransfer && warehouseID == 0 {
		warehouseID = o.SourceWarehouseID
	}
	if !o.Status.AcceptsLines() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot add items to order %s in %s status", o.Reference(), o.Status))
	}
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID is required")
	}
	if warehouseID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse ID is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if o.Kind == KindTransfer && warehouseID != o.SourceWarehouseID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer lines must use the source warehouse")
	}

	now := time.Now()
	o.Lines = append(o.Lines, LineItem{
		OrderID:     o.ID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		CreatedAt:   now,
	})
	o.UpdatedAt = now
	return &o.Lines[len(o.Lines)-1], nil
}

// TotalQuantity sums the quantities of all lines
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

// Postings returns the ledger changes that completing the order applies
func (o *Order) Postings() []inventory.Posting {
	out, in := o.Kind.movementTypes()
	postings := make([]inventory.Posting, 0, len(o.Lines)*2)
	for _, l := range o.Lines {
		switch o.Kind {
		case KindReceipt:
			postings = append(postings, inventory.Posting{
				ProductID: l.ProductID, WarehouseID: l.WarehouseID, Quantity: l.Quantity, Type: in,
			})
		case KindDelivery:
			postings = append(postings, inventory.Posting{
				ProductID: l.ProductID, WarehouseID: l.WarehouseID, Quantity: -l.Quantity, Type: out,
			})
		case KindTransfer:
			postings = append(postings,
				inventory.Posting{ProductID: l.ProductID, WarehouseID: l.WarehouseID, Quantity: -l.Quantity, Type: out},
				inventory.Posting{ProductID: l.ProductID, WarehouseID: o.DestinationWarehouseID, Quantity: l.Quantity, Type: in},
			)
		}
	}
	return postings
}

// PostFunc applies an order's postings to the stock ledger
type PostFunc func(reference string, postings []inventory.Posting) error

// Advance moves the order exactly one step along draft, ready, done.
//
// Leaving draft requires at least one line. Entering done calls post with the
// order's postings first; if post fails the status is left unchanged. Advancing
// a done order does nothing and post is not called. The returned bool reports
// whether the status changed.
func (o *Order) Advance(post PostFunc) (bool, error) {
	if o.Status.IsTerminal() {
		return false, nil
	}

	next := o.Status.Next()
	if !o.Status.CanTransitionTo(next) {
		return false, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot advance order in %s status", o.Status))
	}
	if len(o.Lines) == 0 {
		return false, shared.ErrEmptyOrder
	}

	now := time.Now()
	if next == StatusDone {
		if post == nil {
			return false, shared.NewDomainError("INVALID_STATE", "No ledger to post order to")
		}
		if err := post(o.Reference(), o.Postings()); err != nil {
			return false, err
		}
		o.DoneAt = &now
	}

	o.Status = next
	o.UpdatedAt = now
	return true, nil
}
