package order

import (
	"context"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Filter narrows order listings
type Filter struct {
	shared.Filter
	Kind   Kind
	Status Status
}

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order with its lines
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindByIDForUpdate finds an order with its lines and locks the order row
	// until the surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id int64) (*Order, error)

	// FindAll finds orders matching the filter, lines included
	FindAll(ctx context.Context, filter Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter Filter) (int64, error)

	// Save creates or updates the order header and inserts lines that have no ID yet
	Save(ctx context.Context, order *Order) error
}
