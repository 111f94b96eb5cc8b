package warehouse

import (
	"context"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Filter narrows warehouse listings
type Filter struct {
	shared.Filter
	Active *bool
}

// Repository defines the interface for warehouse persistence
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Warehouse, error)
	FindAll(ctx context.Context, filter Filter) ([]Warehouse, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Save(ctx context.Context, w *Warehouse) error
}
