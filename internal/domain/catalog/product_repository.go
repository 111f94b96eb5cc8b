package catalog

import (
	"context"

	"github.com/stockroom/backend/internal/domain/shared"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	Category string
	Active   *bool
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// ExistsBySKU checks whether a product with the SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
