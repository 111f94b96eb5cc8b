package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU          string           `json:"sku" binding:"required,min=1,max=50"`
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Category     string           `json:"category" binding:"max=100"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Unit         string           `json:"unit_of_measure" binding:"max=20"`
	ReorderLevel int64            `json:"reorder_level" binding:"min=0"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields keep their current value.
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Unit         *string          `json:"unit_of_measure" binding:"omitempty,max=20"`
	ReorderLevel *int64           `json:"reorder_level" binding:"omitempty,min=0"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name sku category unit_price created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Unit         string          `json:"unit_of_measure"`
	ReorderLevel int64           `json:"reorder_level"`
	Active       bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		UnitPrice:    p.UnitPrice,
		Unit:         p.Unit,
		ReorderLevel: p.ReorderLevel,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
