package warehouse

import (
	"time"

	"github.com/stockroom/backend/internal/domain/warehouse"
)

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Location string `json:"location" binding:"max=200"`
	Capacity int64  `json:"capacity" binding:"min=0"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Location string `json:"location" binding:"max=200"`
	Capacity int64  `json:"capacity" binding:"min=0"`
}

// WarehouseListFilter represents filter options for warehouse list
type WarehouseListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int64     `json:"capacity"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a domain Warehouse to WarehouseResponse
func ToWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
