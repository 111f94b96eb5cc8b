package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// OpenStockRequest represents a request to open a stock entry for a product/warehouse pair
type OpenStockRequest struct {
	ProductID   int64 `json:"product_id" binding:"required,min=1"`
	WarehouseID int64 `json:"warehouse_id" binding:"required,min=1"`
	Quantity    int64 `json:"quantity" binding:"min=0"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	ProductID      int64  `json:"product_id" binding:"required,min=1"`
	WarehouseID    int64  `json:"warehouse_id" binding:"required,min=1"`
	QuantityChange int64  `json:"quantity_change" binding:"required"`
	Reason         string `json:"reason" binding:"required,oneof=correction damaged lost found expired other"`
	Notes          string `json:"notes" binding:"max=1000"`
	CreatedBy      string `json:"created_by" binding:"max=100"`
}

// SetReservedRequest replaces the reserved quantity of a stock entry
type SetReservedRequest struct {
	ProductID        int64 `json:"product_id" binding:"required,min=1"`
	WarehouseID      int64 `json:"warehouse_id" binding:"required,min=1"`
	ReservedQuantity int64 `json:"reserved_quantity" binding:"min=0"`
}

// InventoryListFilter represents filter options for the inventory list
type InventoryListFilter struct {
	WarehouseID int64  `form:"warehouse_id" binding:"omitempty,min=1"`
	ProductID   int64  `form:"product_id" binding:"omitempty,min=1"`
	Category    string `form:"category"`
	Status      string `form:"status" binding:"omitempty,oneof=in_stock low_stock out_of_stock"`
}

// MovementListFilter represents filter options for movement history
type MovementListFilter struct {
	ProductID    int64      `form:"product_id" binding:"omitempty,min=1"`
	WarehouseID  int64      `form:"warehouse_id" binding:"omitempty,min=1"`
	MovementType string     `form:"movement_type" binding:"omitempty,oneof=opening receipt delivery transfer_in transfer_out adjustment"`
	StartDate    *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate      *time.Time `form:"end_date" time_format:"2006-01-02"`
	Limit        int        `form:"limit" binding:"omitempty,min=1,max=500"`
}

// StockEntryResponse represents a stock entry in API responses
type StockEntryResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	WarehouseID int64     `json:"warehouse_id"`
	OnHand      int64     `json:"quantity"`
	Reserved    int64     `json:"reserved_quantity"`
	Available   int64     `json:"available_quantity"`
	UpdatedAt   time.Time `json:"last_updated"`
}

// StockViewResponse is a stock entry joined with product and warehouse display fields
type StockViewResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Unit          string          `json:"unit_of_measure"`
	ReorderLevel  int64           `json:"reorder_level"`
	WarehouseID   int64           `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Location      string          `json:"location"`
	OnHand        int64           `json:"quantity"`
	Reserved      int64           `json:"reserved_quantity"`
	Available     int64           `json:"available_quantity"`
	StockValue    decimal.Decimal `json:"stock_value"`
	StockStatus   string          `json:"stock_status"`
	UpdatedAt     time.Time       `json:"last_updated"`
}

// AdjustmentResponse represents an adjustment record
type AdjustmentResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	WarehouseID    int64     `json:"warehouse_id"`
	QuantityChange int64     `json:"quantity_change"`
	Reason         string    `json:"reason"`
	Notes          string    `json:"notes"`
	CreatedBy      string    `json:"created_by"`
	PreviousOnHand int64     `json:"previous_quantity"`
	NewOnHand      int64     `json:"new_quantity"`
	CreatedAt      time.Time `json:"created_at"`
}

// AdjustmentResult is returned by a successful adjustment
type AdjustmentResult struct {
	Adjustment AdjustmentResponse `json:"adjustment"`
	Inventory  StockEntryResponse `json:"inventory"`
	Difference int64              `json:"difference"`
}

// StatisticsResponse aggregates stock over active products and warehouses
type StatisticsResponse struct {
	TotalProducts   int64           `json:"total_products"`
	TotalWarehouses int64           `json:"total_warehouses"`
	TotalStockUnits int64           `json:"total_stock_units"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	LowStockCount   int64           `json:"low_stock_count"`
	InStockCount    int64           `json:"in_stock_count"`
}

// ProductSummaryResponse totals one product across warehouses
type ProductSummaryResponse struct {
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	SKU            string          `json:"sku"`
	Category       string          `json:"category"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Unit           string          `json:"unit_of_measure"`
	ReorderLevel   int64           `json:"reorder_level"`
	TotalQuantity  int64           `json:"total_quantity"`
	TotalReserved  int64           `json:"total_reserved"`
	TotalAvailable int64           `json:"total_available"`
	TotalValue     decimal.Decimal `json:"total_value"`
	StockStatus    string          `json:"stock_status"`
	WarehouseCount int64           `json:"warehouse_count"`
}

// AlertResponse flags a low or out-of-stock entry
type AlertResponse struct {
	StockViewResponse
	AlertType string `json:"alert_type"`
}

// MovementResponse represents a stock movement journal row
type MovementResponse struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	WarehouseID  int64     `json:"warehouse_id"`
	MovementType string    `json:"movement_type"`
	Quantity     int64     `json:"quantity"`
	BalanceAfter int64     `json:"balance_after"`
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToStockEntryResponse converts a domain StockEntry to StockEntryResponse
func ToStockEntryResponse(e *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		WarehouseID: e.WarehouseID,
		OnHand:      e.OnHand,
		Reserved:    e.Reserved,
		Available:   e.Available(),
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToStockViewResponse converts a StockView to StockViewResponse
func ToStockViewResponse(v inventory.StockView) StockViewResponse {
	return StockViewResponse{
		ID:            v.InventoryID,
		ProductID:     v.ProductID,
		ProductName:   v.ProductName,
		SKU:           v.SKU,
		Category:      v.Category,
		UnitPrice:     v.UnitPrice,
		Unit:          v.Unit,
		ReorderLevel:  v.ReorderLevel,
		WarehouseID:   v.WarehouseID,
		WarehouseName: v.WarehouseName,
		Location:      v.Location,
		OnHand:        v.OnHand,
		Reserved:      v.Reserved,
		Available:     v.Available(),
		StockValue:    v.StockValue(),
		StockStatus:   v.Status().String(),
		UpdatedAt:     v.UpdatedAt,
	}
}

// ToStockViewResponses converts a slice of views
func ToStockViewResponses(views []inventory.StockView) []StockViewResponse {
	out := make([]StockViewResponse, len(views))
	for i, v := range views {
		out[i] = ToStockViewResponse(v)
	}
	return out
}

// ToAdjustmentResponse converts a domain Adjustment to AdjustmentResponse
func ToAdjustmentResponse(a *inventory.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		WarehouseID:    a.WarehouseID,
		QuantityChange: a.QuantityChange,
		Reason:         a.Reason.String(),
		Notes:          a.Notes,
		CreatedBy:      a.CreatedBy,
		PreviousOnHand: a.PreviousOnHand,
		NewOnHand:      a.NewOnHand,
		CreatedAt:      a.CreatedAt,
	}
}

// ToStatisticsResponse converts domain statistics
func ToStatisticsResponse(s inventory.StockStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalProducts:   s.TotalProducts,
		TotalWarehouses: s.TotalWarehouses,
		TotalStockUnits: s.TotalStockUnits,
		TotalStockValue: s.TotalStockValue,
		OutOfStockCount: s.OutOfStockCount,
		LowStockCount:   s.LowStockCount,
		InStockCount:    s.InStockCount,
	}
}

// ToMovementResponse converts a journal row
func ToMovementResponse(m inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		WarehouseID:  m.WarehouseID,
		MovementType: string(m.Type),
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		Reference:    m.Reference,
		CreatedAt:    m.CreatedAt,
	}
}
