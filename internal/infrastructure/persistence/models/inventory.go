package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/inventory"
)

// StockEntryModel is the persistence model for a (product, warehouse) stock entry.
type StockEntryModel struct {
	BaseModel
	ProductID        int64 `gorm:"not null;uniqueIndex:idx_inventory_product_warehouse,priority:1"`
	WarehouseID      int64 `gorm:"not null;uniqueIndex:idx_inventory_product_warehouse,priority:2;index"`
	Quantity         int64 `gorm:"not null;default:0;check:chk_inventory_quantity,quantity >= 0"`
	ReservedQuantity int64 `gorm:"not null;default:0;check:chk_inventory_reserved,reserved_quantity >= 0"`
}

// TableName returns the table name for GORM
func (StockEntryModel) TableName() string {
	return "inventory"
}

// ToDomain converts the persistence model to a domain StockEntry.
func (m *StockEntryModel) ToDomain() *inventory.StockEntry {
	return &inventory.StockEntry{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		OnHand:      m.Quantity,
		Reserved:    m.ReservedQuantity,
	}
}

// FromDomain populates the persistence model from a domain StockEntry.
func (m *StockEntryModel) FromDomain(e *inventory.StockEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ProductID = e.ProductID
	m.WarehouseID = e.WarehouseID
	m.Quantity = e.OnHand
	m.ReservedQuantity = e.Reserved
}

// StockEntryModelFromDomain creates a new persistence model from a domain StockEntry.
func StockEntryModelFromDomain(e *inventory.StockEntry) *StockEntryModel {
	m := &StockEntryModel{}
	m.FromDomain(e)
	return m
}

// AdjustmentModel is the persistence model for the adjustment audit trail.
type AdjustmentModel struct {
	BaseModel
	ProductID        int64  `gorm:"not null;index"`
	WarehouseID      int64  `gorm:"not null;index"`
	QuantityChange   int64  `gorm:"not null"`
	Reason           string `gorm:"type:varchar(20);not null"`
	Notes            string `gorm:"type:text"`
	CreatedBy        string `gorm:"type:varchar(100)"`
	PreviousQuantity int64  `gorm:"not null"`
	NewQuantity      int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AdjustmentModel) TableName() string {
	return "inventory_adjustments"
}

// ToDomain converts the persistence model to a domain Adjustment.
func (m *AdjustmentModel) ToDomain() *inventory.Adjustment {
	return &inventory.Adjustment{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		QuantityChange: m.QuantityChange,
		Reason:         inventory.AdjustmentReason(m.Reason),
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		PreviousOnHand: m.PreviousQuantity,
		NewOnHand:      m.NewQuantity,
	}
}

// AdjustmentModelFromDomain creates a new persistence model from a domain Adjustment.
func AdjustmentModelFromDomain(a *inventory.Adjustment) *AdjustmentModel {
	m := &AdjustmentModel{
		ProductID:        a.ProductID,
		WarehouseID:      a.WarehouseID,
		QuantityChange:   a.QuantityChange,
		Reason:           a.Reason.String(),
		Notes:            a.Notes,
		CreatedBy:        a.CreatedBy,
		PreviousQuantity: a.PreviousOnHand,
		NewQuantity:      a.NewOnHand,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// StockMovementModel is the persistence model for the stock movement journal.
// Rows are append-only, so there is no updated_at.
type StockMovementModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	ProductID    int64     `gorm:"not null;index:idx_stock_movements_product_created,priority:1"`
	WarehouseID  int64     `gorm:"not null;index"`
	MovementType string    `gorm:"type:varchar(20);not null;index"`
	Quantity     int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	Reference    string    `gorm:"type:varchar(50)"`
	CreatedAt    time.Time `gorm:"not null;index:idx_stock_movements_product_created,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement.
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		ID:           m.ID,
		ProductID:    m.ProductID,
		WarehouseID:  m.WarehouseID,
		Type:         inventory.MovementType(m.MovementType),
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		Reference:    m.Reference,
		CreatedAt:    m.CreatedAt,
	}
}

// StockMovementModelFromDomain creates a new persistence model from a domain StockMovement.
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	return &StockMovementModel{
		ID:           mv.ID,
		ProductID:    mv.ProductID,
		WarehouseID:  mv.WarehouseID,
		MovementType: string(mv.Type),
		Quantity:     mv.Quantity,
		BalanceAfter: mv.BalanceAfter,
		Reference:    mv.Reference,
		CreatedAt:    mv.CreatedAt,
	}
}

// StockViewRow is the scan target of the inventory/products/warehouses join.
type StockViewRow struct {
	InventoryID      int64
	ProductID        int64
	ProductName      string
	SKU              string
	Category         string
	UnitPrice        decimal.Decimal
	UnitOfMeasure    string
	ReorderLevel     int64
	WarehouseID      int64
	WarehouseName    string
	Location         string
	Quantity         int64
	ReservedQuantity int64
	UpdatedAt        time.Time
}

// ToDomain converts the row into a domain StockView.
func (r *StockViewRow) ToDomain() inventory.StockView {
	return inventory.StockView{
		InventoryID:   r.InventoryID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		SKU:           r.SKU,
		Category:      r.Category,
		UnitPrice:     r.UnitPrice,
		Unit:          r.UnitOfMeasure,
		ReorderLevel:  r.ReorderLevel,
		WarehouseID:   r.WarehouseID,
		WarehouseName: r.WarehouseName,
		Location:      r.Location,
		OnHand:        r.Quantity,
		Reserved:      r.ReservedQuantity,
		UpdatedAt:     r.UpdatedAt,
	}
}
