package models

import (
	"github.com/stockroom/backend/internal/domain/warehouse"
)

// WarehouseModel is the persistence model for the Warehouse entity.
type WarehouseModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	Location string `gorm:"type:varchar(500)"`
	Capacity int64  `gorm:"not null;default:0"`
	IsActive bool   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse entity.
func (m *WarehouseModel) ToDomain() *warehouse.Warehouse {
	return &warehouse.Warehouse{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Location:   m.Location,
		Capacity:   m.Capacity,
		Active:     m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Warehouse entity.
func (m *WarehouseModel) FromDomain(w *warehouse.Warehouse) {
	m.FromDomainBaseEntity(w.BaseEntity)
	m.Name = w.Name
	m.Location = w.Location
	m.Capacity = w.Capacity
	m.IsActive = w.Active
}

// WarehouseModelFromDomain creates a new persistence model from a domain Warehouse entity.
func WarehouseModelFromDomain(w *warehouse.Warehouse) *WarehouseModel {
	m := &WarehouseModel{}
	m.FromDomain(w)
	return m
}
