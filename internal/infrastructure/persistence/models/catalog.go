package models

import (
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	SKU          string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_sku"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Category     string          `gorm:"type:varchar(100);index"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Unit         string          `gorm:"column:unit_of_measure;type:varchar(20);not null"`
	ReorderLevel int64           `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:   m.BaseModel.ToDomain(),
		SKU:          m.SKU,
		Name:         m.Name,
		Category:     m.Category,
		UnitPrice:    m.UnitPrice,
		Unit:         m.Unit,
		ReorderLevel: m.ReorderLevel,
		Active:       m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Category = p.Category
	m.UnitPrice = p.UnitPrice
	m.Unit = p.Unit
	m.ReorderLevel = p.ReorderLevel
	m.IsActive = p.Active
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
