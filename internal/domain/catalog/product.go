package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// DefaultUnit is used when a product is created without a unit of measure
const DefaultUnit = "pcs"

// Product represents a stock keeping unit in the catalog
type Product struct {
	shared.BaseEntity
	SKU          string
	Name         string
	Category     string
	UnitPrice    decimal.Decimal
	Unit         string
	ReorderLevel int64
	Active       bool
}

// NewProduct creates a new active product
func NewProduct(sku, name, category, unit string, unitPrice decimal.Decimal, reorderLevel int64) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePricing(unitPrice, reorderLevel); err != nil {
		return nil, err
	}
	if unit == "" {
		unit = DefaultUnit
	}

	return &Product{
		BaseEntity:   shared.NewBaseEntity(),
		SKU:          strings.ToUpper(strings.TrimSpace(sku)),
		Name:         strings.TrimSpace(name),
		Category:     strings.TrimSpace(category),
		UnitPrice:    unitPrice,
		Unit:         unit,
		ReorderLevel: reorderLevel,
		Active:       true,
	}, nil
}

// Update replaces the product's descriptive fields. The SKU is immutable.
func (p *Product) Update(name, category, unit string, unitPrice decimal.Decimal, reorderLevel int64) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validatePricing(unitPrice, reorderLevel); err != nil {
		return err
	}
	if unit == "" {
		unit = p.Unit
	}

	p.Name = strings.TrimSpace(name)
	p.Category = strings.TrimSpace(category)
	p.Unit = unit
	p.UnitPrice = unitPrice
	p.ReorderLevel = reorderLevel
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	return nil
}

// Activate restores a soft-deleted product
func (p *Product) Activate() error {
	if p.Active {
		return shared.NewDomainError("INVALID_STATE", "Product is already active")
	}
	p.Active = true
	p.UpdatedAt = time.Now()
	return nil
}

// StockValue returns the value of the given quantity at the product's unit price
func (p *Product) StockValue(quantity int64) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(quantity))
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_INPUT", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_INPUT", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePricing(unitPrice decimal.Decimal, reorderLevel int64) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if reorderLevel < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Reorder level cannot be negative")
	}
	return nil
}
