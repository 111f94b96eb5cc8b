package warehouse

import (
	"strings"
	"time"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Warehouse is a physical stock location
type Warehouse struct {
	shared.BaseEntity
	Name     string
	Location string
	Capacity int64 // total capacity in units, 0 means unbounded
	Active   bool
}

// NewWarehouse creates a new active warehouse
func NewWarehouse(name, location string, capacity int64) (*Warehouse, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse capacity cannot be negative")
	}

	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Location:   strings.TrimSpace(location),
		Capacity:   capacity,
		Active:     true,
	}, nil
}

// Update replaces the warehouse's descriptive fields
func (w *Warehouse) Update(name, location string, capacity int64) error {
	if err := validateName(name); err != nil {
		return err
	}
	if capacity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse capacity cannot be negative")
	}
	w.Name = strings.TrimSpace(name)
	w.Location = strings.TrimSpace(location)
	w.Capacity = capacity
	w.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the warehouse
func (w *Warehouse) Deactivate() error {
	if !w.Active {
		return shared.NewDomainError("INVALID_STATE", "Warehouse is already inactive")
	}
	w.Active = false
	w.UpdatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot exceed 100 characters")
	}
	return nil
}
