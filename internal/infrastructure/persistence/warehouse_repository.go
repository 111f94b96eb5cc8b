package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/warehouse"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements warehouse.Repository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id int64) (*warehouse.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter warehouse.Filter) ([]warehouse.Warehouse, error) {
	var rows []models.WarehouseModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.WarehouseModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = warehouseSort.apply(query, filter.OrderBy, filter.OrderDir)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	warehouses := make([]warehouse.Warehouse, len(rows))
	for i := range rows {
		warehouses[i] = *rows[i].ToDomain()
	}
	return warehouses, nil
}

// Count counts warehouses matching the filter
func (r *GormWarehouseRepository) Count(ctx context.Context, filter warehouse.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.WarehouseModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, w *warehouse.Warehouse) error {
	model := models.WarehouseModelFromDomain(w)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return err
	}
	w.ID = model.ID
	return nil
}

func (r *GormWarehouseRepository) applyFilterWithoutPagination(query *gorm.DB, filter warehouse.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	return query
}
