package persistence

import (
	"context"
	"errors"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// Create inserts an adjustment record and assigns its ID
func (r *GormAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.Adjustment) error {
	model := models.AdjustmentModelFromDomain(adjustment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	adjustment.ID = model.ID
	return nil
}

// FindByID finds an adjustment by its ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id int64) (*inventory.Adjustment, error) {
	var model models.AdjustmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
