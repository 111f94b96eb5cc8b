package persistence

import (
	"context"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create appends a movement to the journal
func (r *GormMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	model := models.StockMovementModelFromDomain(movement)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	movement.ID = model.ID
	return nil
}

// FindAll returns movements matching the filter, newest first
func (r *GormMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.StockMovementModel{})

	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.WarehouseID > 0 {
		query = query.Where("warehouse_id = ?", filter.WarehouseID)
	}
	if filter.Type != "" {
		query = query.Where("movement_type = ?", string(filter.Type))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		// inclusive end date: everything before the following midnight
		query = query.Where("created_at < ?", filter.To.AddDate(0, 0, 1))
	}

	var rows []models.StockMovementModel
	if err := query.Order("created_at DESC, id DESC").Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	movements := make([]inventory.StockMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, nil
}
