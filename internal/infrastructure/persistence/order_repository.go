package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/stockroom/backend/internal/domain/order"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.Repository using GORM.
// Receipts, deliveries and transfers share the orders table.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.findByID(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds an order with its lines and holds a row lock on the
// order header until the surrounding transaction ends
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.findByID(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) findByID(ctx context.Context, query *gorm.DB, id int64) (*order.Order, error) {
	var model models.OrderModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", model.ID).
		Order("id ASC").
		Find(&model.Items).Error; err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter, lines included
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = orderSort.apply(query, filter.OrderBy, filter.OrderDir)

	var rows []models.OrderModel
	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates the order header and inserts lines that have no ID yet.
// Existing lines are never rewritten.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := r.db.WithContext(ctx)
	header := models.OrderModelFromDomain(o)

	if o.IsNew() {
		if err := db.Omit(clause.Associations).Create(header).Error; err != nil {
			return err
		}
		o.ID = header.ID
	} else {
		result := db.Model(&models.OrderModel{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"counterparty":  header.Counterparty,
				"responsible":   header.Responsible,
				"schedule_date": header.ScheduleDate,
				"status":        header.Status,
				"done_at":       header.DoneAt,
				"updated_at":    header.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
	}

	for i := range o.Lines {
		line := &o.Lines[i]
		if line.ID != 0 {
			continue
		}
		line.OrderID = o.ID
		item := models.OrderItemModelFromDomain(line)
		if err := db.Create(item).Error; err != nil {
			return err
		}
		line.ID = item.ID
	}
	return nil
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter order.Filter) *gorm.DB {
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(counterparty) LIKE ? OR LOWER(responsible) LIKE ?", pattern, pattern)
	}
	return query
}
