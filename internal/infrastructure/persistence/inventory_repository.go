package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockEntryRepository implements StockEntryRepository using GORM
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GormStockEntryRepository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// FindByKey finds the entry for a product/warehouse pair
func (r *GormStockEntryRepository) FindByKey(ctx context.Context, productID, warehouseID int64) (*inventory.StockEntry, error) {
	return r.findByKey(r.db.WithContext(ctx), productID, warehouseID)
}

// FindByKeyForUpdate finds the entry with SELECT ... FOR UPDATE.
// The lock is released when the surrounding transaction commits or rolls back.
// SQLite has no row locks; its dialector drops the clause and the database-level
// write lock serializes writers instead.
func (r *GormStockEntryRepository) FindByKeyForUpdate(ctx context.Context, productID, warehouseID int64) (*inventory.StockEntry, error) {
	return r.findByKey(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		productID, warehouseID,
	)
}

func (r *GormStockEntryRepository) findByKey(query *gorm.DB, productID, warehouseID int64) (*inventory.StockEntry, error) {
	var model models.StockEntryModel
	if err := query.
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("No inventory for product %d at warehouse %d", productID, warehouseID))
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByKey reports whether the pair already has an entry
func (r *GormStockEntryRepository) ExistsByKey(ctx context.Context, productID, warehouseID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockEntryModel{}).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a new entry or writes the quantities of an existing one
func (r *GormStockEntryRepository) Save(ctx context.Context, entry *inventory.StockEntry) error {
	model := models.StockEntryModelFromDomain(entry)
	if entry.IsNew() {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.NewDomainError("ALREADY_EXISTS", "Inventory record already exists for this product and warehouse")
			}
			return err
		}
		entry.ID = model.ID
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.StockEntryModel{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"quantity":          entry.OnHand,
			"reserved_quantity": entry.Reserved,
			"updated_at":        entry.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindViews returns stock entries joined with product and warehouse display fields,
// ordered by product name then warehouse name
func (r *GormStockEntryRepository) FindViews(ctx context.Context, filter inventory.StockFilter) ([]inventory.StockView, error) {
	query := r.db.WithContext(ctx).
		Table("inventory AS i").
		Select(`i.id AS inventory_id, i.product_id, p.name AS product_name, p.sku, p.category,
			p.unit_price, p.unit_of_measure, p.reorder_level, i.warehouse_id,
			w.name AS warehouse_name, w.location, i.quantity, i.reserved_quantity, i.updated_at`).
		Joins("JOIN products p ON p.id = i.product_id").
		Joins("JOIN warehouses w ON w.id = i.warehouse_id")

	if !filter.IncludeInactive {
		query = query.Where("p.is_active = ? AND w.is_active = ?", true, true)
	}
	if filter.ProductID > 0 {
		query = query.Where("i.product_id = ?", filter.ProductID)
	}
	if filter.WarehouseID > 0 {
		query = query.Where("i.warehouse_id = ?", filter.WarehouseID)
	}
	if filter.Category != "" {
		query = query.Where("p.category = ?", filter.Category)
	}

	var rows []models.StockViewRow
	if err := query.Order("p.name ASC, w.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]inventory.StockView, len(rows))
	for i := range rows {
		views[i] = rows[i].ToDomain()
	}
	return inventory.FilterByStatus(views, filter.Status), nil
}
