// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel and the model list used by AutoMigrate
//   - catalog.go: products
//   - warehouse.go: warehouses
//   - inventory.go: inventory (stock entries), adjustments, stock_movements
//   - order.go: orders and order_items
//
// The SQL migrations under migrations/ are the source of truth for postgres;
// the gorm tags here mirror them so AutoMigrate produces the same shape on sqlite.
package models
