package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockroom/backend/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers mounted by RegisterAPI
type Handlers struct {
	Health     *handler.HealthHandler
	Products   *handler.ProductHandler
	Warehouses *handler.WarehouseHandler
	Inventory  *handler.InventoryHandler
	Orders     []*handler.OrderHandler
}

// RegisterAPI mounts every handler: /health at the root, the rest under /api/<version>.
// Each order handler is mounted at /orders/<plural of its kind>.
func RegisterAPI(engine *gin.Engine, h Handlers, opts ...RouterOption) {
	engine.GET("/health", h.Health.Check)

	r := NewRouter(engine, opts...)

	r.Register(NewDomainGroup("products", "/products").
		POST("", h.Products.Create).
		GET("", h.Products.List).
		GET("/:id", h.Products.GetByID).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete))

	r.Register(NewDomainGroup("warehouses", "/warehouses").
		POST("", h.Warehouses.Create).
		GET("", h.Warehouses.List).
		GET("/:id", h.Warehouses.GetByID).
		PUT("/:id", h.Warehouses.Update).
		DELETE("/:id", h.Warehouses.Delete))

	r.Register(NewDomainGroup("inventory", "/inventory").
		GET("", h.Inventory.List).
		POST("", h.Inventory.Open).
		POST("/adjustment", h.Inventory.Adjust).
		PUT("/reserved", h.Inventory.SetReserved).
		GET("/statistics", h.Inventory.Statistics).
		GET("/summary", h.Inventory.Summary).
		GET("/alerts", h.Inventory.Alerts).
		GET("/movements", h.Inventory.Movements).
		GET("/product/:product_id", h.Inventory.ByProduct).
		GET("/warehouse/:warehouse_id", h.Inventory.ByWarehouse))

	orders := NewDomainGroup("orders", "/orders")
	for _, oh := range h.Orders {
		orders.Group(oh.Kind().String(), "/"+oh.Kind().Plural()).
			POST("", oh.Create).
			GET("", oh.List).
			GET("/:id", oh.GetByID).
			POST("/:id/item", oh.AddItem).
			POST("/:id/validate", oh.Validate)
	}
	r.Register(orders)

	r.Setup()
}
