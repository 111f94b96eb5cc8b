package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
)

// InventoryHandler handles stock ledger and stock reporting endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List godoc
//
//	@Summary		List stock entries
//	@Description	Stock entries of active products in active warehouses, with display fields
//	@Tags			inventory
//	@Produce		json
//	@Param			warehouse_id	query		int		false	"Warehouse ID"
//	@Param			product_id		query		int		false	"Product ID"
//	@Param			category		query		string	false	"Product category"
//	@Param			status			query		string	false	"in_stock, low_stock or out_of_stock"
//	@Success		200				{object}	dto.Response
//	@Router			/inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.InventoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	views, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Open godoc
//
//	@Summary	Open a stock entry for a product at a warehouse
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		request	body		inventoryapp.OpenStockRequest	true	"Stock entry"
//	@Success	201		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Router		/inventory [post]
func (h *InventoryHandler) Open(c *gin.Context) {
	var req inventoryapp.OpenStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.inventoryService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Adjust godoc
//
//	@Summary	Record a manual stock adjustment
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		request	body		inventoryapp.AdjustStockRequest	true	"Adjustment"
//	@Success	200		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Router		/inventory/adjustment [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.inventoryService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SetReserved godoc
//
//	@Summary	Replace the reserved quantity of a stock entry
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		request	body		inventoryapp.SetReservedRequest	true	"Reservation"
//	@Success	200		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Router		/inventory/reserved [put]
func (h *InventoryHandler) SetReserved(c *gin.Context) {
	var req inventoryapp.SetReservedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.inventoryService.SetReserved(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Statistics godoc
//
//	@Summary	Stock totals over active products and warehouses
//	@Tags		inventory
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Router		/inventory/statistics [get]
func (h *InventoryHandler) Statistics(c *gin.Context) {
	stats, err := h.inventoryService.Statistics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Summary godoc
//
//	@Summary	Per-product totals across warehouses
//	@Tags		inventory
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Router		/inventory/summary [get]
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.inventoryService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Alerts godoc
//
//	@Summary	Low and out-of-stock entries, out of stock first
//	@Tags		inventory
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Router		/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *gin.Context) {
	alerts, err := h.inventoryService.Alerts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Movements godoc
//
//	@Summary	Stock movement history
//	@Tags		inventory
//	@Produce	json
//	@Param		product_id		query		int		false	"Product ID"
//	@Param		warehouse_id	query		int		false	"Warehouse ID"
//	@Param		movement_type	query		string	false	"Movement type"
//	@Param		start_date		query		string	false	"From date (YYYY-MM-DD)"
//	@Param		end_date		query		string	false	"To date (YYYY-MM-DD), inclusive"
//	@Param		limit			query		int		false	"Maximum rows (default 50, max 500)"
//	@Success	200				{object}	dto.Response
//	@Router		/inventory/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	movements, err := h.inventoryService.Movements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// ByProduct godoc
//
//	@Summary	Stock of one product in every warehouse
//	@Tags		inventory
//	@Produce	json
//	@Param		product_id	path		int	true	"Product ID"
//	@Success	200			{object}	dto.Response
//	@Router		/inventory/product/{product_id} [get]
func (h *InventoryHandler) ByProduct(c *gin.Context) {
	productID, ok := h.pathID(c, "product_id")
	if !ok {
		return
	}

	views, err := h.inventoryService.ByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ByWarehouse godoc
//
//	@Summary	Stock held in one warehouse
//	@Tags		inventory
//	@Produce	json
//	@Param		warehouse_id	path		int	true	"Warehouse ID"
//	@Success	200				{object}	dto.Response
//	@Router		/inventory/warehouse/{warehouse_id} [get]
func (h *InventoryHandler) ByWarehouse(c *gin.Context) {
	warehouseID, ok := h.pathID(c, "warehouse_id")
	if !ok {
		return
	}

	views, err := h.inventoryService.ByWarehouse(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}
