package handler

import (
	"github.com/gin-gonic/gin"
	warehouseapp "github.com/stockroom/backend/internal/application/warehouse"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *warehouseapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *warehouseapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create godoc
//
//	@Summary	Create a warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		request	body		warehouseapp.CreateWarehouseRequest	true	"Warehouse"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Router		/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// GetByID godoc
//
//	@Summary	Get a warehouse
//	@Tags		warehouses
//	@Produce	json
//	@Param		id	path		int	true	"Warehouse ID"
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Router		/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// List godoc
//
//	@Summary	List warehouses
//	@Tags		warehouses
//	@Produce	json
//	@Param		search		query		string	false	"Name or location fragment"
//	@Param		active		query		bool	false	"Active flag"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	dto.Response
//	@Router		/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var filter warehouseapp.WarehouseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.warehouseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@Summary	Update a warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"Warehouse ID"
//	@Param		request	body		warehouseapp.UpdateWarehouseRequest	true	"Changes"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Router		/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req warehouseapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// Delete godoc
//
//	@Summary	Deactivate a warehouse
//	@Tags		warehouses
//	@Param		id	path	int	true	"Warehouse ID"
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Router		/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
