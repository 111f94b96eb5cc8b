package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/stockroom/backend/internal/application/order"
	"github.com/stockroom/backend/internal/domain/order"
)

// OrderHandler serves one order kind. The router mounts one instance per
// kind under /orders/receipts, /orders/deliveries and /orders/transfers.
type OrderHandler struct {
	BaseHandler
	kind         order.Kind
	orderService *orderapp.OrderService
}

// NewOrderHandler creates an OrderHandler for kind
func NewOrderHandler(kind order.Kind, orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{kind: kind, orderService: orderService}
}

// Kind returns the order kind served
func (h *OrderHandler) Kind() order.Kind {
	return h.kind
}

// Create godoc
//
//	@Summary		Create a draft order
//	@Description	Receipts take a vendor, deliveries a customer, transfers a source and destination warehouse
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			kind	path		string						true	"receipts, deliveries or transfers"
//	@Param			request	body		orderapp.CreateOrderRequest	true	"Order header"
//	@Success		201		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Router			/orders/{kind} [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.orderService.Create(c.Request.Context(), h.kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// AddItem godoc
//
//	@Summary	Append a line item to a draft order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		kind	path		string						true	"receipts, deliveries or transfers"
//	@Param		id		path		int							true	"Order ID"
//	@Param		request	body		orderapp.AddLineItemRequest	true	"Line item"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/orders/{kind}/{id}/item [post]
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req orderapp.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	updated, err := h.orderService.AddLineItem(c.Request.Context(), h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Validate godoc
//
//	@Summary		Advance an order one status
//	@Description	draft to ready, then ready to done which posts the stock movements. A done order is returned unchanged.
//	@Tags			orders
//	@Produce		json
//	@Param			kind	path		string	true	"receipts, deliveries or transfers"
//	@Param			id		path		int		true	"Order ID"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Router			/orders/{kind}/{id}/validate [post]
func (h *OrderHandler) Validate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.orderService.Validate(c.Request.Context(), h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetByID godoc
//
//	@Summary	Get an order with its line items
//	@Tags		orders
//	@Produce	json
//	@Param		kind	path		string	true	"receipts, deliveries or transfers"
//	@Param		id		path		int		true	"Order ID"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Router		/orders/{kind}/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	found, err := h.orderService.Get(c.Request.Context(), h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, found)
}

// List godoc
//
//	@Summary	List orders of a kind
//	@Tags		orders
//	@Produce	json
//	@Param		kind		path		string	true	"receipts, deliveries or transfers"
//	@Param		status		query		string	false	"draft, ready or done"
//	@Param		search		query		string	false	"Counterparty or responsible fragment"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	dto.Response
//	@Router		/orders/{kind} [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), h.kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
