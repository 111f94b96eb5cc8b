package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		request	body		catalogapp.CreateProductRequest	true	"Product"
//	@Success	201		{object}	dto.Response
//	@Failure	400		{object}	dto.Response
//	@Failure	409		{object}	dto.Response
//	@Router		/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
//
//	@Summary	Get a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Param		search		query		string	false	"Name or SKU fragment"
//	@Param		category	query		string	false	"Category"
//	@Param		active		query		bool	false	"Active flag"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	dto.Response
//	@Router		/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int								true	"Product ID"
//	@Param		request	body		catalogapp.UpdateProductRequest	true	"Changes"
//	@Success	200		{object}	dto.Response
//	@Failure	404		{object}	dto.Response
//	@Router		/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
//
//	@Summary	Deactivate a product
//	@Tags		products
//	@Param		id	path	int	true	"Product ID"
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Router		/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
