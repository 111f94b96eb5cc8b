package handler

import (
	"net/http"
	"testing"

	warehouseapp "github.com/stockroom/backend/internal/application/warehouse"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseHandler_CRUD(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodPost, "/api/v1/warehouses", map[string]any{
		"name": "Harbor", "location": "Pier 9", "capacity": 5000,
	})
	require.Equal(t, http.StatusCreated, res.Code)
	var created warehouseapp.WarehouseResponse
	api.requireOK(res, &created)
	assert.Equal(t, int64(5000), created.Capacity)
	assert.True(t, created.Active)

	var updated warehouseapp.WarehouseResponse
	api.requireOK(api.do(http.MethodPut, "/api/v1/warehouses/"+itoa(created.ID), map[string]any{
		"name": "Harbor East", "location": "Pier 10",
	}), &updated)
	assert.Equal(t, "Harbor East", updated.Name)
	assert.Equal(t, "Pier 10", updated.Location)

	res = api.do(http.MethodPut, "/api/v1/warehouses/"+itoa(created.ID), map[string]any{"location": "Nowhere"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, dto.ErrCodeValidation, res.Error.Code)

	res = api.do(http.MethodDelete, "/api/v1/warehouses/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)

	var list []warehouseapp.WarehouseResponse
	api.requireOK(api.do(http.MethodGet, "/api/v1/warehouses?active=true", nil), &list)
	assert.Empty(t, list)
	api.requireOK(api.do(http.MethodGet, "/api/v1/warehouses?active=false", nil), &list)
	require.Len(t, list, 1)
	assert.False(t, list[0].Active)
}

func TestWarehouseHandler_InactiveWarehouseRejectsStock(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("ROPE-1", "Rope", "3", 0)
	warehouseID := api.createWarehouse("Annex")

	res := api.do(http.MethodDelete, "/api/v1/warehouses/"+itoa(warehouseID), nil)
	require.Equal(t, http.StatusNoContent, res.Code)

	res = api.do(http.MethodPost, "/api/v1/inventory", map[string]any{
		"product_id": productID, "warehouse_id": warehouseID, "quantity": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, res.Error.Code)
}

func TestWarehouseHandler_ListIsSortedByName(t *testing.T) {
	api := newTestAPI(t)
	api.createWarehouse("Zeta")
	api.createWarehouse("Alpha")
	api.createWarehouse("Mid")

	var list []warehouseapp.WarehouseResponse
	res := api.do(http.MethodGet, "/api/v1/warehouses?page_size=2", nil)
	api.requireOK(res, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Mid", list[1].Name)
	assert.Equal(t, int64(3), res.Meta.Total)
	assert.Equal(t, 2, res.Meta.TotalPages)
}
