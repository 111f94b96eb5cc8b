package handler

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	orderapp "github.com/stockroom/backend/internal/application/order"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (a *testAPI) createOrder(plural string, body map[string]any) orderapp.OrderResponse {
	a.t.Helper()
	res := a.do(http.MethodPost, "/api/v1/orders/"+plural, body)
	require.Equal(a.t, http.StatusCreated, res.Code, res.Recorder.Body.String())
	var o orderapp.OrderResponse
	a.requireOK(res, &o)
	return o
}

func (a *testAPI) addItem(plural string, orderID int64, body map[string]any) apiResult {
	a.t.Helper()
	return a.do(http.MethodPost, "/api/v1/orders/"+plural+"/"+itoa(orderID)+"/item", body)
}

func (a *testAPI) validate(plural string, orderID int64) apiResult {
	a.t.Helper()
	return a.do(http.MethodPost, "/api/v1/orders/"+plural+"/"+itoa(orderID)+"/validate", nil)
}

func (a *testAPI) validateOK(plural string, orderID int64) orderapp.ValidateResponse {
	a.t.Helper()
	var v orderapp.ValidateResponse
	a.requireOK(a.validate(plural, orderID), &v)
	return v
}

func TestOrderHandler_ReceiptLifecycle(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("BOLT-10", "Hex bolt", "0.25", 10)
	warehouseID := api.createWarehouse("Main")
	api.openStock(productID, warehouseID, 0)

	receipt := api.createOrder("receipts", map[string]any{
		"vendor":        "Acme Fasteners",
		"schedule_date": "2026-03-01",
		"responsible":   "dana",
	})
	assert.Equal(t, "draft", receipt.Status)
	assert.Equal(t, "Acme Fasteners", receipt.Vendor)
	assert.Equal(t, fmt.Sprintf("WH/IN/%04d", receipt.ID), receipt.Reference)
	require.NotNil(t, receipt.ScheduleDate)
	assert.Equal(t, "2026-03-01", *receipt.ScheduleDate)

	var withItem orderapp.OrderResponse
	api.requireOK(api.addItem("receipts", receipt.ID, map[string]any{
		"product_id": productID, "warehouse_id": warehouseID, "qty": 40,
	}), &withItem)
	require.Len(t, withItem.Items, 1)
	assert.Equal(t, int64(40), withItem.TotalQuantity)

	ready := api.validateOK("receipts", receipt.ID)
	assert.Equal(t, "ready", ready.Status)
	assert.True(t, ready.Changed)
	assert.Equal(t, int64(0), api.stockOf(productID, warehouseID).OnHand, "ready does not move stock")

	done := api.validateOK("receipts", receipt.ID)
	assert.Equal(t, "done", done.Status)
	assert.Equal(t, int64(40), api.stockOf(productID, warehouseID).OnHand)

	again := api.validateOK("receipts", receipt.ID)
	assert.Equal(t, "done", again.Status)
	assert.False(t, again.Changed)
	assert.Equal(t, int64(40), api.stockOf(productID, warehouseID).OnHand, "validating a done order is idempotent")

	res := api.addItem("receipts", receipt.ID, map[string]any{
		"product_id": productID, "warehouse_id": warehouseID, "qty": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, res.Error.Code)

	var movements []inventoryapp.MovementResponse
	api.requireOK(api.do(http.MethodGet, "/api/v1/inventory/movements?movement_type=receipt", nil), &movements)
	require.Len(t, movements, 1)
	assert.Equal(t, receipt.Reference, movements[0].Reference)
	assert.Equal(t, int64(40), movements[0].BalanceAfter)
}

func TestOrderHandler_EmptyOrderCannotLeaveDraft(t *testing.T) {
	api := newTestAPI(t)

	for _, plural := range []string{"receipts", "deliveries"} {
		t.Run(plural, func(t *testing.T) {
			o := api.createOrder(plural, map[string]any{"responsible": "sam"})

			res := api.validate(plural, o.ID)
			assert.Equal(t, http.StatusBadRequest, res.Code)
			assert.Equal(t, dto.ErrCodeEmptyOrder, res.Error.Code)
			assert.NotEmpty(t, res.Error.RequestID)

			var got orderapp.OrderResponse
			api.requireOK(api.do(http.MethodGet, "/api/v1/orders/"+plural+"/"+itoa(o.ID), nil), &got)
			assert.Equal(t, "draft", got.Status)
		})
	}
}

func TestOrderHandler_DeliveryIsAllOrNothing(t *testing.T) {
	api := newTestAPI(t)
	plenty := api.createProduct("NUT-5", "Nut", "0.10", 0)
	scarce := api.createProduct("WASHER-5", "Washer", "0.05", 0)
	warehouseID := api.createWarehouse("Main")
	api.openStock(plenty, warehouseID, 100)
	api.openStock(scarce, warehouseID, 3)

	delivery := api.createOrder("deliveries", map[string]any{"customer": "Bob's Garage"})
	assert.Equal(t, fmt.Sprintf("WH/OUT/%04d", delivery.ID), delivery.Reference)
	assert.Equal(t, "Bob's Garage", delivery.Customer)
	api.requireOK(api.addItem("deliveries", delivery.ID, map[string]any{
		"product_id": plenty, "warehouse_id": warehouseID, "qty": 60,
	}), nil)
	api.requireOK(api.addItem("deliveries", delivery.ID, map[string]any{
		"product_id": scarce, "warehouse_id": warehouseID, "qty": 5,
	}), nil)
	api.validateOK("deliveries", delivery.ID)

	res := api.validate("deliveries", delivery.ID)
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, dto.ErrCodeInsufficientStock, res.Error.Code)
	assert.EqualValues(t, 3, res.Error.Details["on_hand"])
	assert.EqualValues(t, -5, res.Error.Details["requested"])

	assert.Equal(t, int64(100), api.stockOf(plenty, warehouseID).OnHand, "earlier lines roll back")
	assert.Equal(t, int64(3), api.stockOf(scarce, warehouseID).OnHand)

	var got orderapp.OrderResponse
	api.requireOK(api.do(http.MethodGet, "/api/v1/orders/deliveries/"+itoa(delivery.ID), nil), &got)
	assert.Equal(t, "ready", got.Status)
}

func TestOrderHandler_Transfer(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("PIPE-1", "Copper pipe", "4.00", 0)
	source := api.createWarehouse("North")
	destination := api.createWarehouse("South")
	api.openStock(productID, source, 20)
	api.openStock(productID, destination, 0)

	res := api.do(http.MethodPost, "/api/v1/orders/transfers", map[string]any{
		"source_warehouse_id": source, "destination_warehouse_id": source,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code, "source and destination must differ")

	transfer := api.createOrder("transfers", map[string]any{
		"source_warehouse_id": source, "destination_warehouse_id": destination, "responsible": "kim",
	})
	assert.Equal(t, fmt.Sprintf("WH/INT/%04d", transfer.ID), transfer.Reference)

	api.requireOK(api.addItem("transfers", transfer.ID, map[string]any{"product_id": productID, "qty": 8}), nil)
	api.validateOK("transfers", transfer.ID)
	assert.Equal(t, "done", api.validateOK("transfers", transfer.ID).Status)

	assert.Equal(t, int64(12), api.stockOf(productID, source).OnHand)
	assert.Equal(t, int64(8), api.stockOf(productID, destination).OnHand)
}

func TestOrderHandler_KindsAreSeparate(t *testing.T) {
	api := newTestAPI(t)
	receipt := api.createOrder("receipts", map[string]any{"vendor": "Acme"})

	res := api.do(http.MethodGet, "/api/v1/orders/deliveries/"+itoa(receipt.ID), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, dto.ErrCodeNotFound, res.Error.Code)

	res = api.validate("deliveries", receipt.ID)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestOrderHandler_RequestErrors(t *testing.T) {
	api := newTestAPI(t)
	receipt := api.createOrder("receipts", map[string]any{"vendor": "Acme"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"unknown order", http.MethodPost, "/api/v1/orders/receipts/999/validate", nil, http.StatusNotFound, dto.ErrCodeNotFound},
		{"non-numeric id", http.MethodGet, "/api/v1/orders/receipts/abc", nil, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"zero quantity", http.MethodPost, "/api/v1/orders/receipts/" + itoa(receipt.ID) + "/item",
			map[string]any{"product_id": 1, "warehouse_id": 1, "qty": 0}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"malformed body", http.MethodPost, "/api/v1/orders/receipts", `{"vendor":`, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
		{"bad schedule date", http.MethodPost, "/api/v1/orders/receipts",
			map[string]any{"schedule_date": "01/03/2026"}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"unknown status filter", http.MethodGet, "/api/v1/orders/receipts?status=cancelled", nil, http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, res.Code, res.Recorder.Body.String())
			require.NotNil(t, res.Error)
			assert.Equal(t, tt.code, res.Error.Code)
		})
	}
}

func TestOrderHandler_List(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("TAPE-1", "Tape", "1.00", 0)
	warehouseID := api.createWarehouse("Main")
	api.openStock(productID, warehouseID, 0)

	for i := 0; i < 3; i++ {
		api.createOrder("receipts", map[string]any{"vendor": "Acme"})
	}
	ready := api.createOrder("receipts", map[string]any{"vendor": "Globex"})
	api.requireOK(api.addItem("receipts", ready.ID, map[string]any{
		"product_id": productID, "warehouse_id": warehouseID, "qty": 1,
	}), nil)
	api.validateOK("receipts", ready.ID)
	api.createOrder("deliveries", map[string]any{"customer": "Initech"})

	var page []orderapp.OrderResponse
	res := api.do(http.MethodGet, "/api/v1/orders/receipts?page=1&page_size=2", nil)
	api.requireOK(res, &page)
	assert.Len(t, page, 2)
	require.NotNil(t, res.Meta)
	assert.Equal(t, int64(4), res.Meta.Total)
	assert.Equal(t, 2, res.Meta.TotalPages)

	var readyOnly []orderapp.OrderResponse
	api.requireOK(api.do(http.MethodGet, "/api/v1/orders/receipts?status=ready", nil), &readyOnly)
	require.Len(t, readyOnly, 1)
	assert.Equal(t, ready.ID, readyOnly[0].ID)
}

func TestOrderHandler_ReceiptBeyondQuantityRange(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("SHIM-1", "Shim", "0.01", 0)
	warehouseID := api.createWarehouse("Main")
	api.openStock(productID, warehouseID, 10)

	receipt := api.createOrder("receipts", map[string]any{"vendor": "Acme"})
	api.requireOK(api.addItem("receipts", receipt.ID, map[string]any{
		"product_id": productID, "warehouse_id": warehouseID, "qty": int64(math.MaxInt64),
	}), nil)
	api.validateOK("receipts", receipt.ID)

	res := api.validate("receipts", receipt.ID)
	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, res.Error.Code)
	assert.EqualValues(t, 10, res.Error.Details["on_hand"])
	assert.Equal(t, int64(10), api.stockOf(productID, warehouseID).OnHand)

	var got orderapp.OrderResponse
	api.requireOK(api.do(http.MethodGet, "/api/v1/orders/receipts/"+itoa(receipt.ID), nil), &got)
	assert.Equal(t, "ready", got.Status)
}
