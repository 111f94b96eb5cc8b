package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	inventoryapp "github.com/stockroom/backend/internal/application/inventory"
	orderapp "github.com/stockroom/backend/internal/application/order"
	warehouseapp "github.com/stockroom/backend/internal/application/warehouse"
	"github.com/stockroom/backend/internal/domain/order"
	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/persistence"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testAPI serves the handlers over real services on an in-memory sqlite database
type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	db     *persistence.Database
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormStockEntryRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	inventoryService := inventoryapp.NewInventoryService(txScope, stockRepo, movementRepo, productRepo, warehouseRepo, nil)
	orderService := orderapp.NewOrderService(txScope, orderRepo, nil)
	orderService.SetStatisticsInvalidator(inventoryService)

	products := NewProductHandler(catalogapp.NewProductService(productRepo))
	warehouses := NewWarehouseHandler(warehouseapp.NewWarehouseService(warehouseRepo))
	inventory := NewInventoryHandler(inventoryService)
	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	health := NewHealthHandler(sqlDB, "test")

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", health.Check)
	api := engine.Group("/api/v1")
	api.POST("/products", products.Create)
	api.GET("/products", products.List)
	api.GET("/products/:id", products.GetByID)
	api.PUT("/products/:id", products.Update)
	api.DELETE("/products/:id", products.Delete)
	api.POST("/warehouses", warehouses.Create)
	api.GET("/warehouses", warehouses.List)
	api.GET("/warehouses/:id", warehouses.GetByID)
	api.PUT("/warehouses/:id", warehouses.Update)
	api.DELETE("/warehouses/:id", warehouses.Delete)
	api.GET("/inventory", inventory.List)
	api.POST("/inventory", inventory.Open)
	api.POST("/inventory/adjustment", inventory.Adjust)
	api.PUT("/inventory/reserved", inventory.SetReserved)
	api.GET("/inventory/statistics", inventory.Statistics)
	api.GET("/inventory/summary", inventory.Summary)
	api.GET("/inventory/alerts", inventory.Alerts)
	api.GET("/inventory/movements", inventory.Movements)
	api.GET("/inventory/product/:product_id", inventory.ByProduct)
	api.GET("/inventory/warehouse/:warehouse_id", inventory.ByWarehouse)
	for _, kind := range order.AllKinds() {
		h := NewOrderHandler(kind, orderService)
		g := api.Group("/orders/" + kind.Plural())
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.GetByID)
		g.POST("/:id/item", h.AddItem)
		g.POST("/:id/validate", h.Validate)
	}

	return &testAPI{t: t, engine: engine, db: db}
}

// apiResult is a decoded response envelope; Data stays raw for typed decoding
type apiResult struct {
	Code     int
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data"`
	Error    *dto.ErrorInfo  `json:"error"`
	Meta     *dto.Meta       `json:"meta"`
	Recorder *httptest.ResponseRecorder
}

func (a *testAPI) do(method, path string, body any) apiResult {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	res := apiResult{Code: w.Code, Recorder: w}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	}
	return res
}

func (r apiResult) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Data))
}

// requireOK asserts a 2xx envelope and decodes its data into v
func (a *testAPI) requireOK(res apiResult, v any) {
	a.t.Helper()
	require.True(a.t, res.Code >= 200 && res.Code < 300, "status %d: %s", res.Code, res.Recorder.Body.String())
	require.True(a.t, res.Success)
	if v != nil {
		res.decode(a.t, v)
	}
}

func (a *testAPI) createProduct(sku, name, price string, reorderLevel int64) int64 {
	a.t.Helper()
	var p catalogapp.ProductResponse
	a.requireOK(a.do(http.MethodPost, "/api/v1/products", map[string]any{
		"sku":             sku,
		"name":            name,
		"category":        "Hardware",
		"unit_price":      price,
		"unit_of_measure": "pcs",
		"reorder_level":   reorderLevel,
	}), &p)
	return p.ID
}

func (a *testAPI) createWarehouse(name string) int64 {
	a.t.Helper()
	var w warehouseapp.WarehouseResponse
	a.requireOK(a.do(http.MethodPost, "/api/v1/warehouses", map[string]any{
		"name":     name,
		"location": name + " dock",
	}), &w)
	return w.ID
}

func (a *testAPI) openStock(productID, warehouseID, qty int64) {
	a.t.Helper()
	a.requireOK(a.do(http.MethodPost, "/api/v1/inventory", map[string]any{
		"product_id":   productID,
		"warehouse_id": warehouseID,
		"quantity":     qty,
	}), nil)
}

func (a *testAPI) stockOf(productID, warehouseID int64) inventoryapp.StockViewResponse {
	a.t.Helper()
	var views []inventoryapp.StockViewResponse
	a.requireOK(a.do(http.MethodGet, "/api/v1/inventory/product/"+itoa(productID), nil), &views)
	for _, v := range views {
		if v.WarehouseID == warehouseID {
			return v
		}
	}
	a.t.Fatalf("no stock entry for product %d in warehouse %d", productID, warehouseID)
	return inventoryapp.StockViewResponse{}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
