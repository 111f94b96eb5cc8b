package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleViews() []StockView {
	return []StockView{
		{ProductID: 1, WarehouseID: 1, OnHand: 0, ReorderLevel: 5, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: 1, WarehouseID: 2, OnHand: 50, ReorderLevel: 5, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: 2, WarehouseID: 1, OnHand: 3, ReorderLevel: 5, UnitPrice: decimal.RequireFromString("2.5")},
		{ProductID: 3, WarehouseID: 2, OnHand: 1, ReorderLevel: 2, UnitPrice: decimal.NewFromInt(1)},
	}
}

func TestComputeStatistics(t *testing.T) {
	stats := ComputeStatistics(sampleViews())

	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalWarehouses)
	assert.Equal(t, int64(54), stats.TotalStockUnits)
	assert.True(t, stats.TotalStockValue.Equal(decimal.RequireFromString("508.5")), stats.TotalStockValue.String())
	assert.Equal(t, int64(1), stats.OutOfStockCount)
	assert.Equal(t, int64(2), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.InStockCount)
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.TotalStockValue.IsZero())
}

func TestFilterByStatus(t *testing.T) {
	views := sampleViews()
	assert.Len(t, FilterByStatus(views, ""), 4)
	assert.Len(t, FilterByStatus(views, StockStatusLowStock), 2)
	assert.Len(t, FilterByStatus(views, StockStatusOutOfStock), 1)
}

func TestBuildAlerts(t *testing.T) {
	alerts := BuildAlerts(sampleViews())
	require.Len(t, alerts, 3)

	assert.Equal(t, StockStatusOutOfStock, alerts[0].AlertType)
	assert.Equal(t, int64(1), alerts[1].OnHand)
	assert.Equal(t, int64(3), alerts[2].OnHand)
}

func TestMovementFilter_Normalize(t *testing.T) {
	assert.Equal(t, DefaultMovementLimit, MovementFilter{}.Normalize().Limit)
	assert.Equal(t, MaxMovementLimit, MovementFilter{Limit: 10000}.Normalize().Limit)
	assert.Equal(t, 7, MovementFilter{Limit: 7}.Normalize().Limit)
}

func TestSummarizeByProduct(t *testing.T) {
	views := sampleViews()
	views[0].ProductName, views[1].ProductName = "Bolt", "Bolt"
	views[2].ProductName = "Anchor"
	views[3].ProductName = "Clamp"
	views[1].Reserved = 5

	summaries := SummarizeByProduct(views)
	require.Len(t, summaries, 3)

	assert.Equal(t, "Anchor", summaries[0].ProductName)
	assert.Equal(t, StockStatusLowStock, summaries[0].Status)

	bolt := summaries[1]
	assert.Equal(t, int64(1), bolt.ProductID)
	assert.Equal(t, int64(50), bolt.TotalQuantity)
	assert.Equal(t, int64(45), bolt.TotalAvailable)
	assert.Equal(t, int64(2), bolt.WarehouseCount)
	assert.True(t, bolt.TotalValue.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, StockStatusInStock, bolt.Status)
}
