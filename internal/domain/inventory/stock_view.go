package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StockView is a stock entry joined with its product and warehouse display fields
type StockView struct {
	InventoryID   int64
	ProductID     int64
	ProductName   string
	SKU           string
	Category      string
	UnitPrice     decimal.Decimal
	Unit          string
	ReorderLevel  int64
	WarehouseID   int64
	WarehouseName string
	Location      string
	OnHand        int64
	Reserved      int64
	UpdatedAt     time.Time
}

// Available returns on hand minus reserved
func (v StockView) Available() int64 {
	return v.OnHand - v.Reserved
}

// StockValue returns on hand valued at unit price
func (v StockView) StockValue() decimal.Decimal {
	return v.UnitPrice.Mul(decimal.NewFromInt(v.OnHand))
}

// Status classifies the view against the product's reorder level
func (v StockView) Status() StockStatus {
	return ClassifyStock(v.OnHand, v.ReorderLevel)
}

// StockFilter narrows stock listings. Zero values mean no restriction.
type StockFilter struct {
	ProductID   int64
	WarehouseID int64
	Category    string
	Status      StockStatus
	// IncludeInactive also returns rows of soft-deleted products and warehouses
	IncludeInactive bool
}

// FilterByStatus keeps the views whose status matches; an empty status keeps everything
func FilterByStatus(views []StockView, status StockStatus) []StockView {
	if status == "" {
		return views
	}
	out := make([]StockView, 0, len(views))
	for _, v := range views {
		if v.Status() == status {
			out = append(out, v)
		}
	}
	return out
}

// StockStatistics aggregates stock across active products and warehouses
type StockStatistics struct {
	TotalProducts   int64
	TotalWarehouses int64
	TotalStockUnits int64
	TotalStockValue decimal.Decimal
	OutOfStockCount int64
	LowStockCount   int64
	InStockCount    int64
}

// ComputeStatistics folds views into statistics. Status counts are per stock entry.
func ComputeStatistics(views []StockView) StockStatistics {
	stats := StockStatistics{TotalStockValue: decimal.Zero}
	products := make(map[int64]struct{})
	warehouses := make(map[int64]struct{})

	for _, v := range views {
		products[v.ProductID] = struct{}{}
		warehouses[v.WarehouseID] = struct{}{}
		stats.TotalStockUnits += v.OnHand
		stats.TotalStockValue = stats.TotalStockValue.Add(v.StockValue())

		switch v.Status() {
		case StockStatusOutOfStock:
			stats.OutOfStockCount++
		case StockStatusLowStock:
			stats.LowStockCount++
		default:
			stats.InStockCount++
		}
	}

	stats.TotalProducts = int64(len(products))
	stats.TotalWarehouses = int64(len(warehouses))
	return stats
}

// ProductStockSummary totals one product across all warehouses
type ProductStockSummary struct {
	ProductID      int64
	ProductName    string
	SKU            string
	Category       string
	UnitPrice      decimal.Decimal
	Unit           string
	ReorderLevel   int64
	TotalQuantity  int64
	TotalReserved  int64
	TotalAvailable int64
	TotalValue     decimal.Decimal
	Status         StockStatus
	WarehouseCount int64
}

// SummarizeByProduct totals views per product, ordered by product name
func SummarizeByProduct(views []StockView) []ProductStockSummary {
	index := make(map[int64]int)
	out := make([]ProductStockSummary, 0)
	for _, v := range views {
		i, ok := index[v.ProductID]
		if !ok {
			i = len(out)
			index[v.ProductID] = i
			out = append(out, ProductStockSummary{
				ProductID:    v.ProductID,
				ProductName:  v.ProductName,
				SKU:          v.SKU,
				Category:     v.Category,
				UnitPrice:    v.UnitPrice,
				Unit:         v.Unit,
				ReorderLevel: v.ReorderLevel,
				TotalValue:   decimal.Zero,
			})
		}
		s := &out[i]
		s.TotalQuantity += v.OnHand
		s.TotalReserved += v.Reserved
		s.TotalAvailable += v.Available()
		s.TotalValue = s.TotalValue.Add(v.StockValue())
		s.WarehouseCount++
	}

	for i := range out {
		out[i].Status = ClassifyStock(out[i].TotalQuantity, out[i].ReorderLevel)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProductName < out[j].ProductName
	})
	return out
}

// StockAlert flags a stock entry at or under its reorder level
type StockAlert struct {
	StockView
	AlertType StockStatus
}

// BuildAlerts returns alerts for low and out-of-stock views, out-of-stock first then by quantity
func BuildAlerts(views []StockView) []StockAlert {
	alerts := make([]StockAlert, 0)
	for _, v := range views {
		if v.OnHand > v.ReorderLevel {
			continue
		}
		alerts = append(alerts, StockAlert{StockView: v, AlertType: v.Status()})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		iOut := alerts[i].AlertType == StockStatusOutOfStock
		jOut := alerts[j].AlertType == StockStatusOutOfStock
		if iOut != jOut {
			return iOut
		}
		return alerts[i].OnHand < alerts[j].OnHand
	})
	return alerts
}

// MovementFilter narrows movement history queries
type MovementFilter struct {
	ProductID   int64
	WarehouseID int64
	Type        MovementType
	From        *time.Time
	To          *time.Time
	Limit       int
}

// Movement history limits
const (
	DefaultMovementLimit = 50
	MaxMovementLimit     = 500
)

// Normalize clamps the limit into range
func (f MovementFilter) Normalize() MovementFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultMovementLimit
	}
	if f.Limit > MaxMovementLimit {
		f.Limit = MaxMovementLimit
	}
	return f
}
