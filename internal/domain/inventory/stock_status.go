package inventory

// StockStatus is the availability band of a stock level relative to a reorder level
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// IsValid checks if the status is a known value
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

// String returns the string representation
func (s StockStatus) String() string {
	return string(s)
}

// ClassifyStock returns out_of_stock at zero, low_stock at or under the reorder level
// and in_stock above it.
func ClassifyStock(onHand, reorderLevel int64) StockStatus {
	switch {
	case onHand <= 0:
		return StockStatusOutOfStock
	case onHand <= reorderLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
