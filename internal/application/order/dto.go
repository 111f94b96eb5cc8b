package order

import (
	"time"

	"github.com/stockroom/backend/internal/domain/order"
)

// ScheduleDateLayout is the accepted format of schedule dates
const ScheduleDateLayout = "2006-01-02"

// CreateOrderRequest represents a request to create a receipt, delivery or transfer.
// Vendor applies to receipts, Customer to deliveries, the warehouse pair to transfers.
type CreateOrderRequest struct {
	Vendor                 string `json:"vendor" binding:"max=200"`
	Customer               string `json:"customer" binding:"max=200"`
	ScheduleDate           string `json:"schedule_date" binding:"omitempty,datetime=2006-01-02"`
	Responsible            string `json:"responsible" binding:"max=100"`
	SourceWarehouseID      int64  `json:"source_warehouse_id" binding:"omitempty,min=1"`
	DestinationWarehouseID int64  `json:"destination_warehouse_id" binding:"omitempty,min=1"`
}

// AddLineItemRequest represents a line appended to an order
type AddLineItemRequest struct {
	ProductID   int64 `json:"product_id" binding:"required,min=1"`
	WarehouseID int64 `json:"warehouse_id" binding:"omitempty,min=1"`
	Quantity    int64 `json:"qty" binding:"required,min=1"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=draft ready done"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Quantity    int64     `json:"qty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                     int64              `json:"id"`
	Reference              string             `json:"reference"`
	Kind                   string             `json:"kind"`
	Vendor                 string             `json:"vendor,omitempty"`
	Customer               string             `json:"customer,omitempty"`
	SourceWarehouseID      int64              `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID int64              `json:"destination_warehouse_id,omitempty"`
	ScheduleDate           *string            `json:"schedule_date"`
	Responsible            string             `json:"responsible"`
	Status                 string             `json:"status"`
	TotalQuantity          int64              `json:"total_quantity"`
	Items                  []LineItemResponse `json:"items"`
	DoneAt                 *time.Time         `json:"done_at,omitempty"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// ValidateResponse reports the status reached by a validate call
type ValidateResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Changed   bool   `json:"changed"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                     o.ID,
		Reference:              o.Reference(),
		Kind:                   o.Kind.String(),
		SourceWarehouseID:      o.SourceWarehouseID,
		DestinationWarehouseID: o.DestinationWarehouseID,
		Responsible:            o.Responsible,
		Status:                 o.Status.String(),
		TotalQuantity:          o.TotalQuantity(),
		Items:                  make([]LineItemResponse, len(o.Lines)),
		DoneAt:                 o.DoneAt,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
	switch o.Kind {
	case order.KindReceipt:
		resp.Vendor = o.Counterparty
	case order.KindDelivery:
		resp.Customer = o.Counterparty
	}
	if o.ScheduleDate != nil {
		d := o.ScheduleDate.Format(ScheduleDateLayout)
		resp.ScheduleDate = &d
	}
	for i, l := range o.Lines {
		resp.Items[i] = LineItemResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			WarehouseID: l.WarehouseID,
			Quantity:    l.Quantity,
			CreatedAt:   l.CreatedAt,
		}
	}
	return resp
}
