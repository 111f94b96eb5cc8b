package models

import (
	"time"

	"github.com/stockroom/backend/internal/domain/order"
)

// OrderModel is the persistence model for receipt, delivery and transfer orders.
// All three kinds share one table keyed by kind.
type OrderModel struct {
	BaseModel
	Kind                   string     `gorm:"type:varchar(20);not null;index:idx_orders_kind_status,priority:1"`
	Counterparty           string     `gorm:"type:varchar(200)"`
	Responsible            string     `gorm:"type:varchar(100)"`
	ScheduleDate           *time.Time `gorm:"type:date"`
	SourceWarehouseID      *int64     `gorm:"index"`
	DestinationWarehouseID *int64     `gorm:"index"`
	Status                 string     `gorm:"type:varchar(20);not null;default:'draft';index:idx_orders_kind_status,priority:2"`
	DoneAt                 *time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order with its lines.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity:   m.BaseModel.ToDomain(),
		Kind:         order.Kind(m.Kind),
		Counterparty: m.Counterparty,
		Responsible:  m.Responsible,
		ScheduleDate: m.ScheduleDate,
		Status:       order.Status(m.Status),
		DoneAt:       m.DoneAt,
		Lines:        make([]order.LineItem, len(m.Items)),
	}
	if m.SourceWarehouseID != nil {
		o.SourceWarehouseID = *m.SourceWarehouseID
	}
	if m.DestinationWarehouseID != nil {
		o.DestinationWarehouseID = *m.DestinationWarehouseID
	}
	for i := range m.Items {
		o.Lines[i] = m.Items[i].ToDomain()
	}
	return o
}

// OrderModelFromDomain creates the header model from a domain Order. Lines are not copied.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		Kind:         string(o.Kind),
		Counterparty: o.Counterparty,
		Responsible:  o.Responsible,
		ScheduleDate: o.ScheduleDate,
		Status:       string(o.Status),
		DoneAt:       o.DoneAt,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	if o.SourceWarehouseID > 0 {
		id := o.SourceWarehouseID
		m.SourceWarehouseID = &id
	}
	if o.DestinationWarehouseID > 0 {
		id := o.DestinationWarehouseID
		m.DestinationWarehouseID = &id
	}
	return m
}

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     int64     `gorm:"not null;index"`
	ProductID   int64     `gorm:"not null;index"`
	WarehouseID int64     `gorm:"not null"`
	Quantity    int64     `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *OrderItemModel) ToDomain() order.LineItem {
	return order.LineItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain LineItem.
func OrderItemModelFromDomain(l *order.LineItem) *OrderItemModel {
	return &OrderItemModel{
		ID:          l.ID,
		OrderID:     l.OrderID,
		ProductID:   l.ProductID,
		WarehouseID: l.WarehouseID,
		Quantity:    l.Quantity,
		CreatedAt:   l.CreatedAt,
	}
}
