package po

import (
	"time"

	"shop/domain/order"
)

// OrderPO orders table.
// Only foreign key columns are kept; GORM associations are not declared on purpose.
type OrderPO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	MemberID   int64     `gorm:"index;not null"`
	DeliveryID int64     `gorm:"uniqueIndex;not null"`
	OrderDate  time.Time `gorm:"not null"`
	Status     string    `gorm:"size:20;not null;index"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO order_items table
type OrderItemPO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	OrderID    int64 `gorm:"index;not null"`
	ItemID     int64 `gorm:"index;not null"`
	OrderPrice int64 `gorm:"not null"`
	Count      int   `gorm:"not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// DeliveryPO deliveries table
type DeliveryPO struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	Address AddressPO `gorm:"embedded"`
	Status  string    `gorm:"size:10;not null"`
}

func (DeliveryPO) TableName() string {
	return "deliveries"
}

func FromOrderDomain(o *order.Order) *OrderPO {
	return &OrderPO{
		ID:         o.ID(),
		MemberID:   o.MemberID(),
		DeliveryID: o.DeliveryID(),
		OrderDate:  o.OrderDate(),
		Status:     string(o.Status()),
	}
}

func (po *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:         po.ID,
		MemberID:   po.MemberID,
		DeliveryID: po.DeliveryID,
		OrderDate:  po.OrderDate,
		Status:     order.Status(po.Status),
	})
}

func FromOrderItemDomain(orderID int64, oi *order.OrderItem) OrderItemPO {
	return OrderItemPO{
		ID:         oi.ID(),
		OrderID:    orderID,
		ItemID:     oi.ItemID(),
		OrderPrice: oi.OrderPrice(),
		Count:      oi.Count(),
	}
}

func (po *OrderItemPO) ToDomain() *order.OrderItem {
	return order.RebuildOrderItem(order.OrderItemDTO{
		ID:         po.ID,
		ItemID:     po.ItemID,
		OrderPrice: po.OrderPrice,
		Count:      po.Count,
	})
}

func FromDeliveryDomain(d *order.Delivery) *DeliveryPO {
	return &DeliveryPO{
		ID:      d.ID(),
		Address: FromAddress(d.Address()),
		Status:  string(d.Status()),
	}
}

func (po *DeliveryPO) ToDomain() *order.Delivery {
	return order.RebuildDelivery(order.DeliveryDTO{
		ID:      po.ID,
		Address: po.Address.ToDomain(),
		Status:  order.DeliveryStatus(po.Status),
	})
}
