package po

import (
	"time"

	"shop/domain/order"
)

// Row types below are scan targets for the join queries. Column aliases in the
// repositories' SELECT lists must match the column tags.

// OrderMemberDeliveryRow orders ⋈ members ⋈ deliveries
type OrderMemberDeliveryRow struct {
	OrderID        int64     `gorm:"column:order_id"`
	OrderDate      time.Time `gorm:"column:order_date"`
	OrderStatus    string    `gorm:"column:order_status"`
	MemberID       int64     `gorm:"column:member_id"`
	MemberName     string    `gorm:"column:member_name"`
	MemberCity     string    `gorm:"column:member_city"`
	MemberStreet   string    `gorm:"column:member_street"`
	MemberZipcode  string    `gorm:"column:member_zipcode"`
	DeliveryID     int64     `gorm:"column:delivery_id"`
	DeliveryCity   string    `gorm:"column:delivery_city"`
	DeliveryStreet string    `gorm:"column:delivery_street"`
	DeliveryZip    string    `gorm:"column:delivery_zipcode"`
	DeliveryStatus string    `gorm:"column:delivery_status"`
}

func (r *OrderMemberDeliveryRow) Order() *OrderPO {
	return &OrderPO{ID: r.OrderID, MemberID: r.MemberID, DeliveryID: r.DeliveryID, OrderDate: r.OrderDate, Status: r.OrderStatus}
}

func (r *OrderMemberDeliveryRow) Member() *MemberPO {
	return &MemberPO{
		ID:      r.MemberID,
		Name:    r.MemberName,
		Address: AddressPO{City: r.MemberCity, Street: r.MemberStreet, Zipcode: r.MemberZipcode},
	}
}

func (r *OrderMemberDeliveryRow) Delivery() *DeliveryPO {
	return &DeliveryPO{
		ID:      r.DeliveryID,
		Address: AddressPO{City: r.DeliveryCity, Street: r.DeliveryStreet, Zipcode: r.DeliveryZip},
		Status:  r.DeliveryStatus,
	}
}

// OrderItemItemRow order_items ⋈ items
type OrderItemItemRow struct {
	OrderItemID       int64  `gorm:"column:order_item_id"`
	OrderItemOrderID  int64  `gorm:"column:order_item_order_id"`
	OrderItemPrice    int64  `gorm:"column:order_item_price"`
	OrderItemCount    int    `gorm:"column:order_item_count"`
	ItemID            int64  `gorm:"column:item_id"`
	ItemDType         string `gorm:"column:item_dtype"`
	ItemName          string `gorm:"column:item_name"`
	ItemPrice         int64  `gorm:"column:item_price"`
	ItemStockQuantity int    `gorm:"column:item_stock_quantity"`
	ItemAuthor        string `gorm:"column:item_author"`
	ItemISBN          string `gorm:"column:item_isbn"`
	ItemArtist        string `gorm:"column:item_artist"`
	ItemEtc           string `gorm:"column:item_etc"`
	ItemDirector      string `gorm:"column:item_director"`
	ItemActor         string `gorm:"column:item_actor"`
}

func (r *OrderItemItemRow) OrderItem() *OrderItemPO {
	return &OrderItemPO{ID: r.OrderItemID, OrderID: r.OrderItemOrderID, ItemID: r.ItemID, OrderPrice: r.OrderItemPrice, Count: r.OrderItemCount}
}

func (r *OrderItemItemRow) Item() *ItemPO {
	return &ItemPO{
		ID:            r.ItemID,
		DType:         r.ItemDType,
		Name:          r.ItemName,
		Price:         r.ItemPrice,
		StockQuantity: r.ItemStockQuantity,
		Author:        r.ItemAuthor,
		ISBN:          r.ItemISBN,
		Artist:        r.ItemArtist,
		Etc:           r.ItemEtc,
		Director:      r.ItemDirector,
		Actor:         r.ItemActor,
	}
}

// OrderGraphRow one row of the full fetch join: order, member, delivery, line and item
type OrderGraphRow struct {
	OrderMemberDeliveryRow `gorm:"embedded"`
	OrderItemItemRow       `gorm:"embedded"`
}

// SimpleQueryRow flat projection row
type SimpleQueryRow struct {
	OrderID     int64     `gorm:"column:order_id"`
	Name        string    `gorm:"column:name"`
	OrderDate   time.Time `gorm:"column:order_date"`
	OrderStatus string    `gorm:"column:order_status"`
	City        string    `gorm:"column:city"`
	Street      string    `gorm:"column:street"`
	Zipcode     string    `gorm:"column:zipcode"`
}

func (r *SimpleQueryRow) ToDomain() order.SimpleQueryDto {
	return order.SimpleQueryDto{
		OrderID:     r.OrderID,
		Name:        r.Name,
		OrderDate:   r.OrderDate,
		OrderStatus: order.Status(r.OrderStatus),
		Address:     AddressPO{City: r.City, Street: r.Street, Zipcode: r.Zipcode}.ToDomain(),
	}
}
