package order

import (
	"time"

	"shop/domain/member"
	"shop/domain/order"
)

// PlaceOrderRequest body of POST /api/v1/orders
type PlaceOrderRequest struct {
	MemberID int64 `json:"memberId" binding:"required,min=1"`
	ItemID   int64 `json:"itemId" binding:"required,min=1"`
	Count    int   `json:"count" binding:"required,min=1"`
}

// PlaceOrderResponse id of the created order
type PlaceOrderResponse struct {
	OrderID int64 `json:"orderId"`
}

// SearchRequest query of GET /api/v1/orders
type SearchRequest struct {
	MemberName  string `form:"memberName"`
	OrderStatus string `form:"orderStatus"`
}

// PageRequest query of GET /api/v3.1/orders
type PageRequest struct {
	Offset int `form:"offset" binding:"min=0"`
	Limit  int `form:"limit" binding:"min=0,max=1000"`
}

type AddressDto struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// OrderDto order with its lines
type OrderDto struct {
	OrderID     int64          `json:"orderId"`
	MemberName  string         `json:"memberName"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus string         `json:"orderStatus"`
	Address     AddressDto     `json:"address"`
	TotalPrice  int64          `json:"totalPrice"`
	OrderItems  []OrderItemDto `json:"orderItems"`
}

type OrderItemDto struct {
	ItemName   string `json:"itemName"`
	OrderPrice int64  `json:"orderPrice"`
	Count      int    `json:"count"`
}

// SimpleOrderDto order summary without lines
type SimpleOrderDto struct {
	OrderID     int64      `json:"orderId"`
	MemberName  string     `json:"memberName"`
	OrderDate   time.Time  `json:"orderDate"`
	OrderStatus string     `json:"orderStatus"`
	Address     AddressDto `json:"address"`
}

func toAddressDto(a member.Address) AddressDto {
	return AddressDto{City: a.City(), Street: a.Street(), Zipcode: a.Zipcode()}
}

// toOrderDto expects member, delivery, lines and their items loaded
func toOrderDto(o *order.Order) OrderDto {
	lines := o.OrderItems()
	items := make([]OrderItemDto, len(lines))
	for i, oi := range lines {
		items[i] = OrderItemDto{
			ItemName:   oi.Item().Name(),
			OrderPrice: oi.OrderPrice(),
			Count:      oi.Count(),
		}
	}
	return OrderDto{
		OrderID:     o.ID(),
		MemberName:  o.Member().Name(),
		OrderDate:   o.OrderDate(),
		OrderStatus: string(o.Status()),
		Address:     toAddressDto(o.Delivery().Address()),
		TotalPrice:  o.TotalPrice(),
		OrderItems:  items,
	}
}

// toSimpleOrderDto expects member and delivery loaded
func toSimpleOrderDto(o *order.Order) SimpleOrderDto {
	return SimpleOrderDto{
		OrderID:     o.ID(),
		MemberName:  o.Member().Name(),
		OrderDate:   o.OrderDate(),
		OrderStatus: string(o.Status()),
		Address:     toAddressDto(o.Delivery().Address()),
	}
}

// FromQueryDto JSON shape of a store projection
func FromQueryDto(dto order.SimpleQueryDto) SimpleOrderDto {
	return SimpleOrderDto{
		OrderID:     dto.OrderID,
		MemberName:  dto.Name,
		OrderDate:   dto.OrderDate,
		OrderStatus: string(dto.OrderStatus),
		Address:     toAddressDto(dto.Address),
	}
}
