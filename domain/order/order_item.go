package order

import (
	"shop/domain/item"
	"shop/domain/shared"
)

// OrderItem order line. orderPrice is the unit price at the time of ordering.
type OrderItem struct {
	id         int64
	itemID     int64
	item       *item.Item
	order      *Order
	orderPrice int64
	count      int
}

// CreateOrderItem creates a line for count units of it at orderPrice and
// takes the units out of stock. On error the stock is unchanged.
func CreateOrderItem(it *item.Item, orderPrice int64, count int) (*OrderItem, error) {
	if it == nil {
		return nil, shared.NewError(shared.ErrInvalidInput, item.ErrInvalidItem, "order_item", "item is required")
	}
	if count <= 0 {
		return nil, shared.Errorf(shared.ErrInvalidInput, ErrInvalidCount, "order_item", "count must be positive, got %d", count)
	}
	if err := it.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{
		itemID:     it.ID(),
		item:       it,
		orderPrice: orderPrice,
		count:      count,
	}, nil
}

// OrderItemDTO line row data, for repository use only
type OrderItemDTO struct {
	ID         int64
	ItemID     int64
	OrderPrice int64
	Count      int
}

// RebuildOrderItem rebuilds a line with its item unloaded
func RebuildOrderItem(dto OrderItemDTO) *OrderItem {
	return &OrderItem{
		id:         dto.ID,
		itemID:     dto.ItemID,
		orderPrice: dto.OrderPrice,
		count:      dto.Count,
	}
}

// LinkItem attaches the fetched item
func (oi *OrderItem) LinkItem(it *item.Item) error {
	if it == nil || it.ID() != oi.itemID {
		return shared.Errorf(shared.ErrInvalidInput, ErrMismatchedAssociation, "order_item",
			"order item %d: item does not belong to this line", oi.id)
	}
	oi.item = it
	return nil
}

// cancel puts the line's units back into stock
func (oi *OrderItem) cancel() error {
	return oi.item.AddStock(oi.count)
}

// TotalPrice orderPrice * count
func (oi *OrderItem) TotalPrice() int64 {
	return oi.orderPrice * int64(oi.count)
}

func (oi *OrderItem) AssignID(id int64) { oi.id = id }

func (oi *OrderItem) ID() int64         { return oi.id }
func (oi *OrderItem) ItemID() int64     { return oi.itemID }
func (oi *OrderItem) OrderPrice() int64 { return oi.orderPrice }
func (oi *OrderItem) Count() int        { return oi.count }
func (oi *OrderItem) Order() *Order     { return oi.order }

// Item the referenced item, nil unless ItemLoaded
func (oi *OrderItem) Item() *item.Item { return oi.item }
func (oi *OrderItem) ItemLoaded() bool { return oi.item != nil }
