/*
Package order Order aggregate

Order is the aggregate root. It owns its OrderItem lines and its Delivery; it references a
Member and, through each line, an Item. Associations that a query did not fetch stay
unloaded and are reported as such (MemberLoaded, DeliveryLoaded, OrderItemsLoaded); nothing
here performs I/O. Repositories fill associations through the Link* methods, which keep both
sides of each link consistent.
*/
package order

import (
	"time"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/shared"
)

// Order aggregate root
type Order struct {
	id        int64
	orderDate time.Time
	status    Status

	memberID int64
	member   *member.Member

	deliveryID int64
	delivery   *Delivery

	orderItems  []*OrderItem
	itemsLoaded bool

	events []shared.DomainEvent
}

// CreateOrder places a new order for member, delivered by delivery, with at least one line.
// Stock was already taken out by CreateOrderItem.
func CreateOrder(m *member.Member, delivery *Delivery, items ...*OrderItem) (*Order, error) {
	if m == nil {
		return nil, newInvalidInputError(ErrMissingMember)
	}
	if delivery == nil {
		return nil, newInvalidInputError(ErrMissingDelivery)
	}
	if len(items) == 0 {
		return nil, newInvalidInputError(ErrEmptyOrderItems)
	}

	o := &Order{
		orderDate:   time.Now(),
		status:      StatusOrdered,
		itemsLoaded: true,
	}
	o.setMember(m)
	o.setDelivery(delivery)
	for _, oi := range items {
		o.addOrderItem(oi)
	}
	o.events = append(o.events, OrderPlacedEvent{
		order:      o,
		occurredOn: o.orderDate,
		TotalPrice: o.TotalPrice(),
	})
	return o, nil
}

// ReconstructionDTO order row data, for repository use only.
// Associations are attached afterwards with the Link* methods.
type ReconstructionDTO struct {
	ID         int64
	MemberID   int64
	DeliveryID int64
	OrderDate  time.Time
	Status     Status
}

// RebuildFromDTO rebuilds an order with every association unloaded
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:         dto.ID,
		memberID:   dto.MemberID,
		deliveryID: dto.DeliveryID,
		orderDate:  dto.OrderDate,
		status:     dto.Status,
	}
}

// setMember sets the member and registers the order on the member's list
func (o *Order) setMember(m *member.Member) {
	o.member = m
	o.memberID = m.ID()
	m.AttachOrder(o)
}

// addOrderItem appends a line and points it back at this order
func (o *Order) addOrderItem(oi *OrderItem) {
	o.orderItems = append(o.orderItems, oi)
	oi.order = o
}

// setDelivery sets the delivery and points it back at this order
func (o *Order) setDelivery(d *Delivery) {
	o.delivery = d
	o.deliveryID = d.ID()
	d.order = o
}

// LinkMember attaches the fetched member. It must be the one referenced by member_id.
func (o *Order) LinkMember(m *member.Member) error {
	if m == nil || m.ID() != o.memberID {
		return newMismatchError(o.id, "member")
	}
	o.setMember(m)
	return nil
}

// LinkDelivery attaches the fetched delivery
func (o *Order) LinkDelivery(d *Delivery) error {
	if d == nil || d.ID() != o.deliveryID {
		return newMismatchError(o.id, "delivery")
	}
	o.setDelivery(d)
	return nil
}

// LinkOrderItems attaches the complete set of fetched lines and marks them loaded.
// Calling it again replaces the previous set.
func (o *Order) LinkOrderItems(items []*OrderItem) {
	o.orderItems = make([]*OrderItem, 0, len(items))
	for _, oi := range items {
		o.addOrderItem(oi)
	}
	o.itemsLoaded = true
}

// AssignID sets the store generated id after the first insert
func (o *Order) AssignID(id int64) { o.id = id }

// SyncDeliveryID refreshes the delivery foreign key after the delivery row was inserted
func (o *Order) SyncDeliveryID() {
	if o.delivery != nil {
		o.deliveryID = o.delivery.ID()
	}
}

// Cancel cancels the order and restores stock for every line.
// All restocks are checked before anything changes, so a failure leaves the
// order and its items as they were.
func (o *Order) Cancel() error {
	if o.delivery == nil {
		return newNotLoadedError(o.id, "delivery")
	}
	if !o.itemsLoaded {
		return newNotLoadedError(o.id, "order items")
	}
	if o.delivery.Status() == DeliveryCompleted {
		return newAlreadyDeliveredError(o.id)
	}
	if o.status == StatusCancelled {
		return newAlreadyCancelledError(o.id)
	}

	// the same item may appear on several lines
	restock := make(map[*item.Item]int, len(o.orderItems))
	for _, oi := range o.orderItems {
		if oi.item == nil {
			return newNotLoadedError(o.id, "item")
		}
		restock[oi.item] += oi.count
	}
	for it, count := range restock {
		if err := it.CanAddStock(count); err != nil {
			return err
		}
	}

	// every restock was validated above, so no line can fail from here on
	restored := 0
	for _, oi := range o.orderItems {
		if err := oi.cancel(); err != nil {
			return err
		}
		restored += oi.count
	}
	o.status = StatusCancelled
	o.events = append(o.events, newOrderCancelledEvent(o.id, restored))
	return nil
}

// TotalPrice sum of every line's total. Zero when the lines are not loaded.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, oi := range o.orderItems {
		total += oi.TotalPrice()
	}
	return total
}

func (o *Order) ID() int64            { return o.id }
func (o *Order) OrderDate() time.Time { return o.orderDate }
func (o *Order) Status() Status       { return o.status }
func (o *Order) MemberID() int64      { return o.memberID }
func (o *Order) DeliveryID() int64    { return o.deliveryID }

// Member the ordering member, nil unless MemberLoaded
func (o *Order) Member() *member.Member { return o.member }
func (o *Order) MemberLoaded() bool     { return o.member != nil }

// Delivery the delivery, nil unless DeliveryLoaded
func (o *Order) Delivery() *Delivery  { return o.delivery }
func (o *Order) DeliveryLoaded() bool { return o.delivery != nil }

// OrderItems returns a copy of the lines, empty unless OrderItemsLoaded
func (o *Order) OrderItems() []*OrderItem {
	items := make([]*OrderItem, len(o.orderItems))
	copy(items, o.orderItems)
	return items
}
func (o *Order) OrderItemsLoaded() bool { return o.itemsLoaded }

// PullEvents returns and clears the recorded events
func (o *Order) PullEvents() []shared.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

var _ shared.AggregateRoot = (*Order)(nil)
