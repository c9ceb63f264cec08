package order

import (
	"time"

	"shop/domain/shared"
)

const (
	EventOrderPlaced    = "order.placed"
	EventOrderCancelled = "order.cancelled"
)

// OrderPlacedEvent recorded by CreateOrder.
// The id is read from the order when the event is pulled, which happens after the insert.
type OrderPlacedEvent struct {
	order      *Order
	occurredOn time.Time
	TotalPrice int64
}

func (e OrderPlacedEvent) EventName() string     { return EventOrderPlaced }
func (e OrderPlacedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e OrderPlacedEvent) AggregateID() int64    { return e.order.ID() }

// OrderCancelledEvent recorded by Cancel
type OrderCancelledEvent struct {
	shared.BaseEvent
	RestoredUnits int
}

func newOrderCancelledEvent(orderID int64, restored int) OrderCancelledEvent {
	return OrderCancelledEvent{
		BaseEvent:     shared.NewBaseEvent(EventOrderCancelled, orderID),
		RestoredUnits: restored,
	}
}
