package shared

import "time"

// DomainEvent something that happened inside an aggregate
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	AggregateID() int64
}

// BaseEvent common fields for domain events, meant to be embedded
type BaseEvent struct {
	name        string
	aggregateID int64
	occurredOn  time.Time
}

func NewBaseEvent(name string, aggregateID int64) BaseEvent {
	return BaseEvent{name: name, aggregateID: aggregateID, occurredOn: time.Now()}
}

func (e BaseEvent) EventName() string     { return e.name }
func (e BaseEvent) OccurredOn() time.Time { return e.occurredOn }
func (e BaseEvent) AggregateID() int64    { return e.aggregateID }
