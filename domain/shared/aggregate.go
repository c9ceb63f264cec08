package shared

// Entity objects with identity.
// Ids are generated by the store; 0 means "not persisted yet".
type Entity interface {
	ID() int64
}

// AggregateRoot entry point of an aggregate, owner of its consistency boundary
type AggregateRoot interface {
	Entity

	// PullEvents returns and clears the domain events recorded by the aggregate
	PullEvents() []DomainEvent
}
