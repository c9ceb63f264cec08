package shared

import "context"

// Specification encapsulates a business rule used to select entities.
// IsSatisfiedBy is the in-memory form; the persistence layer translates
// known specifications to queries.
type Specification[T any] interface {
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

// AndSpecification logical AND of any number of specifications.
// An empty conjunction is satisfied by everything.
type AndSpecification[T any] struct {
	Specs []Specification[T]
}

// IsSatisfiedBy returns true if every inner specification is satisfied
func (spec AndSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	for _, s := range spec.Specs {
		if !s.IsSatisfiedBy(ctx, entity) {
			return false
		}
	}
	return true
}

// And creates an AndSpecification, dropping nil entries
func And[T any](specs ...Specification[T]) AndSpecification[T] {
	kept := make([]Specification[T], 0, len(specs))
	for _, s := range specs {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return AndSpecification[T]{Specs: kept}
}
