/*
Order domain errors

Every constructor returns a *shared.DomainError, which supports:
  - errors.Is(err, ErrOrderNotFound)  (specific sentinel)
  - errors.Is(err, shared.ErrNotFound) (kind)
  - err.(shared.Stacker).Stack()       (creation-site stack)
*/
package order

import (
	"errors"
	"strconv"

	"shop/domain/shared"
)

var (
	// ErrOrderNotFound no order with the requested id
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrderItems an order needs at least one line item
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidCount line item count must be positive
	ErrInvalidCount = errors.New("count must be positive")

	// ErrAlreadyDelivered the delivery is complete, the order can no longer be cancelled
	ErrAlreadyDelivered = errors.New("delivery already completed, order cannot be cancelled")

	// ErrAlreadyCancelled the order was cancelled before
	ErrAlreadyCancelled = errors.New("order already cancelled")

	// ErrInvalidStatus unknown order status in a search
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrNotLoaded an association needed by the operation was not fetched
	ErrNotLoaded = errors.New("association not loaded")

	// ErrMismatchedAssociation a fetched entity does not belong to this order
	ErrMismatchedAssociation = errors.New("association does not belong to this order")

	// ErrMissingMember order without member
	ErrMissingMember = errors.New("order requires a member")

	// ErrMissingDelivery order without delivery
	ErrMissingDelivery = errors.New("order requires a delivery")
)

// NewOrderNotFoundError creates a NotFound error for the given order id
func NewOrderNotFoundError(id int64) error {
	return shared.NewError(shared.ErrNotFound, ErrOrderNotFound, "order",
		"order not found: "+strconv.FormatInt(id, 10))
}

func newAlreadyDeliveredError(id int64) error {
	return shared.Errorf(shared.ErrInvalidState, ErrAlreadyDelivered, "order",
		"order %d: delivery already completed, cannot cancel", id)
}

func newAlreadyCancelledError(id int64) error {
	return shared.Errorf(shared.ErrInvalidState, ErrAlreadyCancelled, "order",
		"order %d is already cancelled", id)
}

func newNotLoadedError(id int64, association string) error {
	return shared.Errorf(shared.ErrInvalidState, ErrNotLoaded, "order",
		"order %d: %s not loaded", id, association)
}

func newMismatchError(id int64, association string) error {
	return shared.Errorf(shared.ErrInvalidInput, ErrMismatchedAssociation, "order",
		"order %d: %s does not belong to this order", id, association)
}

func newInvalidInputError(sentinel error) error {
	return shared.NewError(shared.ErrInvalidInput, sentinel, "order", sentinel.Error())
}
