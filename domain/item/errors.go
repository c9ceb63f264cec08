package item

import (
	"errors"
	"strconv"

	"shop/domain/shared"
)

var (
	// ErrItemNotFound no item with the requested id
	ErrItemNotFound = errors.New("item not found")

	// ErrNotEnoughStock requested quantity exceeds stock
	ErrNotEnoughStock = errors.New("need more stock")

	// ErrStockOverflow restock would exceed the configured maximum
	ErrStockOverflow = errors.New("stock quantity would exceed the configured maximum")

	// ErrInvalidQuantity quantity must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidItem name, price or initial stock is invalid
	ErrInvalidItem = errors.New("invalid item")

	// ErrUnknownKind the stored discriminator has no matching variant
	ErrUnknownKind = errors.New("unknown item kind")
)

// NewItemNotFoundError creates a NotFound error for the given item id
func NewItemNotFoundError(id int64) error {
	return shared.NewError(shared.ErrNotFound, ErrItemNotFound, "item",
		"item not found: "+strconv.FormatInt(id, 10))
}

func newNotEnoughStockError(id int64, requested, available int) error {
	return shared.Errorf(shared.ErrOutOfStock, ErrNotEnoughStock, "item",
		"need more stock: item %d requested %d, available %d", id, requested, available)
}

func newStockOverflowError(id int64, quantity, limit int) error {
	return shared.Errorf(shared.ErrInvalidState, ErrStockOverflow, "item",
		"stock of item %d would reach %d, limit is %d", id, quantity, limit)
}

func newInvalidQuantityError(n int) error {
	return shared.Errorf(shared.ErrInvalidInput, ErrInvalidQuantity, "item",
		"quantity must be positive, got %d", n)
}
