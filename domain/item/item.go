/*
Package item Item subdomain

Items of every kind share name, price and the stock ledger; the kind-specific fields live in a
Details value (Book, Album, Movie) selected by the Kind discriminator. Orders reference items,
they never own them.
*/
package item

import (
	"context"

	"shop/domain/shared"
)

// Item sellable item with a stock ledger
type Item struct {
	id            int64
	name          string
	price         int64 // minor currency unit
	stockQuantity int
	details       Details

	// stockLimit upper bound for AddStock, 0 means unbounded
	stockLimit int
}

// NewItem creates an item not yet persisted
func NewItem(name string, price int64, stockQuantity int, details Details) (*Item, error) {
	if name == "" || price < 0 || stockQuantity < 0 || details == nil {
		return nil, shared.Errorf(shared.ErrInvalidInput, ErrInvalidItem, "item",
			"invalid item: name=%q price=%d stock=%d", name, price, stockQuantity)
	}
	return &Item{
		name:          name,
		price:         price,
		stockQuantity: stockQuantity,
		details:       details,
	}, nil
}

// ReconstructionDTO item reconstruction data, for repository use only
type ReconstructionDTO struct {
	ID            int64
	Name          string
	Price         int64
	StockQuantity int
	Details       Details
	StockLimit    int
}

// RebuildFromDTO rebuilds an item loaded from storage
func RebuildFromDTO(dto ReconstructionDTO) *Item {
	return &Item{
		id:            dto.ID,
		name:          dto.Name,
		price:         dto.Price,
		stockQuantity: dto.StockQuantity,
		details:       dto.Details,
		stockLimit:    dto.StockLimit,
	}
}

// AssignID sets the store generated id after the first insert
func (i *Item) AssignID(id int64) { i.id = id }

// LimitStock sets the AddStock upper bound (0 = unbounded)
func (i *Item) LimitStock(limit int) { i.stockLimit = limit }

// ChangePrice changes the list price. Existing order items keep their snapshot.
func (i *Item) ChangePrice(price int64) error {
	if price < 0 {
		return shared.Errorf(shared.ErrInvalidInput, ErrInvalidItem, "item", "price must not be negative, got %d", price)
	}
	i.price = price
	return nil
}

func (i *Item) ID() int64          { return i.id }
func (i *Item) Name() string       { return i.name }
func (i *Item) Price() int64       { return i.price }
func (i *Item) StockQuantity() int { return i.stockQuantity }
func (i *Item) Details() Details   { return i.details }
func (i *Item) Kind() Kind         { return i.details.Kind() }
func (i *Item) StockLimit() int    { return i.stockLimit }

// Describe name plus the variant description
func (i *Item) Describe() string {
	return i.name + ": " + i.details.Describe()
}

// Repository item lookups and stock persistence
type Repository interface {
	Save(ctx context.Context, i *Item) error

	FindOne(ctx context.Context, id int64) (*Item, error)

	// FindOneForUpdate like FindOne, but locks the row for the current transaction
	// where the store supports it
	FindOneForUpdate(ctx context.Context, id int64) (*Item, error)

	FindAll(ctx context.Context) ([]*Item, error)
}
