package order

import (
	"context"
	"time"

	"shop/domain/member"
)

// MaxSearchResults default cap on FindAllByCriteria
const MaxSearchResults = 1000

// Page offset/limit window. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

// Repository order persistence plus the fetch strategies of the read side.
//
// FindOne returns a fully loaded aggregate. The Find* strategies load exactly what their
// name says and leave the rest unloaded; the Load* methods fetch one association on demand.
type Repository interface {
	// Save inserts a new order with its delivery and lines, or updates status fields of an
	// existing one
	Save(ctx context.Context, o *Order) error

	// FindOne loads the order with member, delivery, lines and their items
	FindOne(ctx context.Context, id int64) (*Order, error)

	// FindAllByCriteria orders matching search with no association loaded, capped at
	// MaxSearchResults unless configured otherwise
	FindAllByCriteria(ctx context.Context, search OrderSearch) ([]*Order, error)

	// FindAllWithMemberDelivery orders joined with member and delivery in one query
	FindAllWithMemberDelivery(ctx context.Context, page Page) ([]*Order, error)

	// FindAllWithItem orders with member, delivery, lines and items in one query,
	// one entry per order in first-seen row order
	FindAllWithItem(ctx context.Context) ([]*Order, error)

	LoadMember(ctx context.Context, o *Order) error
	LoadDelivery(ctx context.Context, o *Order) error

	// LoadOrderItems fetches the order's lines; their items stay unloaded
	LoadOrderItems(ctx context.Context, o *Order) error

	// LoadItem fetches the item of one line
	LoadItem(ctx context.Context, oi *OrderItem) error

	// LoadOrderItemsBatch fetches lines and items for all orders with a fixed number of queries
	LoadOrderItemsBatch(ctx context.Context, orders []*Order) error
}

// SimpleQueryDto flat order projection selected directly by the store
type SimpleQueryDto struct {
	OrderID     int64
	Name        string
	OrderDate   time.Time
	OrderStatus Status
	Address     member.Address
}

// QueryRepository projection queries that bypass the aggregate
type QueryRepository interface {
	FindOrderDtos(ctx context.Context) ([]SimpleQueryDto, error)
}
