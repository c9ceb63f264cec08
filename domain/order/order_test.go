package order

import (
	"context"
	"testing"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMember(id int64, name string) *member.Member {
	return member.RebuildFromDTO(member.ReconstructionDTO{
		ID:      id,
		Name:    name,
		Address: member.NewAddress("Seoul", "River", "123-123"),
	})
}

func newItem(id int64, price int64, stock int) *item.Item {
	return item.RebuildFromDTO(item.ReconstructionDTO{
		ID: id, Name: "JPA1 BOOK", Price: price, StockQuantity: stock,
		Details: item.Book{Author: "Kim", ISBN: "1"},
	})
}

func placeOrder(t *testing.T, m *member.Member, lines ...*OrderItem) *Order {
	t.Helper()
	o, err := CreateOrder(m, NewDelivery(m.Address()), lines...)
	require.NoError(t, err)
	return o
}

func TestCreateOrder_LinksBothSides(t *testing.T) {
	m := newMember(1, "Jieun")
	book := newItem(10, 1000, 5)
	oi, err := CreateOrderItem(book, book.Price(), 3)
	require.NoError(t, err)

	o := placeOrder(t, m, oi)

	assert.Equal(t, StatusOrdered, o.Status())
	assert.False(t, o.OrderDate().IsZero())
	assert.Same(t, m, o.Member())
	assert.Same(t, o, o.Delivery().Order())
	assert.Equal(t, DeliveryReady, o.Delivery().Status())
	assert.Equal(t, m.Address(), o.Delivery().Address())
	require.Len(t, o.OrderItems(), 1)
	assert.Same(t, o, o.OrderItems()[0].Order())
	require.Len(t, m.Orders(), 1)
	assert.Same(t, o, m.Orders()[0])
	assert.True(t, o.MemberLoaded() && o.DeliveryLoaded() && o.OrderItemsLoaded())

	assert.Equal(t, int64(3000), o.TotalPrice())
	assert.Equal(t, 2, book.StockQuantity())
}

func TestCreateOrder_RequiresItems(t *testing.T) {
	m := newMember(1, "Jieun")
	_, err := CreateOrder(m, NewDelivery(m.Address()))
	assert.ErrorIs(t, err, ErrEmptyOrderItems)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = CreateOrder(nil, NewDelivery(m.Address()), &OrderItem{})
	assert.ErrorIs(t, err, ErrMissingMember)
	_, err = CreateOrder(m, nil, &OrderItem{})
	assert.ErrorIs(t, err, ErrMissingDelivery)
}

func TestCreateOrderItem_OutOfStockCreatesNothing(t *testing.T) {
	book := newItem(10, 1000, 2)

	oi, err := CreateOrderItem(book, book.Price(), 3)
	assert.Nil(t, oi)
	assert.ErrorIs(t, err, item.ErrNotEnoughStock)
	assert.ErrorIs(t, err, shared.ErrOutOfStock)
	assert.Equal(t, 2, book.StockQuantity())

	_, err = CreateOrderItem(book, book.Price(), 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
	assert.Equal(t, 2, book.StockQuantity())
}

func TestTotalPrice_UsesSnapshot(t *testing.T) {
	book := newItem(10, 1000, 10)
	album := newItem(11, 2500, 10)
	oi1, err := CreateOrderItem(book, book.Price(), 2)
	require.NoError(t, err)
	oi2, err := CreateOrderItem(album, album.Price(), 1)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi1, oi2)

	require.NoError(t, book.ChangePrice(9999))

	assert.Equal(t, int64(4500), o.TotalPrice())
	assert.Equal(t, o.TotalPrice(), o.TotalPrice())
	assert.Equal(t, int64(2000), oi1.TotalPrice())
}

func TestCancel_RestoresStock(t *testing.T) {
	book := newItem(10, 1000, 5)
	oi, err := CreateOrderItem(book, book.Price(), 3)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi)
	o.AssignID(100)
	_ = o.PullEvents()

	require.NoError(t, o.Cancel())

	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, 5, book.StockQuantity())

	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCancelled, events[0].EventName())
	assert.Equal(t, int64(100), events[0].AggregateID())
}

func TestCancel_Twice(t *testing.T) {
	book := newItem(10, 1000, 5)
	oi, err := CreateOrderItem(book, book.Price(), 3)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi)

	require.NoError(t, o.Cancel())
	err = o.Cancel()
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, 5, book.StockQuantity(), "stock restored only once")
}

func TestCancel_CompletedDelivery(t *testing.T) {
	book := newItem(10, 1000, 5)
	oi, err := CreateOrderItem(book, book.Price(), 3)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi)
	require.NoError(t, o.Delivery().Complete())

	err = o.Cancel()
	assert.ErrorIs(t, err, ErrAlreadyDelivered)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, StatusOrdered, o.Status())
	assert.Equal(t, 2, book.StockQuantity())

	assert.ErrorIs(t, o.Delivery().Complete(), ErrAlreadyDelivered)
}

func TestCancel_AllOrNothing(t *testing.T) {
	book := newItem(10, 1000, 10)
	album := newItem(11, 2000, 10)
	oi1, err := CreateOrderItem(book, book.Price(), 2)
	require.NoError(t, err)
	oi2, err := CreateOrderItem(album, album.Price(), 4)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi1, oi2)

	// the album cannot take 4 units back
	album.LimitStock(8)

	err = o.Cancel()
	assert.ErrorIs(t, err, item.ErrStockOverflow)
	assert.Equal(t, StatusOrdered, o.Status())
	assert.Equal(t, 8, book.StockQuantity())
	assert.Equal(t, 6, album.StockQuantity())
}

func TestCancel_SameItemOnTwoLines(t *testing.T) {
	book := newItem(10, 1000, 10)
	oi1, err := CreateOrderItem(book, book.Price(), 3)
	require.NoError(t, err)
	oi2, err := CreateOrderItem(book, book.Price(), 3)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi1, oi2)
	require.Equal(t, 4, book.StockQuantity())

	// each line alone fits under the limit, both together do not
	book.LimitStock(9)
	assert.ErrorIs(t, o.Cancel(), item.ErrStockOverflow)
	assert.Equal(t, 4, book.StockQuantity())

	book.LimitStock(10)
	require.NoError(t, o.Cancel())
	assert.Equal(t, 10, book.StockQuantity())
}

func TestCancel_RequiresLoadedAggregate(t *testing.T) {
	o := RebuildFromDTO(ReconstructionDTO{ID: 5, MemberID: 1, DeliveryID: 2, Status: StatusOrdered})
	assert.ErrorIs(t, o.Cancel(), ErrNotLoaded)

	require.NoError(t, o.LinkDelivery(RebuildDelivery(DeliveryDTO{ID: 2, Status: DeliveryReady})))
	assert.ErrorIs(t, o.Cancel(), ErrNotLoaded)

	o.LinkOrderItems([]*OrderItem{RebuildOrderItem(OrderItemDTO{ID: 9, ItemID: 10, OrderPrice: 1000, Count: 1})})
	assert.ErrorIs(t, o.Cancel(), ErrNotLoaded, "line item not loaded")
	assert.Equal(t, StatusOrdered, o.Status())
}

func TestRebuild_Unloaded(t *testing.T) {
	o := RebuildFromDTO(ReconstructionDTO{ID: 5, MemberID: 1, DeliveryID: 2, Status: StatusOrdered})

	assert.False(t, o.MemberLoaded())
	assert.False(t, o.DeliveryLoaded())
	assert.False(t, o.OrderItemsLoaded())
	assert.Nil(t, o.Member())
	assert.Empty(t, o.OrderItems())
	assert.Zero(t, o.TotalPrice())

	assert.ErrorIs(t, o.LinkMember(newMember(2, "Sumin")), ErrMismatchedAssociation)
	m := newMember(1, "Jieun")
	require.NoError(t, o.LinkMember(m))
	assert.True(t, o.MemberLoaded())
	assert.Len(t, m.Orders(), 1)

	oi := RebuildOrderItem(OrderItemDTO{ID: 9, ItemID: 10, OrderPrice: 1000, Count: 2})
	assert.ErrorIs(t, oi.LinkItem(newItem(11, 1, 1)), ErrMismatchedAssociation)
	require.NoError(t, oi.LinkItem(newItem(10, 1, 1)))
	assert.True(t, oi.ItemLoaded())
}

func TestOrderPlacedEvent_ReadsIDAfterSave(t *testing.T) {
	book := newItem(10, 1000, 5)
	oi, err := CreateOrderItem(book, book.Price(), 1)
	require.NoError(t, err)
	o := placeOrder(t, newMember(1, "Jieun"), oi)

	o.AssignID(42)
	events := o.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderPlaced, events[0].EventName())
	assert.Equal(t, int64(42), events[0].AggregateID())
	assert.Empty(t, o.PullEvents())
}

func TestOrderSearch_Specification(t *testing.T) {
	ctx := context.Background()
	jieun := RebuildFromDTO(ReconstructionDTO{ID: 1, MemberID: 1, Status: StatusOrdered})
	require.NoError(t, jieun.LinkMember(newMember(1, "Jieun")))
	sumin := RebuildFromDTO(ReconstructionDTO{ID: 2, MemberID: 2, Status: StatusCancelled})
	require.NoError(t, sumin.LinkMember(newMember(2, "Sumin")))

	all := OrderSearch{}.Specification(NameMatchCaseSensitive)
	assert.True(t, all.IsSatisfiedBy(ctx, jieun))
	assert.True(t, all.IsSatisfiedBy(ctx, sumin))

	byStatus := OrderSearch{OrderStatus: StatusCancelled}.Specification(NameMatchCaseSensitive)
	assert.False(t, byStatus.IsSatisfiedBy(ctx, jieun))
	assert.True(t, byStatus.IsSatisfiedBy(ctx, sumin))

	sensitive := OrderSearch{MemberName: "jie"}.Specification(NameMatchCaseSensitive)
	assert.False(t, sensitive.IsSatisfiedBy(ctx, jieun))
	insensitive := OrderSearch{MemberName: "jie"}.Specification(NameMatchCaseInsensitive)
	assert.True(t, insensitive.IsSatisfiedBy(ctx, jieun))

	unloaded := RebuildFromDTO(ReconstructionDTO{ID: 3, MemberID: 1, Status: StatusOrdered})
	assert.False(t, sensitive.IsSatisfiedBy(ctx, unloaded))
}
