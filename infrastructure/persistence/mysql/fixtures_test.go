package mysql_test

import (
	"context"
	"testing"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/infrastructure/persistence/mysql"
	"shop/infrastructure/persistence/sqlitetest"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	members *mysql.MemberRepository
	items   *mysql.ItemRepository
	orders  *mysql.OrderRepository
	queries *mysql.OrderQueryRepository
}

func newFixture(t *testing.T, opts mysql.OrderRepositoryOptions) *fixture {
	t.Helper()
	db := sqlitetest.Open(t)
	return &fixture{
		db:      db,
		members: mysql.NewMemberRepository(db),
		items:   mysql.NewItemRepository(db, opts.StockLimit),
		orders:  mysql.NewOrderRepository(db, opts),
		queries: mysql.NewOrderQueryRepository(db),
	}
}

func (f *fixture) member(t *testing.T, name, city string) *member.Member {
	t.Helper()
	m, err := member.NewMember(name, member.NewAddress(city, "street 1", "11111"))
	require.NoError(t, err)
	require.NoError(t, f.members.Save(context.Background(), m))
	return m
}

func (f *fixture) item(t *testing.T, name string, price int64, stock int, details item.Details) *item.Item {
	t.Helper()
	it, err := item.NewItem(name, price, stock, details)
	require.NoError(t, err)
	require.NoError(t, f.items.Save(context.Background(), it))
	return it
}

type line struct {
	item  *item.Item
	count int
}

// place builds and saves an order the way the service does, without stock persistence
func (f *fixture) place(t *testing.T, m *member.Member, lines ...line) *order.Order {
	t.Helper()
	orderItems := make([]*order.OrderItem, len(lines))
	for i, l := range lines {
		oi, err := order.CreateOrderItem(l.item, l.item.Price(), l.count)
		require.NoError(t, err)
		orderItems[i] = oi
	}
	o, err := order.CreateOrder(m, order.NewDelivery(m.Address()), orderItems...)
	require.NoError(t, err)
	require.NoError(t, f.orders.Save(context.Background(), o))
	return o
}

// seed sample data: Jieun with two orders (one of them two lines), Sumin with one
func (f *fixture) seed(t *testing.T) (jieun, sumin *member.Member, books []*item.Item) {
	t.Helper()
	jieun = f.member(t, "Jieun", "Seoul")
	sumin = f.member(t, "Sumin", "Busan")
	jpa1 := f.item(t, "JPA1 BOOK", 10000, 100, item.Book{Author: "Kim", ISBN: "1111"})
	jpa2 := f.item(t, "JPA2 BOOK", 20000, 100, item.Book{Author: "Kim", ISBN: "2222"})
	spring := f.item(t, "SPRING1 BOOK", 30000, 100, item.Book{Author: "Lee", ISBN: "3333"})

	f.place(t, jieun, line{jpa1, 1}, line{jpa2, 2})
	f.place(t, jieun, line{spring, 3})
	f.place(t, sumin, line{spring, 4})
	return jieun, sumin, []*item.Item{jpa1, jpa2, spring}
}

func orderIDs(orders []*order.Order) []int64 {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID()
	}
	return ids
}
