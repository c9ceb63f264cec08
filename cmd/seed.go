package cmd

import (
	"context"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/domain/shared"
	"shop/pkg/logger"

	"go.uber.org/zap"
)

type seedLine struct {
	item  *item.Item
	count int
}

// seeder inserts two members, four books and one two-line order per member.
// It does nothing once any member exists.
type seeder struct {
	members member.Repository
	items   item.Repository
	orders  order.Repository
	uow     shared.UnitOfWork
}

func newSeeder(members member.Repository, items item.Repository, orders order.Repository, uow shared.UnitOfWork) *seeder {
	return &seeder{members: members, items: items, orders: orders, uow: uow}
}

func (s *seeder) Seed(ctx context.Context) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		existing, err := s.members.FindAll(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			logger.FromContext(ctx).Info("Sample data already present", zap.Int("members", len(existing)))
			return nil
		}

		jieun, err := s.member(ctx, "Jieun", member.NewAddress("Seoul", "1", "1111"))
		if err != nil {
			return err
		}
		sumin, err := s.member(ctx, "Sumin", member.NewAddress("Busan", "2", "2222"))
		if err != nil {
			return err
		}

		jpa1, err := s.book(ctx, "JPA1 BOOK", 10000, 100)
		if err != nil {
			return err
		}
		jpa2, err := s.book(ctx, "JPA2 BOOK", 20000, 100)
		if err != nil {
			return err
		}
		spring1, err := s.book(ctx, "SPRING1 BOOK", 20000, 200)
		if err != nil {
			return err
		}
		spring2, err := s.book(ctx, "SPRING2 BOOK", 40000, 300)
		if err != nil {
			return err
		}

		if err := s.order(ctx, jieun, seedLine{jpa1, 1}, seedLine{jpa2, 2}); err != nil {
			return err
		}
		if err := s.order(ctx, sumin, seedLine{spring1, 3}, seedLine{spring2, 4}); err != nil {
			return err
		}

		logger.FromContext(ctx).Info("Sample data inserted")
		return nil
	})
}

func (s *seeder) member(ctx context.Context, name string, address member.Address) (*member.Member, error) {
	m, err := member.NewMember(name, address)
	if err != nil {
		return nil, err
	}
	return m, s.members.Save(ctx, m)
}

func (s *seeder) book(ctx context.Context, name string, price int64, stock int) (*item.Item, error) {
	it, err := item.NewItem(name, price, stock, item.Book{Author: "Kim", ISBN: "9788960777330"})
	if err != nil {
		return nil, err
	}
	return it, s.items.Save(ctx, it)
}

func (s *seeder) order(ctx context.Context, m *member.Member, lines ...seedLine) error {
	orderItems := make([]*order.OrderItem, 0, len(lines))
	for _, line := range lines {
		oi, err := order.CreateOrderItem(line.item, line.item.Price(), line.count)
		if err != nil {
			return err
		}
		if err := s.items.Save(ctx, line.item); err != nil {
			return err
		}
		orderItems = append(orderItems, oi)
	}

	o, err := order.CreateOrder(m, order.NewDelivery(m.Address()), orderItems...)
	if err != nil {
		return err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		return err
	}
	s.uow.Register(ctx, o)
	return nil
}
