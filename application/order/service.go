/*
Package order order use cases.

ApplicationService runs the commands (place, cancel) and the criteria search, each in
one unit of work. QueryService builds the read models with the different repository
fetch strategies.
*/
package order

import (
	"context"

	"shop/domain/item"
	"shop/domain/member"
	"shop/domain/order"
	"shop/domain/shared"
	"shop/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService order commands
type ApplicationService struct {
	orderRepo  order.Repository
	memberRepo member.Repository
	itemRepo   item.Repository
	uow        shared.UnitOfWork
}

func NewApplicationService(
	orderRepo order.Repository,
	memberRepo member.Repository,
	itemRepo item.Repository,
	uow shared.UnitOfWork,
) *ApplicationService {
	return &ApplicationService{
		orderRepo:  orderRepo,
		memberRepo: memberRepo,
		itemRepo:   itemRepo,
		uow:        uow,
	}
}

// Order places an order of count units of one item for a member and returns its id.
// Stock is taken at the item's current price; any failure leaves stock unchanged.
func (s *ApplicationService) Order(ctx context.Context, memberID, itemID int64, count int) (int64, error) {
	var orderID int64

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		m, err := s.memberRepo.FindOne(ctx, memberID)
		if err != nil {
			return err
		}
		it, err := s.itemRepo.FindOneForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		delivery := order.NewDelivery(m.Address())
		orderItem, err := order.CreateOrderItem(it, it.Price(), count)
		if err != nil {
			return err
		}
		o, err := order.CreateOrder(m, delivery, orderItem)
		if err != nil {
			return err
		}

		if err := s.itemRepo.Save(ctx, it); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		s.uow.Register(ctx, o)

		orderID = o.ID()
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info("Order placed",
		zap.Int64("order_id", orderID),
		zap.Int64("member_id", memberID),
		zap.Int64("item_id", itemID),
		zap.Int("count", count),
	)
	return orderID, nil
}

// CancelOrder cancels the order and restores the stock of every line
func (s *ApplicationService) CancelOrder(ctx context.Context, orderID int64) error {
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindOne(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(); err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		saved := make(map[int64]bool)
		for _, oi := range o.OrderItems() {
			if saved[oi.ItemID()] {
				continue
			}
			if err := s.itemRepo.Save(ctx, oi.Item()); err != nil {
				return err
			}
			saved[oi.ItemID()] = true
		}
		s.uow.Register(ctx, o)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Order cancelled", zap.Int64("order_id", orderID))
	return nil
}

// FindOrders criteria search; associations are not loaded
func (s *ApplicationService) FindOrders(ctx context.Context, search order.OrderSearch) ([]*order.Order, error) {
	if err := validateSearch(search); err != nil {
		return nil, err
	}

	var orders []*order.Order
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		var err error
		orders, err = s.orderRepo.FindAllByCriteria(ctx, search)
		return err
	})
	return orders, err
}

func validateSearch(search order.OrderSearch) error {
	if search.OrderStatus != "" && !search.OrderStatus.IsValid() {
		return shared.Errorf(shared.ErrInvalidInput, order.ErrInvalidStatus, "order",
			"unknown order status %q", search.OrderStatus)
	}
	return nil
}
