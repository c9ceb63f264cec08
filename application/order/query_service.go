package order

import (
	"context"

	"shop/domain/order"
	"shop/domain/shared"
)

// QueryService order read models. Every method runs in one read-only unit of work;
// they differ only in the fetch strategy and so in the number of queries issued.
type QueryService struct {
	orderRepo order.Repository
	queryRepo order.QueryRepository
	uow       shared.UnitOfWork
}

func NewQueryService(orderRepo order.Repository, queryRepo order.QueryRepository, uow shared.UnitOfWork) *QueryService {
	return &QueryService{orderRepo: orderRepo, queryRepo: queryRepo, uow: uow}
}

// OrdersV2 criteria search, then every edge loaded one query at a time:
// 1 + N*(member + delivery + lines) + one query per line item
func (s *QueryService) OrdersV2(ctx context.Context) ([]OrderDto, error) {
	var dtos []OrderDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllByCriteria(ctx, order.OrderSearch{})
		if err != nil {
			return err
		}
		dtos = make([]OrderDto, 0, len(orders))
		for _, o := range orders {
			if err := s.loadAll(ctx, o); err != nil {
				return err
			}
			dtos = append(dtos, toOrderDto(o))
		}
		return nil
	})
	return dtos, err
}

func (s *QueryService) loadAll(ctx context.Context, o *order.Order) error {
	if err := s.orderRepo.LoadMember(ctx, o); err != nil {
		return err
	}
	if err := s.orderRepo.LoadDelivery(ctx, o); err != nil {
		return err
	}
	if err := s.orderRepo.LoadOrderItems(ctx, o); err != nil {
		return err
	}
	for _, oi := range o.OrderItems() {
		if err := s.orderRepo.LoadItem(ctx, oi); err != nil {
			return err
		}
	}
	return nil
}

// OrdersV3 one join over orders, members, deliveries, lines and items. No paging.
func (s *QueryService) OrdersV3(ctx context.Context) ([]OrderDto, error) {
	var dtos []OrderDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllWithItem(ctx)
		if err != nil {
			return err
		}
		dtos = make([]OrderDto, len(orders))
		for i, o := range orders {
			dtos[i] = toOrderDto(o)
		}
		return nil
	})
	return dtos, err
}

// OrdersV31 paged to-one join plus one batch query for the page's lines: 2 queries
func (s *QueryService) OrdersV31(ctx context.Context, page order.Page) ([]OrderDto, error) {
	var dtos []OrderDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllWithMemberDelivery(ctx, page)
		if err != nil {
			return err
		}
		if err := s.orderRepo.LoadOrderItemsBatch(ctx, orders); err != nil {
			return err
		}
		dtos = make([]OrderDto, len(orders))
		for i, o := range orders {
			dtos[i] = toOrderDto(o)
		}
		return nil
	})
	return dtos, err
}

// SimpleOrdersV2 criteria search, member and delivery loaded per order: 1 + 2N
func (s *QueryService) SimpleOrdersV2(ctx context.Context) ([]SimpleOrderDto, error) {
	return s.searchSimple(ctx, order.OrderSearch{})
}

// SimpleOrdersV3 one to-one join
func (s *QueryService) SimpleOrdersV3(ctx context.Context) ([]SimpleOrderDto, error) {
	var dtos []SimpleOrderDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllWithMemberDelivery(ctx, order.Page{})
		if err != nil {
			return err
		}
		dtos = make([]SimpleOrderDto, len(orders))
		for i, o := range orders {
			dtos[i] = toSimpleOrderDto(o)
		}
		return nil
	})
	return dtos, err
}

// SimpleOrdersV4 flat projection selected by the store
func (s *QueryService) SimpleOrdersV4(ctx context.Context) ([]order.SimpleQueryDto, error) {
	var dtos []order.SimpleQueryDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		var err error
		dtos, err = s.queryRepo.FindOrderDtos(ctx)
		return err
	})
	return dtos, err
}

// SearchOrders order list screen: criteria search with member and delivery per row
func (s *QueryService) SearchOrders(ctx context.Context, search order.OrderSearch) ([]SimpleOrderDto, error) {
	if err := validateSearch(search); err != nil {
		return nil, err
	}
	return s.searchSimple(ctx, search)
}

func (s *QueryService) searchSimple(ctx context.Context, search order.OrderSearch) ([]SimpleOrderDto, error) {
	var dtos []SimpleOrderDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		orders, err := s.orderRepo.FindAllByCriteria(ctx, search)
		if err != nil {
			return err
		}
		dtos = make([]SimpleOrderDto, 0, len(orders))
		for _, o := range orders {
			if err := s.orderRepo.LoadMember(ctx, o); err != nil {
				return err
			}
			if err := s.orderRepo.LoadDelivery(ctx, o); err != nil {
				return err
			}
			dtos = append(dtos, toSimpleOrderDto(o))
		}
		return nil
	})
	return dtos, err
}
