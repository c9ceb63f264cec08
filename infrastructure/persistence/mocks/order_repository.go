package mocks

import (
	"context"

	"shop/domain/order"
)

// FailingOrderRepository delegates to Repository but fails Save with SaveErr when set
type FailingOrderRepository struct {
	order.Repository
	SaveErr error
}

func (r *FailingOrderRepository) Save(ctx context.Context, o *order.Order) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	return r.Repository.Save(ctx, o)
}
