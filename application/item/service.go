// Package item item catalogue reads
package item

import (
	"context"

	"shop/domain/item"
	"shop/domain/shared"
)

type ApplicationService struct {
	itemRepo item.Repository
	uow      shared.UnitOfWork
}

func NewApplicationService(itemRepo item.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{itemRepo: itemRepo, uow: uow}
}

// FindItems every item in id order, with its current stock
func (s *ApplicationService) FindItems(ctx context.Context) ([]ItemDto, error) {
	var dtos []ItemDto
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		items, err := s.itemRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		dtos = make([]ItemDto, len(items))
		for i, it := range items {
			dtos[i] = toItemDto(it)
		}
		return nil
	})
	return dtos, err
}

// ItemDto list row of GET /api/v1/items
type ItemDto struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Kind          string `json:"kind"`
	Description   string `json:"description"`
}

func toItemDto(it *item.Item) ItemDto {
	return ItemDto{
		ID:            it.ID(),
		Name:          it.Name(),
		Price:         it.Price(),
		StockQuantity: it.StockQuantity(),
		Kind:          string(it.Kind()),
		Description:   it.Details().Describe(),
	}
}
