package mysql

import (
	"context"
	"fmt"

	"shop/domain/order"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderQueryRepository projections selected straight into DTOs
type OrderQueryRepository struct {
	db *gorm.DB
}

func NewOrderQueryRepository(db *gorm.DB) *OrderQueryRepository {
	return &OrderQueryRepository{db: db}
}

func (r *OrderQueryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindOrderDtos one query, no aggregate is built
func (r *OrderQueryRepository) FindOrderDtos(ctx context.Context) ([]order.SimpleQueryDto, error) {
	var rows []po.SimpleQueryRow
	err := r.getDB(ctx).Table("orders").
		Select("orders.id AS order_id, members.name AS name, orders.order_date AS order_date, " +
			"orders.status AS order_status, deliveries.city AS city, deliveries.street AS street, " +
			"deliveries.zipcode AS zipcode").
		Joins(joinMembers).
		Joins(joinDeliveries).
		Order("orders.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to select order projections: %w", err)
	}

	dtos := make([]order.SimpleQueryDto, len(rows))
	for i := range rows {
		dtos[i] = rows[i].ToDomain()
	}
	return dtos, nil
}

var _ order.QueryRepository = (*OrderQueryRepository)(nil)
