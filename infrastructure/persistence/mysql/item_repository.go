package mysql

import (
	"context"
	"errors"
	"fmt"

	"shop/domain/item"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository GORM implementation of item.Repository.
// Every item it returns carries the configured stock limit.
type ItemRepository struct {
	db         *gorm.DB
	stockLimit int
}

func NewItemRepository(db *gorm.DB, stockLimit int) *ItemRepository {
	return &ItemRepository{db: db, stockLimit: stockLimit}
}

func (r *ItemRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save inserts a new item, or writes back name, price and stock
func (r *ItemRepository) Save(ctx context.Context, i *item.Item) error {
	itemPO := po.FromItemDomain(i)
	if i.ID() == 0 {
		if err := r.getDB(ctx).Create(itemPO).Error; err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		i.AssignID(itemPO.ID)
		i.LimitStock(r.stockLimit)
		return nil
	}
	err := r.getDB(ctx).Model(&po.ItemPO{}).Where("id = ?", i.ID()).Updates(map[string]any{
		"name":           itemPO.Name,
		"price":          itemPO.Price,
		"stock_quantity": itemPO.StockQuantity,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", i.ID(), err)
	}
	return nil
}

func (r *ItemRepository) FindOne(ctx context.Context, id int64) (*item.Item, error) {
	return r.findOne(r.getDB(ctx), id)
}

// FindOneForUpdate SELECT ... FOR UPDATE on MySQL. SQLite has no row locks; its single
// writer already serializes stock updates.
func (r *ItemRepository) FindOneForUpdate(ctx context.Context, id int64) (*item.Item, error) {
	db := r.getDB(ctx)
	if !isSQLite(db) {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findOne(db, id)
}

func (r *ItemRepository) findOne(db *gorm.DB, id int64) (*item.Item, error) {
	var itemPO po.ItemPO
	if err := db.First(&itemPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, item.NewItemNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find item %d: %w", id, err)
	}
	return itemPO.ToDomain(r.stockLimit)
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	var itemPOs []po.ItemPO
	if err := r.getDB(ctx).Order("id").Find(&itemPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	items := make([]*item.Item, 0, len(itemPOs))
	for i := range itemPOs {
		it, err := itemPOs[i].ToDomain(r.stockLimit)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

var _ item.Repository = (*ItemRepository)(nil)
