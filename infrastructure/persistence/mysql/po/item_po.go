package po

import (
	"shop/domain/item"
	"shop/domain/shared"
)

// ItemPO items table, one row per item of any kind; dtype selects the variant columns
type ItemPO struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	DType         string `gorm:"column:dtype;size:1;not null;index"`
	Name          string `gorm:"size:255;not null"`
	Price         int64  `gorm:"not null"`
	StockQuantity int    `gorm:"not null"`

	Author   string `gorm:"size:255"`
	ISBN     string `gorm:"column:isbn;size:32"`
	Artist   string `gorm:"size:255"`
	Etc      string `gorm:"size:255"`
	Director string `gorm:"size:255"`
	Actor    string `gorm:"size:255"`
}

func (ItemPO) TableName() string {
	return "items"
}

func FromItemDomain(i *item.Item) *ItemPO {
	p := &ItemPO{
		ID:            i.ID(),
		DType:         string(i.Kind()),
		Name:          i.Name(),
		Price:         i.Price(),
		StockQuantity: i.StockQuantity(),
	}
	switch d := i.Details().(type) {
	case item.Book:
		p.Author, p.ISBN = d.Author, d.ISBN
	case item.Album:
		p.Artist, p.Etc = d.Artist, d.Etc
	case item.Movie:
		p.Director, p.Actor = d.Director, d.Actor
	}
	return p
}

// ToDomain stockLimit is the configured AddStock bound, 0 for none
func (po *ItemPO) ToDomain(stockLimit int) (*item.Item, error) {
	var details item.Details
	switch item.Kind(po.DType) {
	case item.KindBook:
		details = item.Book{Author: po.Author, ISBN: po.ISBN}
	case item.KindAlbum:
		details = item.Album{Artist: po.Artist, Etc: po.Etc}
	case item.KindMovie:
		details = item.Movie{Director: po.Director, Actor: po.Actor}
	default:
		return nil, shared.Errorf(shared.ErrInvalidState, item.ErrUnknownKind, "item",
			"item %d has unknown dtype %q", po.ID, po.DType)
	}
	return item.RebuildFromDTO(item.ReconstructionDTO{
		ID:            po.ID,
		Name:          po.Name,
		Price:         po.Price,
		StockQuantity: po.StockQuantity,
		Details:       details,
		StockLimit:    stockLimit,
	}), nil
}
