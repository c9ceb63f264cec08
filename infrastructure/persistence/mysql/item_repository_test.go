package mysql_test

import (
	"context"
	"testing"

	"shop/domain/item"
	"shop/domain/member"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql"
	"shop/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestItemRepository_Variants(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mysql.OrderRepositoryOptions{})

	book := f.item(t, "JPA1 BOOK", 10000, 100, item.Book{Author: "Kim", ISBN: "1111"})
	album := f.item(t, "Palette", 15000, 20, item.Album{Artist: "IU", Etc: "4th"})
	movie := f.item(t, "Parasite", 12000, 5, item.Movie{Director: "Bong", Actor: "Song"})

	found, err := f.items.FindOne(ctx, book.ID())
	require.NoError(t, err)
	assert.Equal(t, item.Book{Author: "Kim", ISBN: "1111"}, found.Details())

	found, err = f.items.FindOne(ctx, album.ID())
	require.NoError(t, err)
	assert.Equal(t, item.Album{Artist: "IU", Etc: "4th"}, found.Details())

	found, err = f.items.FindOne(ctx, movie.ID())
	require.NoError(t, err)
	assert.Equal(t, item.KindMovie, found.Kind())
	assert.Equal(t, 5, found.StockQuantity())

	var row po.ItemPO
	require.NoError(t, f.db.First(&row, album.ID()).Error)
	assert.Equal(t, "A", row.DType)

	all, err := f.items.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestItemRepository_StockRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mysql.OrderRepositoryOptions{StockLimit: 50})
	book := f.item(t, "JPA1 BOOK", 10000, 10, item.Book{})
	assert.Equal(t, 50, book.StockLimit())

	locked, err := f.items.FindOneForUpdate(ctx, book.ID())
	require.NoError(t, err)
	assert.Equal(t, 50, locked.StockLimit())
	require.NoError(t, locked.RemoveStock(4))
	require.NoError(t, f.items.Save(ctx, locked))

	found, err := f.items.FindOne(ctx, book.ID())
	require.NoError(t, err)
	assert.Equal(t, 6, found.StockQuantity())
}

func TestItemRepository_NotFoundAndUnknownKind(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mysql.OrderRepositoryOptions{})

	_, err := f.items.FindOne(ctx, 404)
	assert.ErrorIs(t, err, item.ErrItemNotFound)

	bad := po.ItemPO{DType: "X", Name: "?", Price: 1, StockQuantity: 1}
	require.NoError(t, f.db.Create(&bad).Error)
	_, err = f.items.FindOne(ctx, bad.ID)
	assert.ErrorIs(t, err, item.ErrUnknownKind)
}

func TestItemRepository_UsesContextTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mysql.OrderRepositoryOptions{})

	err := f.db.Transaction(func(tx *gorm.DB) error {
		it, err := item.NewItem("rolled back", 1, 1, item.Book{})
		require.NoError(t, err)
		require.NoError(t, f.items.Save(persistence.ContextWithTx(ctx, tx), it))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	all, err := f.items.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemberRepository(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mysql.OrderRepositoryOptions{})
	jieun := f.member(t, "Jieun", "Seoul")
	f.member(t, "Sumin", "Busan")

	found, err := f.members.FindOne(ctx, jieun.ID())
	require.NoError(t, err)
	assert.Equal(t, "Jieun", found.Name())
	assert.Equal(t, "Seoul", found.Address().City())

	byName, err := f.members.FindByName(ctx, "Sumin")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Busan", byName[0].Address().City())

	all, err := f.members.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.members.FindOne(ctx, 404)
	assert.ErrorIs(t, err, member.ErrMemberNotFound)
}
