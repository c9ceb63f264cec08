// Package sqlitetest migrated SQLite databases and query counting for tests
package sqlitetest

import (
	"path/filepath"
	"sync/atomic"
	"testing"

	"shop/infrastructure/persistence/mysql"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// Open returns a migrated database in a file under t.TempDir()
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := mysql.SQLiteDSN(filepath.Join(t.TempDir(), "shop.db"))
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, mysql.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// QueryCounter counts SELECT statements issued through GORM
type QueryCounter struct {
	n atomic.Int64
}

// CountQueries registers a counter on db's query and row callbacks
func CountQueries(t *testing.T, db *gorm.DB) *QueryCounter {
	t.Helper()
	c := &QueryCounter{}
	inc := func(*gorm.DB) { c.n.Add(1) }
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("sqlitetest:count_query", inc))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("sqlitetest:count_row", inc))
	return c
}

func (c *QueryCounter) Reset()       { c.n.Store(0) }
func (c *QueryCounter) Count() int64 { return c.n.Load() }
