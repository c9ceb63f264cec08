/*
Package mysql GORM persistence: connection setup, repositories and the unit of work.

The package is named after the production store; the same code runs on SQLite
(modernc.org/sqlite, no cgo) for local runs and tests. Dialect differences are confined
to row locking, read-only transactions and case-sensitive name matching.
*/
package mysql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shop/config"
	"shop/infrastructure/persistence/mysql/po"
	"shop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = 10 * time.Minute
	DefaultConnMaxIdleTime = 5 * time.Minute

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config connection settings, built from config.DatabaseConfig
type Config struct {
	Driver          string
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
}

func FromAppConfig(cfg config.DatabaseConfig) *Config {
	return &Config{
		Driver:          cfg.Driver,
		Host:            cfg.Host,
		Port:            cfg.Port,
		Username:        cfg.Username,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SQLitePath:      cfg.SQLitePath,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        cfg.LogLevel,
		SlowThreshold:   cfg.SlowThreshold,
	}
}

// DSN MySQL data source name
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&collation=utf8mb4_unicode_ci&readTimeout=10s&writeTimeout=10s",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// SQLiteDSN enables foreign keys and waits on a locked database instead of failing
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (c *Config) applyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverMySQL
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverMySQL:
		return mysql.Open(c.DSN()), nil
	case DriverSQLite:
		if dir := filepath.Dir(c.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: SQLiteDSN(c.SQLitePath)}), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
}

// Connect opens the pool and applies the pool limits
func (c *Config) Connect() (*gorm.DB, error) {
	c.applyDefaults()

	dialector, err := c.dialector()
	if err != nil {
		return nil, err
	}
	gormLogger := logger.NewGormLoggerAdapterWithConfig(logger.ParseGormLevel(c.LogLevel), &logger.GormLoggerConfig{
		SlowThreshold:             c.SlowThreshold,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)

	logger.Info("Database connected",
		zap.String("driver", c.Driver),
		zap.String("host", c.Host),
		zap.String("database", c.Database),
		zap.String("sqlite_path", c.SQLitePath),
		zap.Int("max_open_conns", c.MaxOpenConns),
		zap.Int("max_idle_conns", c.MaxIdleConns),
	)

	return db, nil
}

type table interface{ TableName() string }

// schema every table the repositories use, parents first
var schema = []table{
	&po.MemberPO{},
	&po.ItemPO{},
	&po.DeliveryPO{},
	&po.OrderPO{},
	&po.OrderItemPO{},
}

// AutoMigrate creates or updates every table the repositories use
func AutoMigrate(db *gorm.DB) error {
	models := make([]interface{}, len(schema))
	for i, t := range schema {
		models[i] = t
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// MissingTables names of the repository tables absent from the connected database
func MissingTables(ctx context.Context, db *gorm.DB) []string {
	migrator := db.WithContext(ctx).Migrator()
	var missing []string
	for _, t := range schema {
		if !migrator.HasTable(t) {
			missing = append(missing, t.TableName())
		}
	}
	return missing
}

// Driver name of the dialect db was opened with, "mysql" or "sqlite"
func Driver(db *gorm.DB) string {
	return db.Dialector.Name()
}

// Ping for readiness checks
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isSQLite(db *gorm.DB) bool {
	return Driver(db) == DriverSQLite
}
