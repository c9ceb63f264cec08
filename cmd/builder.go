package cmd

import (
	"fmt"
	"net/http"

	"shop/api"
	"shop/api/health"
	apiitem "shop/api/item"
	apimember "shop/api/member"
	apiorder "shop/api/order"
	itemapp "shop/application/item"
	memberapp "shop/application/member"
	orderapp "shop/application/order"
	"shop/config"
	orderdomain "shop/domain/order"
	"shop/infrastructure/persistence/mysql"
	"shop/infrastructure/persistence/retry"
	"shop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder wires config, store, repositories, services and routes into an App
type AppBuilder struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithDB uses db instead of connecting from the database config
func (b *AppBuilder) WithDB(db *gorm.DB) *AppBuilder {
	b.db = db
	return b
}

// Build expects the logger to be initialized
func (b *AppBuilder) Build() (*App, error) {
	db := b.db
	if db == nil {
		var err error
		if db, err = b.connect(); err != nil {
			return nil, err
		}
	}

	if b.cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	members := mysql.NewMemberRepository(db)
	items := mysql.NewItemRepository(db, b.cfg.Stock.MaxQuantity)
	orders := mysql.NewOrderRepository(db, mysql.OrderRepositoryOptions{
		MaxResults: b.cfg.Search.MaxResults,
		NameMatch:  orderdomain.NameMatch(b.cfg.Search.MemberNameMatch),
		StockLimit: b.cfg.Stock.MaxQuantity,
	})
	uow := mysql.NewUnitOfWork(db)
	uow.SetRetryConfig(retry.FromAppConfig(b.cfg.Database.Retry))

	memberService := memberapp.NewApplicationService(members, uow)
	itemService := itemapp.NewApplicationService(items, uow)
	orderService := orderapp.NewApplicationService(orders, members, items, uow)
	queryService := orderapp.NewQueryService(orders, mysql.NewOrderQueryRepository(db), uow)

	router := api.NewRouter(b.cfg,
		health.NewController(b.cfg, db),
		apimember.NewController(memberService),
		apiitem.NewController(itemService),
		apiorder.NewController(orderService, queryService),
		apiorder.NewSimpleController(queryService),
	)
	router.SetupRoutes()

	return &App{
		config: b.cfg,
		router: router,
		server: &http.Server{
			Addr:         ":" + b.cfg.Server.Port,
			Handler:      router.GetEngine(),
			ReadTimeout:  b.cfg.Server.ReadTimeout,
			WriteTimeout: b.cfg.Server.WriteTimeout,
		},
		db:     db,
		seeder: newSeeder(members, items, orders, uow),
		ownsDB: b.db == nil,
	}, nil
}

func (b *AppBuilder) connect() (*gorm.DB, error) {
	dbConfig := mysql.FromAppConfig(b.cfg.Database)
	db, err := dbConfig.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dbConfig.Driver, err)
	}

	logger.Info("Connected to database",
		zap.String("driver", dbConfig.Driver),
		zap.String("database", b.describeDatabase()))
	return db, nil
}

func (b *AppBuilder) describeDatabase() string {
	if b.cfg.Database.Driver == mysql.DriverSQLite {
		return b.cfg.Database.SQLitePath
	}
	return b.cfg.Database.Host + ":" + b.cfg.Database.Port + "/" + b.cfg.Database.Database
}
