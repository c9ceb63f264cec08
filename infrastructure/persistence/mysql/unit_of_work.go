package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"shop/domain/shared"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/retry"
	"shop/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type collectorKey struct{}

// collector aggregates registered during one attempt of one unit of work
type collector struct {
	mu         sync.Mutex
	aggregates []shared.AggregateRoot
}

func (c *collector) add(a shared.AggregateRoot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aggregates = append(c.aggregates, a)
}

func (c *collector) events() []shared.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var events []shared.DomainEvent
	for _, a := range c.aggregates {
		events = append(events, a.PullEvents()...)
	}
	return events
}

// UnitOfWork GORM transaction per Execute call, carried in the context.
// It holds no per-call state and is safe for concurrent use.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retry.DefaultConfig}
}

func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs fn in a transaction: commit on nil, rollback on error or panic.
// Transient store errors retry the whole function. Events of registered
// aggregates are logged after commit.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.run(ctx, nil, fn)
}

// ExecuteReadOnly like Execute, with a read-only transaction where the store supports it
func (u *UnitOfWork) ExecuteReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	var opts *sql.TxOptions
	if !isSQLite(u.db) {
		opts = &sql.TxOptions{ReadOnly: true}
	}
	return u.run(ctx, opts, fn)
}

func (u *UnitOfWork) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// nested call joins the outer transaction
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	executeOnce := func(ctx context.Context) (err error) {
		c := &collector{}
		var tx *gorm.DB
		if opts != nil {
			tx = u.db.WithContext(ctx).Begin(opts)
		} else {
			tx = u.db.WithContext(ctx).Begin()
		}
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		txCtx := context.WithValue(persistence.ContextWithTx(ctx, tx), collectorKey{}, c)
		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		u.logEvents(ctx, c.events())
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

// Register collects aggregate for event logging after commit.
// Outside Execute the aggregate's events are dropped.
func (u *UnitOfWork) Register(ctx context.Context, aggregate shared.AggregateRoot) {
	if c, ok := ctx.Value(collectorKey{}).(*collector); ok {
		c.add(aggregate)
		return
	}
	logger.FromContext(ctx).Warn("aggregate registered outside a unit of work", zap.Int64("aggregate_id", aggregate.ID()))
}

func (u *UnitOfWork) logEvents(ctx context.Context, events []shared.DomainEvent) {
	log := logger.FromContext(ctx)
	for _, e := range events {
		log.Info("Domain event",
			zap.String("event", e.EventName()),
			zap.Int64("aggregate_id", e.AggregateID()),
			zap.Time("occurred_on", e.OccurredOn()),
		)
	}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
