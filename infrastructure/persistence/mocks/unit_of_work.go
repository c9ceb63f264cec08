// Package mocks in-memory stand-ins for persistence ports
package mocks

import (
	"context"
	"sync"

	"shop/domain/shared"
)

// MockUnitOfWork runs fn without a transaction and keeps the events of registered
// aggregates, for assertions
type MockUnitOfWork struct {
	mu         sync.Mutex
	pending    []shared.AggregateRoot
	events     []shared.DomainEvent
	executions int
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	u.executions++
	u.pending = nil
	u.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, agg := range u.pending {
		u.events = append(u.events, agg.PullEvents()...)
	}
	u.pending = nil
	return nil
}

func (u *MockUnitOfWork) ExecuteReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.Execute(ctx, fn)
}

func (u *MockUnitOfWork) Register(_ context.Context, aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, aggregate)
}

// Events published by successful executions
func (u *MockUnitOfWork) Events() []shared.DomainEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]shared.DomainEvent(nil), u.events...)
}

func (u *MockUnitOfWork) Executions() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.executions
}

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
