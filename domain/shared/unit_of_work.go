package shared

import "context"

// UnitOfWork manages the transaction boundary and collects aggregate events.
// The transaction travels inside ctx; repositories pick it up from there.
type UnitOfWork interface {
	// Execute runs fn in one read-write transaction (all or nothing)
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	// ExecuteReadOnly runs fn in a transaction that performs no writes
	ExecuteReadOnly(ctx context.Context, fn func(ctx context.Context) error) error

	// Register records an aggregate whose events are published after commit
	Register(ctx context.Context, aggregate AggregateRoot)
}
