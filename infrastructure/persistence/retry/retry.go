/*
Package retry re-runs a whole unit of work when the store reports a transient failure.

Only store-level conditions are retryable (MySQL deadlock 1213, lock wait timeout 1205,
SQLite busy, lost connections); domain errors never are.
*/
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"shop/config"
	"shop/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	mysqlErrDeadlock    = 1213
	mysqlErrLockTimeout = 1205
)

type Config struct {
	Enabled            bool
	MaxAttempts        int
	InitialDelay       time.Duration
	MaxDelay           time.Duration
	BackoffFactor      float64
	JitterEnabled      bool
	RetryOnDeadlock    bool
	RetryOnLockTimeout bool
	// RetryPredicate extra condition, checked after the built-in ones
	RetryPredicate func(error) bool
}

var DefaultConfig = Config{
	Enabled:            true,
	MaxAttempts:        3,
	InitialDelay:       100 * time.Millisecond,
	MaxDelay:           2 * time.Second,
	BackoffFactor:      2.0,
	JitterEnabled:      true,
	RetryOnDeadlock:    true,
	RetryOnLockTimeout: true,
}

// FromAppConfig builds the policy from database.retry
func FromAppConfig(cfg config.RetryConfig) Config {
	return Config{
		Enabled:            cfg.Enabled,
		MaxAttempts:        cfg.MaxAttempts,
		InitialDelay:       cfg.InitialDelay,
		MaxDelay:           cfg.MaxDelay,
		BackoffFactor:      cfg.BackoffFactor,
		JitterEnabled:      cfg.JitterEnabled,
		RetryOnDeadlock:    cfg.RetryOnDeadlock,
		RetryOnLockTimeout: cfg.RetryOnLockTimeout,
	}
}

// ExponentialBackoffWithJitter delay before the attempt after the given one (1-based),
// capped at MaxDelay, with ±20% jitter when enabled
func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if config.MaxDelay > 0 && delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		delay *= 0.8 + rand.Float64()*0.4
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// IsRetryableError reports whether err is a transient store failure
func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}

	// business outcomes are final
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return false
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDeadlock:
			return config.RetryOnDeadlock
		case mysqlErrLockTimeout:
			return config.RetryOnLockTimeout
		}
	}
	if errors.Is(err, mysqlDriver.ErrInvalidConn) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	if config.RetryOnDeadlock && strings.Contains(errStr, "deadlock") {
		return true
	}
	if config.RetryOnLockTimeout &&
		(strings.Contains(errStr, "lock wait timeout") || strings.Contains(errStr, "database is locked") || strings.Contains(errStr, "sqlite_busy")) {
		return true
	}
	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		(strings.Contains(errStr, "connection") && strings.Contains(errStr, "lost")) {
		return true
	}

	if config.RetryPredicate != nil {
		return config.RetryPredicate(err)
	}
	return false
}

// ExecuteWithRetry runs fn until it succeeds, fails with a non-retryable error,
// runs out of attempts or ctx is done
func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled || config.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		if delay := ExponentialBackoffWithJitter(attempt, config); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}
