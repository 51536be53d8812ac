package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/coursemanager/internal/app/repositories"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
	"github.com/yigit/coursemanager/internal/pkg/metrics"
)

// operation describes a write for logging, metrics and fault messages.
type operation struct {
	name    string // metrics label, e.g. "enrollment.enroll"
	verb    string // "enrolling"
	entity  string // "student"
	success string
}

// UnitOfWork runs rule checks and the writes they guard as one atomic unit.
//
// With a transactional store the whole check-then-write sequence runs inside
// one transaction that is rolled back on any error. Without transactions,
// units are serialized and writes stay staged until every check passed, so a
// failing unit never mutates the store.
type UnitOfWork struct {
	store repositories.Store
	log   zerolog.Logger

	// serializes units on stores without transactions, whose staged writes
	// are shared by all callers
	mu sync.Mutex
}

// NewUnitOfWork creates a unit of work runner over store
func NewUnitOfWork(store repositories.Store, log zerolog.Logger) *UnitOfWork {
	return &UnitOfWork{store: store, log: log}
}

// Store returns the underlying store for read-only queries
func (u *UnitOfWork) Store() repositories.Store {
	return u.store
}

// execute runs fn as one unit and converts its outcome into a Result.
func (u *UnitOfWork) execute(ctx context.Context, op operation, fn func(repo repositories.Repository) error) Result {
	start := time.Now()
	err := u.run(ctx, fn)
	metrics.OperationDuration.WithLabelValues(op.name).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.RuleDecisions.WithLabelValues(op.name, metrics.OutcomeSuccess).Inc()
		u.log.Debug().Str("operation", op.name).Msg(op.success)
		return succeeded(op.success)
	}

	if violation, ok := apperrors.AsRuleViolation(err); ok {
		metrics.RuleDecisions.WithLabelValues(op.name, metrics.OutcomeRejected).Inc()
		metrics.RuleRejections.WithLabelValues(violation.Code).Inc()
		u.log.Debug().
			Str("operation", op.name).
			Str("code", violation.Code).
			Msg(violation.Message)
		return rejected(violation)
	}

	metrics.RuleDecisions.WithLabelValues(op.name, metrics.OutcomeFault).Inc()
	u.log.Error().Err(err).Str("operation", op.name).Msg("Persistence fault")
	return Result{
		Success: false,
		Message: fmt.Sprintf("Error %s %s: %v", op.verb, op.entity, err),
		Code:    apperrors.CodePersistence,
	}
}

func (u *UnitOfWork) run(ctx context.Context, fn func(repo repositories.Repository) error) error {
	if !u.store.SupportsTransactions() {
		u.mu.Lock()
		defer u.mu.Unlock()
		err := fn(u.store)
		if d, ok := u.store.(interface{ Discard() }); ok && err != nil {
			d.Discard()
		}
		return err
	}

	tx, err := u.store.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			u.log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return nil
}

// save flushes staged writes, mapping a key collision raised by the store to
// the given violation.
func save(ctx context.Context, repo repositories.Repository, onConflict *apperrors.RuleViolation) error {
	if _, err := repo.Save(ctx); err != nil {
		if onConflict != nil && apperrors.Is(err, repositories.ErrConflict) {
			return onConflict
		}
		return err
	}
	return nil
}
