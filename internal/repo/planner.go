package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// txBeginner is the slice of *pgxpool.Pool the planner repo needs to open
// its own transactions. *pgx.Conn satisfies it too.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ApplyFunc receives the trip as currently persisted and returns the day
// list to store plus the history entry to append. The day list is only
// written when the entry reports success; a nil day list records the entry
// without touching the schedule (intent pass-throughs). A non-nil error
// aborts the whole transaction and nothing is recorded.
type ApplyFunc func(trip domain.Trip) (days []domain.Day, entry domain.IntentLog, err error)

// PlannerRepo is the transactional write path for intent applications.
// Unlike the other repos it owns its transactions, because applying an
// intent is a read-modify-write across two tables that must not interleave
// with another intent against the same trip.
type PlannerRepo interface {
	// ApplyIntent loads the trip under a per-trip advisory lock, invokes
	// apply with the current state, and persists the outcome: the returned
	// day list when the entry reports success and the list is non-nil, and
	// the history entry either way. It returns the trip as stored after the
	// call and the persisted history entry. Returns domain.ErrNotFound if
	// the trip does not exist.
	ApplyIntent(ctx context.Context, tripID uuid.UUID, apply ApplyFunc) (domain.Trip, domain.IntentLog, error)
}

// pgPlannerRepo is the Postgres implementation of PlannerRepo.
type pgPlannerRepo struct {
	pool txBeginner
}

// NewPlannerRepo constructs a PlannerRepo on top of a connection pool.
func NewPlannerRepo(pool txBeginner) PlannerRepo {
	return &pgPlannerRepo{pool: pool}
}

// ApplyIntent runs the load-apply-store cycle in one transaction.
//
// The advisory lock serializes intents per trip: two concurrent requests for
// the same trip queue up instead of both reading the same day list and
// overwriting each other's result. hashtext folds the trip UUID into the
// bigint advisory-lock keyspace; the lock releases automatically at commit
// or rollback.
func (r *pgPlannerRepo) ApplyIntent(ctx context.Context, tripID uuid.UUID, apply ApplyFunc) (domain.Trip, domain.IntentLog, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Trip{}, domain.IntentLog{}, fmt.Errorf("repo.PlannerRepo.ApplyIntent: begin: %w", err)
	}
	defer func() {
		// No-op once the transaction has committed.
		_ = tx.Rollback(ctx)
	}()

	const lockQ = `SELECT pg_advisory_xact_lock(hashtext(@id))`
	if _, err := tx.Exec(ctx, lockQ, pgx.NamedArgs{"id": tripID.String()}); err != nil {
		return domain.Trip{}, domain.IntentLog{}, fmt.Errorf("repo.PlannerRepo.ApplyIntent: lock: %w", err)
	}

	trips := NewTripRepo(tx)
	trip, err := trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, domain.IntentLog{}, fmt.Errorf("repo.PlannerRepo.ApplyIntent: %w", err)
	}

	days, entry, err := apply(trip)
	if err != nil {
		return domain.Trip{}, domain.IntentLog{}, err
	}

	entry.TripID = tripID
	if entry.Success && days != nil {
		trip, err = trips.UpdateDays(ctx, tripID, days)
		if err != nil {
			return domain.Trip{}, domain.IntentLog{}, fmt.Errorf("repo.PlannerRepo.ApplyIntent: %w", err)
		}
	}

	logged, err := NewIntentLogRepo(tx).Insert(ctx, entry)
	if err != nil {
		return domain.Trip{}, domain.IntentLog{}, fmt.Errorf("repo.PlannerRepo.ApplyIntent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, domain.IntentLog{}, fmt.Errorf("repo.PlannerRepo.ApplyIntent: commit: %w", err)
	}

	return trip, logged, nil
}
