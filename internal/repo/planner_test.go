package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/repo"
	"github.com/zaccharietardy-dotcom/voyage-planner/testutil"
)

// newPlannerHarness creates a committed trip through the pool and returns a
// PlannerRepo plus plain repos for asserting on persisted state. ApplyIntent
// opens and commits its own transactions, so the rollback trick used
// elsewhere in this package does not apply; the cleanup deletes the trip
// instead, and the intent_logs cascade removes its history with it.
func newPlannerHarness(t *testing.T) (repo.PlannerRepo, domain.Trip, repo.TripRepo, repo.IntentLogRepo) {
	t.Helper()
	pool := testutil.NewPool(t)

	trips := repo.NewTripRepo(pool)
	trip, err := trips.Create(context.Background(), tripFixture())
	require.NoError(t, err, "create trip")

	t.Cleanup(func() {
		_ = trips.Delete(context.Background(), trip.ID)
	})

	return repo.NewPlannerRepo(pool), trip, trips, repo.NewIntentLogRepo(pool)
}

func TestPlannerRepo_ApplyIntent_PersistsDaysAndHistory(t *testing.T) {
	p, trip, trips, logs := newPlannerHarness(t)
	ctx := context.Background()

	updated, entry, err := p.ApplyIntent(ctx, trip.ID, func(current domain.Trip) ([]domain.Day, domain.IntentLog, error) {
		assert.Equal(t, trip.Days, current.Days, "apply should see the persisted state")

		days := current.Days
		days[1].Items = nil // drop the Louvre
		return days, intentLogFixture(trip.ID), nil
	})

	require.NoError(t, err)
	assert.True(t, entry.Success)
	assert.NotEqual(t, [16]byte{}, entry.ID, "history entry should be persisted")
	require.Len(t, updated.Days, 2)
	assert.Empty(t, updated.Days[1].Items)

	stored, err := trips.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Days[1].Items, "new day list should be committed")

	history, total, err := logs.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
}

func TestPlannerRepo_ApplyIntent_FailedMutationKeepsDays(t *testing.T) {
	p, trip, trips, logs := newPlannerHarness(t)
	ctx := context.Background()

	_, entry, err := p.ApplyIntent(ctx, trip.ID, func(current domain.Trip) ([]domain.Day, domain.IntentLog, error) {
		e := intentLogFixture(trip.ID)
		e.Success = false
		e.ErrorType = string(domain.FailItemNotFound)
		e.Changes = nil
		return nil, e, nil
	})

	require.NoError(t, err)
	assert.False(t, entry.Success)

	stored, err := trips.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.Days, stored.Days, "failed mutations must not touch the schedule")

	history, total, err := logs.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "failed mutations still get a history entry")
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)
	assert.Equal(t, string(domain.FailItemNotFound), history[0].ErrorType)
}

func TestPlannerRepo_ApplyIntent_TripNotFound(t *testing.T) {
	pool := testutil.NewPool(t)
	p := repo.NewPlannerRepo(pool)
	ctx := context.Background()

	called := false
	_, _, err := p.ApplyIntent(ctx, uuid.New(), func(domain.Trip) ([]domain.Day, domain.IntentLog, error) {
		called = true
		return nil, domain.IntentLog{}, nil
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, called, "apply must not run without a trip")
}

func TestPlannerRepo_ApplyIntent_ApplyErrorAborts(t *testing.T) {
	p, trip, trips, logs := newPlannerHarness(t)
	ctx := context.Background()

	boom := errors.New("boom")
	_, _, err := p.ApplyIntent(ctx, trip.ID, func(current domain.Trip) ([]domain.Day, domain.IntentLog, error) {
		days := current.Days
		days[0].Theme = "changed"
		return days, intentLogFixture(trip.ID), boom
	})

	assert.ErrorIs(t, err, boom)

	stored, err := trips.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.Days, stored.Days, "aborted transactions must not change the schedule")

	_, total, err := logs.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total, "aborted transactions must not leave history behind")
}

func TestPlannerRepo_ApplyIntent_HistoryNewestFirst(t *testing.T) {
	p, trip, _, logs := newPlannerHarness(t)
	ctx := context.Background()

	// Two separate transactions, so the entries get distinct created_at values.
	for _, label := range []string{"first", "second"} {
		_, _, err := p.ApplyIntent(ctx, trip.ID, func(current domain.Trip) ([]domain.Day, domain.IntentLog, error) {
			e := intentLogFixture(trip.ID)
			e.Explanation = label
			return current.Days, e, nil
		})
		require.NoError(t, err)
	}

	history, _, err := logs.ListByTrip(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Explanation, "latest intent should come first")
	assert.Equal(t, "first", history[1].Explanation)
}
