package engine_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/engine"
)

// mockGeocoder is a hand-written test double for engine.Geocoder.
type mockGeocoder struct {
	geocode func(ctx context.Context, query string) (domain.Coordinates, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	return m.geocode(ctx, query)
}

var _ engine.Geocoder = (*mockGeocoder)(nil)

// mockPool is a hand-written test double for engine.AttractionSource.
type mockPool struct {
	poolFor func(destination string) []domain.Attraction
}

func (m *mockPool) PoolFor(destination string) []domain.Attraction {
	return m.poolFor(destination)
}

var _ engine.AttractionSource = (*mockPool)(nil)

// ---- fixtures --------------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine() *engine.Engine {
	return engine.New(nil, nil, quietLogger())
}

func mkItem(id string, t domain.ItemType, title, start, end string) domain.Item {
	return domain.Item{
		ID:              id,
		Type:            t,
		Title:           title,
		Start:           start,
		End:             end,
		DurationMinutes: domain.MinutesOf(end) - domain.MinutesOf(start),
		DataReliability: domain.ReliabilityVerified,
	}
}

func mkDay(n int, items ...domain.Item) domain.Day {
	return domain.Day{
		DayNumber: n,
		Date:      openapi_types.Date{Time: time.Date(2026, 9, n, 0, 0, 0, 0, time.UTC)},
		Items:     items,
	}
}

// parisDays is a three-day fixture with a fixed arrival day, a busy middle
// day and a quiet last day.
func parisDays() []domain.Day {
	return []domain.Day{
		mkDay(1,
			mkItem("flight-in", domain.ItemFlight, "Flight AF123 to Paris", "09:00", "11:00"),
			mkItem("checkin-1", domain.ItemCheckIn, "Check in at Hotel du Nord", "14:00", "14:30"),
			mkItem("walk-1", domain.ItemActivity, "Montmartre walk", "15:00", "17:00"),
			mkItem("dinner-1", domain.ItemRestaurant, "Dinner at Chez Paul", "19:30", "21:00"),
		),
		mkDay(2,
			mkItem("louvre", domain.ItemActivity, "Louvre Museum", "09:30", "11:30"),
			mkItem("lunch-2", domain.ItemRestaurant, "Lunch at Cafe Marly", "12:30", "13:30"),
			mkItem("cruise", domain.ItemActivity, "Seine river cruise", "15:00", "16:30"),
			mkItem("eiffel", domain.ItemActivity, "Eiffel Tower", "17:30", "19:00"),
		),
		mkDay(3,
			mkItem("orsay", domain.ItemActivity, "Musee d'Orsay", "10:00", "12:00"),
			mkItem("lunch-3", domain.ItemRestaurant, "Lunch at Les Deux Magots", "12:30", "13:30"),
		),
	}
}

func parisContext() domain.TripContext {
	return domain.TripContext{
		Destination: "Paris",
		StartDate:   openapi_types.Date{Time: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		Accommodation: &domain.Accommodation{
			Name: "Hotel du Nord",
		},
	}
}

func constraintsOf(days []domain.Day) domain.ConstraintSet {
	return domain.IndexConstraints(engine.DeriveConstraints(days))
}

// ---- dispatch --------------------------------------------------------------

func TestDispatch_ClarificationPassesThrough(t *testing.T) {
	e := newEngine()
	days := parisDays()

	res := e.Dispatch(context.Background(), domain.Intent{
		Type:        domain.IntentClarification,
		Confidence:  0.4,
		Explanation: "Which day did you mean?",
	}, days, parisContext())

	require.True(t, res.Success)
	assert.Empty(t, res.Changes)
	assert.Equal(t, "Which day did you mean?", res.Explanation)
	assert.Equal(t, days, res.Days)
	assert.Equal(t, days, res.Rollback)
}

func TestDispatch_UnknownTypeFailsGenerically(t *testing.T) {
	e := newEngine()
	days := parisDays()

	res := e.Dispatch(context.Background(), domain.Intent{Type: "teleport"}, days, parisContext())

	require.False(t, res.Success)
	require.NotNil(t, res.ErrorInfo)
	assert.Equal(t, domain.FailConstraintViolation, res.ErrorInfo.Type)
	assert.Equal(t, days, res.Days)
}

func TestDispatch_CollaboratorPanicBecomesFailure(t *testing.T) {
	geo := &mockGeocoder{geocode: func(context.Context, string) (domain.Coordinates, error) {
		panic("geocoder exploded")
	}}
	e := engine.New(geo, nil, quietLogger())
	days := parisDays()

	res := e.Dispatch(context.Background(), domain.Intent{
		Type:       domain.IntentSwapActivity,
		Confidence: 0.9,
		Parameters: domain.IntentParams{TargetActivity: "eiffel", NewValue: "Arc de Triomphe"},
	}, days, parisContext())

	require.False(t, res.Success)
	require.NotNil(t, res.ErrorInfo)
	assert.Equal(t, days, res.Days, "the schedule must come back untouched after a panic")
}

// ---- cross-operator properties ---------------------------------------------

// TestDispatch_RollbackFidelity runs one intent of every mutating type and
// verifies the rollback snapshot deep-equals the pre-mutation state, for
// successes and failures alike, without aliasing the input.
func TestDispatch_RollbackFidelity(t *testing.T) {
	intents := []domain.Intent{
		{Type: domain.IntentShiftTimes, Parameters: domain.IntentParams{TimeShiftMinutes: 30, Direction: "later", DayNumbers: []int{2}}},
		{Type: domain.IntentRemoveActivity, Parameters: domain.IntentParams{TargetActivity: "cruise"}},
		{Type: domain.IntentRemoveActivity, Parameters: domain.IntentParams{TargetItemID: "flight-in"}}, // fails: immutable
		{Type: domain.IntentSwapActivity, Parameters: domain.IntentParams{TargetActivity: "eiffel", NewValue: "Pantheon"}},
		{Type: domain.IntentExtendFreeTime, Parameters: domain.IntentParams{DayNumbers: []int{2}}},
		{Type: domain.IntentAdjustDuration, Parameters: domain.IntentParams{TargetActivity: "louvre", DurationMinutes: 30, Direction: "extend"}},
		{Type: domain.IntentReorderDay, Parameters: domain.IntentParams{DayNumbers: []int{2}}},
		{Type: domain.IntentAddActivity, Parameters: domain.IntentParams{NewValue: "Catacombs", DayNumbers: []int{3}}},
		{Type: domain.IntentChangeMeal, Parameters: domain.IntentParams{MealType: "lunch", NewValue: "Bouillon Chartier", DayNumbers: []int{2}}},
		{Type: domain.IntentAddDay, Parameters: domain.IntentParams{InsertAfterDay: 2}},
	}

	for _, in := range intents {
		in.Confidence = 0.9
		t.Run(string(in.Type), func(t *testing.T) {
			e := newEngine()
			days := parisDays()
			pristine := parisDays()

			res := e.Dispatch(context.Background(), in, days, parisContext())

			require.Equal(t, pristine, res.Rollback, "rollback must equal the pre-mutation state")
			require.Equal(t, pristine, days, "the caller's days must never be mutated")

			// Mutating the result must not reach back into the snapshot.
			if len(res.Days) > 0 && len(res.Days[0].Items) > 0 {
				res.Days[0].Items[0].Title = "scribbled"
				assert.Equal(t, pristine, res.Rollback)
			}
		})
	}
}

// TestDispatch_InvariantPreservation verifies that successful mutations
// keep every item inside a valid clock range with duration in sync, and
// never touch the times of flights or check-ins.
func TestDispatch_InvariantPreservation(t *testing.T) {
	intents := []domain.Intent{
		{Type: domain.IntentShiftTimes, Parameters: domain.IntentParams{TimeShiftMinutes: 45, Direction: "later"}},
		{Type: domain.IntentReorderDay, Parameters: domain.IntentParams{DayNumbers: []int{2}}},
		{Type: domain.IntentAddActivity, Parameters: domain.IntentParams{NewValue: "Sainte-Chapelle"}},
		{Type: domain.IntentAddDay, Parameters: domain.IntentParams{InsertAfterDay: 1}},
	}

	for _, in := range intents {
		in.Confidence = 0.9
		t.Run(string(in.Type), func(t *testing.T) {
			e := newEngine()
			days := parisDays()

			res := e.Dispatch(context.Background(), in, days, parisContext())

			require.True(t, res.Success, "fixture intents are expected to apply: %s", res.Explanation)
			for _, d := range res.Days {
				for _, it := range d.Items {
					start, end := it.StartMinutes(), it.EndMinutes()
					require.GreaterOrEqual(t, start, 0, "%s has a bad start", it.Title)
					require.Greater(t, end, start, "%s must end after it starts", it.Title)
					require.LessOrEqual(t, end, 24*60, "%s runs past midnight", it.Title)
					require.Equal(t, end-start, it.DurationMinutes, "%s duration out of sync", it.Title)
				}
			}

			// Structurally fixed items keep their exact times.
			fixed := map[string][2]string{
				"flight-in": {"09:00", "11:00"},
				"checkin-1": {"14:00", "14:30"},
			}
			for _, d := range res.Days {
				for _, it := range d.Items {
					if want, ok := fixed[it.ID]; ok {
						assert.Equal(t, want[0], it.Start)
						assert.Equal(t, want[1], it.End)
					}
				}
			}
		})
	}
}
