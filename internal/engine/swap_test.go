package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/engine"
)

func TestSwapActivity_ReplacesInPlace(t *testing.T) {
	var gotQuery string
	geo := &mockGeocoder{geocode: func(_ context.Context, query string) (domain.Coordinates, error) {
		gotQuery = query
		return domain.Coordinates{Latitude: 48.8553, Longitude: 2.3158}, nil
	}}
	e := engine.New(geo, nil, quietLogger())
	days := parisDays()

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "louvre",
		NewValue:     "Musee Rodin",
	}, days, constraintsOf(days), parisContext())

	require.True(t, res.Success)
	assert.Equal(t, "Musee Rodin, Paris", gotQuery)

	it := itemIn(t, res.Days, 2, "louvre")
	assert.Equal(t, "Musee Rodin", it.Title)
	assert.Equal(t, "Swapped in for Louvre Museum.", it.Description)
	assert.Equal(t, domain.ReliabilityEstimated, it.DataReliability)
	// No band keyword in the new title, so the default visit length applies.
	assert.Equal(t, "09:30", it.Start)
	assert.Equal(t, "11:00", it.End)
	assert.Equal(t, 90, it.DurationMinutes)
	require.NotNil(t, it.Latitude)
	assert.InDelta(t, 48.8553, *it.Latitude, 1e-9)

	require.Len(t, res.Changes, 1)
	assert.Equal(t, domain.ChangeUpdate, res.Changes[0].Kind)
	assert.Equal(t, "Louvre Museum", res.Changes[0].Before.Title)
	assert.Equal(t, "Louvre Museum", itemIn(t, res.Rollback, 2, "louvre").Title)
}

func TestSwapActivity_DurationBands(t *testing.T) {
	e := newEngine()
	days := parisDays()
	cs := constraintsOf(days)

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "eiffel",
		NewValue:     "Orangerie Museum",
	}, days, cs, parisContext())
	require.True(t, res.Success)
	assert.Equal(t, "19:30", itemIn(t, res.Days, 2, "eiffel").End)

	res = e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "cruise",
		NewValue:     "Montparnasse Tower",
	}, days, cs, parisContext())
	require.True(t, res.Success)
	assert.Equal(t, "16:15", itemIn(t, res.Days, 2, "cruise").End)
}

func TestSwapActivity_EndClampedToDayWindow(t *testing.T) {
	e := newEngine()
	days := []domain.Day{mkDay(1,
		mkItem("night", domain.ItemActivity, "Evening stroll", "22:00", "22:45"),
	)}

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "night",
		NewValue:     "City beach",
	}, days, constraintsOf(days), parisContext())

	require.True(t, res.Success)
	assert.Equal(t, "23:00", itemIn(t, res.Days, 1, "night").End)
}

// TestSwapActivity_KeepsLengthNearMidnight: too close to the day's end to
// re-estimate, so the previous end survives the swap.
func TestSwapActivity_KeepsLengthNearMidnight(t *testing.T) {
	e := newEngine()
	days := []domain.Day{mkDay(1,
		mkItem("night", domain.ItemActivity, "Evening stroll", "22:45", "23:15"),
	)}

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "night",
		NewValue:     "City beach",
	}, days, constraintsOf(days), parisContext())

	require.True(t, res.Success)
	assert.Equal(t, "23:15", itemIn(t, res.Days, 1, "night").End)
	assert.Equal(t, 30, itemIn(t, res.Days, 1, "night").DurationMinutes)
}

func TestSwapActivity_GeocodeFailureDegradesToWarning(t *testing.T) {
	geo := &mockGeocoder{geocode: func(context.Context, string) (domain.Coordinates, error) {
		return domain.Coordinates{}, errors.New("upstream down")
	}}
	e := engine.New(geo, nil, quietLogger())
	days := parisDays()

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "louvre",
		NewValue:     "Musee Rodin",
	}, days, constraintsOf(days), parisContext())

	require.True(t, res.Success)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "map pin")
	assert.Nil(t, itemIn(t, res.Days, 2, "louvre").Latitude)
}

func TestSwapActivity_NoGeocoderConfigured(t *testing.T) {
	e := newEngine()
	days := parisDays()

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "louvre",
		NewValue:     "Musee Rodin",
	}, days, constraintsOf(days), parisContext())

	require.True(t, res.Success)
	assert.Empty(t, res.Warnings)
}

func TestSwapActivity_ImmutableRefused(t *testing.T) {
	e := newEngine()
	days := parisDays()

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "flight-in",
		NewValue:     "Later flight",
	}, days, constraintsOf(days), parisContext())

	require.False(t, res.Success)
	require.NotNil(t, res.ErrorInfo)
	assert.Equal(t, domain.FailImmutableItem, res.ErrorInfo.Type)
}

func TestSwapActivity_MissingReplacementFails(t *testing.T) {
	e := newEngine()
	days := parisDays()

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetItemID: "louvre",
	}, days, constraintsOf(days), parisContext())

	require.False(t, res.Success)
	require.NotNil(t, res.ErrorInfo)
	assert.Equal(t, domain.FailConstraintViolation, res.ErrorInfo.Type)
}

func TestSwapActivity_NotFoundSuggestion(t *testing.T) {
	e := newEngine()
	days := parisDays()

	res := e.SwapActivity(context.Background(), domain.IntentParams{
		TargetActivity: "Colosseum",
		NewValue:       "Pantheon",
	}, days, constraintsOf(days), parisContext())

	require.False(t, res.Success)
	require.NotNil(t, res.ErrorInfo)
	assert.Equal(t, domain.FailItemNotFound, res.ErrorInfo.Type)
	assert.Equal(t, "Swap Louvre Museum on day 2 for Pantheon instead", res.ErrorInfo.AlternativeSuggestion)
}
