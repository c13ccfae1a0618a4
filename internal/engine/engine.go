// Package engine implements the itinerary constraint and mutation engine:
// constraint derivation, conflict and boundary checking, day layout, and the
// mutation operators the intent dispatcher routes to. Every operator is a
// pure state transition — it works on a deep copy of the days it is given
// and returns the new state together with a rollback snapshot, never
// touching the caller's slices.
package engine

import (
	"context"
	"log/slog"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// Scheduling constants shared by the operators and checkers. Days run from
// 06:00 to 23:00; anything scheduled outside that window is flagged rather
// than silently moved.
const (
	// DayStartHour is the earliest hour an item may start.
	DayStartHour = 6
	// DayEndHour is the latest hour an item may end.
	DayEndHour = 23

	dayStartMinutes = DayStartHour * 60
	dayEndMinutes   = DayEndHour * 60

	// transitionGapMinutes separates consecutive items when a day is
	// recomputed from scratch (reorder, insert).
	transitionGapMinutes = 30
	// transitBufferMinutes is the travel slack required on each side of a
	// newly added item.
	transitBufferMinutes = 20
	// minItemMinutes is the shortest an item may be shrunk to.
	minItemMinutes = 30
	// defaultActivityMinutes is the window the add-activity slot scan
	// reserves.
	defaultActivityMinutes = 90
)

// Geocoder resolves a free-text place query to coordinates. A miss is
// reported as domain.ErrNotFound. Failures are non-fatal to the operators
// that use it.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}

// AttractionSource supplies a ranked, read-only pool of candidate venues
// for a destination. Unknown destinations yield nil.
type AttractionSource interface {
	PoolFor(destination string) []domain.Attraction
}

// Engine routes classified intents to mutation operators. The zero value is
// not usable; construct with New. Both collaborators may be nil, in which
// case the operators that use them degrade gracefully.
type Engine struct {
	geo  Geocoder
	pool AttractionSource
	log  *slog.Logger
}

// New constructs an Engine with the given collaborators.
func New(geo Geocoder, pool AttractionSource, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{geo: geo, pool: pool, log: log}
}

// Dispatch derives the current constraints and routes the intent to the
// matching operator. clarification and general_question envelopes are
// answered upstream and pass through as successful no-ops. Unknown intent
// types, malformed input and collaborator panics all surface as a generic
// failure result — callers never see a second failure channel.
func (e *Engine) Dispatch(ctx context.Context, intent domain.Intent, days []domain.Day, trip domain.TripContext) (result domain.MutationResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("intent dispatch panicked", "intent", intent.Type, "panic", r)
			result = failure(days, domain.CloneDays(days), domain.FailConstraintViolation,
				"The request could not be applied to this itinerary.", "")
		}
	}()

	e.log.Debug("dispatching intent", "intent", intent.Type, "confidence", intent.Confidence)

	cs := domain.IndexConstraints(DeriveConstraints(days))
	p := intent.Parameters

	switch intent.Type {
	case domain.IntentShiftTimes:
		return e.ShiftTimes(p, days, cs)
	case domain.IntentRemoveActivity:
		return e.RemoveActivity(p, days, cs)
	case domain.IntentSwapActivity:
		return e.SwapActivity(ctx, p, days, cs, trip)
	case domain.IntentExtendFreeTime:
		return e.ExtendFreeTime(p, days, cs)
	case domain.IntentAdjustDuration:
		return e.AdjustDuration(p, days, cs)
	case domain.IntentReorderDay:
		return e.ReorderDay(p, days, cs)
	case domain.IntentAddActivity:
		return e.AddActivity(p, days, cs, trip)
	case domain.IntentChangeMeal:
		return e.ChangeMeal(p, days, cs)
	case domain.IntentAddDay:
		return e.InsertDay(p, days, cs, trip)
	case domain.IntentClarification, domain.IntentGeneralQuestion:
		// Answered by the classifier; the schedule is untouched.
		return domain.MutationResult{
			Success:     true,
			Changes:     []domain.Change{},
			Explanation: intent.Explanation,
			Days:        days,
			Rollback:    domain.CloneDays(days),
		}
	default:
		return failure(days, domain.CloneDays(days), domain.FailConstraintViolation,
			"Unsupported request type.", "")
	}
}

// success assembles the result of an applied mutation.
func success(newDays, snapshot []domain.Day, changes []domain.Change, explanation string, warnings []string) domain.MutationResult {
	return domain.MutationResult{
		Success:     true,
		Changes:     changes,
		Explanation: explanation,
		Warnings:    warnings,
		Days:        newDays,
		Rollback:    snapshot,
	}
}

// failure assembles a refusal. days is returned unchanged so callers can
// always render the result; the snapshot still rides along.
func failure(days, snapshot []domain.Day, kind domain.FailureKind, msg, suggestion string) domain.MutationResult {
	return domain.MutationResult{
		Success:     false,
		Changes:     []domain.Change{},
		Explanation: msg,
		Days:        days,
		Rollback:    snapshot,
		ErrorInfo: &domain.ErrorInfo{
			Type:                  kind,
			Message:               msg,
			AlternativeSuggestion: suggestion,
		},
	}
}
