package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/engine"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/repo"
)

// PlannerService owns intent handling for a trip: it routes classified
// intents through the mutation engine inside the per-trip transaction, and
// serves the read-side views (layout, schedule review, history) computed
// from the persisted schedule. The engine itself is stateless, so the
// service is what ties an engine run to a stored trip.
type PlannerService struct {
	planner repo.PlannerRepo
	trips   repo.TripRepo
	logs    repo.IntentLogRepo
	eng     *engine.Engine
}

// NewPlannerService constructs a PlannerService backed by the provided
// repos and engine.
func NewPlannerService(planner repo.PlannerRepo, trips repo.TripRepo, logs repo.IntentLogRepo, eng *engine.Engine) *PlannerService {
	return &PlannerService{planner: planner, trips: trips, logs: logs, eng: eng}
}

// DayLayout is the grid layout of one day.
type DayLayout struct {
	DayNumber int            `json:"dayNumber"`
	Blocks    []engine.Block `json:"blocks"`
}

// DayReview collects the scheduling problems of one day.
type DayReview struct {
	DayNumber      int                    `json:"dayNumber"`
	Conflicts      []engine.Conflict      `json:"conflicts"`
	BoundaryIssues []engine.BoundaryIssue `json:"boundaryIssues"`
}

// TripReview is the full schedule check for a trip: per-day conflict and
// boundary reports plus the constraints currently derived from the
// schedule. Constraints are recomputed on every call, never read from
// storage.
type TripReview struct {
	Days        []DayReview         `json:"days"`
	Constraints []domain.Constraint `json:"constraints"`
}

// HandleIntent validates the intent envelope, dispatches it to the engine
// against the trip's current schedule, and persists the outcome: the new
// day list when the mutation applied, and a history entry either way.
//
// Engine refusals (constraint violations, missing items, full days) are not
// errors — they come back as a MutationResult with Success false. Errors
// are reserved for rejected envelopes (domain.ErrValidation), unknown trips
// (domain.ErrNotFound), and infrastructure failures.
func (s *PlannerService) HandleIntent(ctx context.Context, tripID uuid.UUID, intent domain.Intent) (domain.MutationResult, error) {
	if err := intent.Validate(); err != nil {
		return domain.MutationResult{}, fmt.Errorf("service.PlannerService.HandleIntent: %w", err)
	}

	var result domain.MutationResult
	_, _, err := s.planner.ApplyIntent(ctx, tripID, func(trip domain.Trip) ([]domain.Day, domain.IntentLog, error) {
		result = s.eng.Dispatch(ctx, intent, trip.Days, trip.Context())

		entry := domain.IntentLog{
			TripID:      tripID,
			IntentType:  intent.Type,
			Intent:      intent,
			Success:     result.Success,
			Explanation: result.Explanation,
			Warnings:    result.Warnings,
			Changes:     result.Changes,
		}
		if result.ErrorInfo != nil {
			entry.ErrorType = string(result.ErrorInfo.Type)
		}

		// Pass-throughs (clarification, general_question) apply no changes;
		// storing the unchanged day list would only churn updated_at.
		days := result.Days
		if len(result.Changes) == 0 {
			days = nil
		}
		return days, entry, nil
	})
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("service.PlannerService.HandleIntent: %w", err)
	}

	return result, nil
}

// Layout returns the grid layout of every day of the trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *PlannerService) Layout(ctx context.Context, tripID uuid.UUID) ([]DayLayout, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PlannerService.Layout: %w", err)
	}

	layouts := make([]DayLayout, 0, len(trip.Days))
	for _, day := range trip.Days {
		blocks := engine.LayoutDay(day.Items)
		if blocks == nil {
			blocks = []engine.Block{}
		}
		layouts = append(layouts, DayLayout{
			DayNumber: day.DayNumber,
			Blocks:    blocks,
		})
	}
	return layouts, nil
}

// Review runs the conflict and boundary checks over every day of the trip
// and derives the current constraint list.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *PlannerService) Review(ctx context.Context, tripID uuid.UUID) (TripReview, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return TripReview{}, fmt.Errorf("service.PlannerService.Review: %w", err)
	}

	review := TripReview{
		Days:        make([]DayReview, 0, len(trip.Days)),
		Constraints: engine.DeriveConstraints(trip.Days),
	}
	if review.Constraints == nil {
		review.Constraints = []domain.Constraint{}
	}
	for _, day := range trip.Days {
		conflicts := engine.DetectTimeConflicts(day.Items)
		if conflicts == nil {
			conflicts = []engine.Conflict{}
		}
		issues := engine.CheckTimeBoundaries(day.Items, engine.DayStartHour, engine.DayEndHour)
		if issues == nil {
			issues = []engine.BoundaryIssue{}
		}
		review.Days = append(review.Days, DayReview{
			DayNumber:      day.DayNumber,
			Conflicts:      conflicts,
			BoundaryIssues: issues,
		})
	}
	return review, nil
}

// History returns one page of the trip's intent history, newest first, plus
// the total entry count.
// Returns domain.ErrNotFound if the trip does not exist, so an empty page
// and an unknown trip are distinguishable.
func (s *PlannerService) History(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.IntentLog, int64, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, 0, fmt.Errorf("service.PlannerService.History: %w", err)
	}

	entries, total, err := s.logs.ListByTrip(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlannerService.History: %w", err)
	}
	if entries == nil {
		entries = []domain.IntentLog{}
	}
	return entries, total, nil
}
