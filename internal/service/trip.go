// Package service contains the business logic for the voyage planner API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// engine calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip. A trip submitted without days
// gets one empty day per duration day, dated from the start date, so the
// mutation engine has a schedule to work on immediately. Items submitted
// without an id get a generated one.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	normalizeTrip(&trip)

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by start date, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips plus the total trip count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip. The same
// normalization as Create applies, so day dates are recomputed from the
// (possibly changed) start date.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	normalizeTrip(&trip)

	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID. The trip's intent history is removed with it.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - StartDate must be set.
//   - DurationDays must be at least 1 when no days are submitted.
//   - Submitted days must be numbered contiguously from 1.
//   - Item ids must be unique across the whole trip.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", domain.ErrValidation)
	}
	if len(trip.Days) == 0 && trip.DurationDays < 1 {
		return fmt.Errorf("%w: durationDays must be at least 1", domain.ErrValidation)
	}

	seen := make(map[string]bool)
	for i, day := range trip.Days {
		if day.DayNumber != i+1 {
			return fmt.Errorf("%w: day numbers must be contiguous from 1, got %d at position %d", domain.ErrValidation, day.DayNumber, i+1)
		}
		for _, it := range day.Items {
			if it.ID == "" {
				continue // filled in by normalizeTrip
			}
			if seen[it.ID] {
				return fmt.Errorf("%w: duplicate item id %q", domain.ErrValidation, it.ID)
			}
			seen[it.ID] = true
		}
	}
	return nil
}

// normalizeTrip brings a validated trip into canonical form before it is
// stored: days are scaffolded when absent, day dates are derived from the
// start date, duration_days tracks the day count, missing item ids are
// generated, and item durations are recomputed from their clock values.
func normalizeTrip(trip *domain.Trip) {
	trip.Destination = strings.TrimSpace(trip.Destination)

	if len(trip.Days) == 0 {
		trip.Days = make([]domain.Day, trip.DurationDays)
		for i := range trip.Days {
			trip.Days[i] = domain.Day{DayNumber: i + 1, Items: []domain.Item{}}
		}
	}
	trip.DurationDays = len(trip.Days)

	for i := range trip.Days {
		day := &trip.Days[i]
		day.Date.Time = trip.StartDate.Time.AddDate(0, 0, i)
		if day.Items == nil {
			day.Items = []domain.Item{}
		}
		for j := range day.Items {
			it := &day.Items[j]
			if it.ID == "" {
				it.ID = uuid.NewString()
			}
			if it.DurationMinutes == 0 {
				it.DurationMinutes = domain.SpanMinutes(it.Start, it.End)
			}
		}
	}
}
