package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/engine"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/repo"
)

// ExportService assembles the flat itinerary export.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided TripRepo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per scheduled item across all trips, ordered
// by trip (most recent start date first), then day number, then scheduled
// start. Days with no items contribute one row with empty item fields so
// every day of every trip shows up in the export.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		rows = append(rows, tripRows(trip)...)
	}
	return rows, nil
}

// ExportTrip returns the export rows of a single trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) ExportTrip(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportTrip: %w", err)
	}
	return tripRows(trip), nil
}

// tripRows flattens one trip into export rows. Items are emitted in
// schedule order (including the post-midnight rebase), not storage order.
func tripRows(trip domain.Trip) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(trip.Days))
	for _, day := range trip.Days {
		base := domain.ExportRow{
			TripID:      trip.ID.String(),
			Destination: trip.Destination,
			DayNumber:   day.DayNumber,
			Date:        day.Date.Time.Format("2006-01-02"),
			Theme:       day.Theme,
		}
		if len(day.Items) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, it := range engine.SortItems(day.Items) {
			row := base
			row.ItemID = it.ID
			row.ItemType = string(it.Type)
			row.Title = it.Title
			row.StartTime = it.Start
			row.EndTime = it.End
			row.DurationMinutes = it.DurationMinutes
			row.EstimatedCost = it.EstimatedCost
			row.DataReliability = string(it.DataReliability)
			rows = append(rows, row)
		}
	}
	return rows
}
