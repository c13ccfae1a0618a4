package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/service"
)

func exportTrip(id uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:          id,
		Destination: "Paris",
		StartDate:   testDate(2026, 9, 1),
		Days: []domain.Day{
			{
				DayNumber: 1,
				Date:      testDate(2026, 9, 1),
				Theme:     "Arrival",
				Items: []domain.Item{
					// Deliberately out of schedule order.
					{ID: "walk-1", Type: domain.ItemActivity, Title: "Montmartre walk", Start: "15:00", End: "17:00", DurationMinutes: 120, DataReliability: domain.ReliabilityEstimated},
					{ID: "flight-in", Type: domain.ItemFlight, Title: "Flight AF123 to Paris", Start: "09:00", End: "11:00", DurationMinutes: 120, EstimatedCost: 180, DataReliability: domain.ReliabilityVerified},
				},
			},
			{DayNumber: 2, Date: testDate(2026, 9, 2)},
		},
	}
}

func TestExportService_Export_FlattensInScheduleOrder(t *testing.T) {
	id := uuid.New()
	repo := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{exportTrip(id)}, nil
		},
	}
	svc := service.NewExportService(repo)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3, "two items on day 1 plus one row for the empty day 2")

	first := rows[0]
	assert.Equal(t, id.String(), first.TripID)
	assert.Equal(t, "Paris", first.Destination)
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, "2026-09-01", first.Date)
	assert.Equal(t, "Arrival", first.Theme)
	assert.Equal(t, "flight-in", first.ItemID, "items come out in schedule order, not storage order")
	assert.Equal(t, "flight", first.ItemType)
	assert.Equal(t, "09:00", first.StartTime)
	assert.Equal(t, "11:00", first.EndTime)
	assert.Equal(t, 120, first.DurationMinutes)
	assert.Equal(t, float64(180), first.EstimatedCost)
	assert.Equal(t, "verified", first.DataReliability)

	assert.Equal(t, "walk-1", rows[1].ItemID)

	empty := rows[2]
	assert.Equal(t, 2, empty.DayNumber)
	assert.Equal(t, "2026-09-02", empty.Date)
	assert.Empty(t, empty.ItemID)
	assert.Empty(t, empty.StartTime)
}

func TestExportService_Export_NoTrips(t *testing.T) {
	repo := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewExportService(repo)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_RepoError(t *testing.T) {
	boom := errors.New("boom")
	repo := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return nil, boom },
	}
	svc := service.NewExportService(repo)

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestExportService_ExportTrip_OK(t *testing.T) {
	id := uuid.New()
	repo := &mockTripRepo{
		getByID: func(_ context.Context, gotID uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, id, gotID)
			return exportTrip(id), nil
		},
	}
	svc := service.NewExportService(repo)

	rows, err := svc.ExportTrip(context.Background(), id)

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, id.String(), rows[0].TripID)
}

func TestExportService_ExportTrip_NotFound(t *testing.T) {
	repo := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewExportService(repo)

	_, err := svc.ExportTrip(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
