package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/handler"
)

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export     func(ctx context.Context) ([]domain.ExportRow, error)
	exportTrip func(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}
func (m *mockExportServicer) ExportTrip(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.exportTrip(ctx, id)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

func exportRows() []domain.ExportRow {
	tripID := uuid.New().String()
	return []domain.ExportRow{
		{
			TripID: tripID, Destination: "Paris", DayNumber: 1, Date: "2026-09-01", Theme: "Arrival",
			ItemID: "flight-in", ItemType: "flight", Title: "Flight AF123 to Paris",
			StartTime: "09:00", EndTime: "11:00", DurationMinutes: 120, EstimatedCost: 180, DataReliability: "verified",
		},
		{TripID: tripID, Destination: "Paris", DayNumber: 2, Date: "2026-09-02"},
	}
}

// ---- GET /export -----------------------------------------------------------

func TestGetExport_200_JSON(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context) ([]domain.ExportRow, error) { return exportRows(), nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp []domain.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Flight AF123 to Paris", resp[0].Title)
	assert.Empty(t, resp[1].ItemID, "empty days export a row without item fields")
}

func TestGetExport_200_CSV(t *testing.T) {
	svc := &mockExportServicer{
		export: func(_ context.Context) ([]domain.ExportRow, error) { return exportRows(), nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one line per row")
	assert.Equal(t, "trip_id,destination,day_number,date,theme,item_id,item_type,title,start_time,end_time,duration_minutes,estimated_cost,data_reliability", lines[0])
	assert.Contains(t, lines[1], "Flight AF123 to Paris")
	assert.True(t, strings.HasSuffix(lines[2], ",2,2026-09-02,,,,,,,,,"), "item columns of an empty day stay empty")
}

// ---- GET /trips/{id}/export ------------------------------------------------

func TestGetTripExport_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockExportServicer{
		exportTrip: func(_ context.Context, gotID uuid.UUID) ([]domain.ExportRow, error) {
			assert.Equal(t, tripID, gotID)
			return exportRows(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestGetTripExport_404(t *testing.T) {
	svc := &mockExportServicer{
		exportTrip: func(_ context.Context, _ uuid.UUID) ([]domain.ExportRow, error) {
			return nil, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.New().String()+"/export", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
