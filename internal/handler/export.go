// Package handler — export.go implements GET /export and
// GET /trips/{tripID}/export. Both return the itinerary as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "destination", "day_number", "date", "theme",
	"item_id", "item_type", "title", "start_time", "end_time",
	"duration_minutes", "estimated_cost", "data_reliability",
}

// GetExport handles GET /export.
// It returns a flat table of every day and item across all trips.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeExport(w, r, rows)
}

// GetTripExport handles GET /trips/{tripID}/export for a single trip.
func (s *Server) GetTripExport(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	rows, err := s.export.ExportTrip(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}
	writeExport(w, r, rows)
}

// writeExport negotiates the response format: ?format=csv yields CSV,
// anything else JSON.
func writeExport(w http.ResponseWriter, r *http.Request, rows []domain.ExportRow) {
	if r.URL.Query().Get("format") == "csv" {
		buf := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// buildCSV encodes the rows as CSV, header first.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(exportCSVRecord(r))
	}
	cw.Flush()

	return &buf
}

// exportCSVRecord encodes one ExportRow as a flat string slice. Item columns
// of a day with no items are encoded as empty strings, not zeros.
func exportCSVRecord(r domain.ExportRow) []string {
	duration, cost := "", ""
	if r.ItemID != "" {
		duration = strconv.Itoa(r.DurationMinutes)
		cost = strconv.FormatFloat(r.EstimatedCost, 'f', -1, 64)
	}
	return []string{
		r.TripID,
		r.Destination,
		strconv.Itoa(r.DayNumber),
		r.Date,
		r.Theme,
		r.ItemID,
		r.ItemType,
		r.Title,
		r.StartTime,
		r.EndTime,
		duration,
		cost,
		r.DataReliability,
	}
}
