// Package handler implements the HTTP handlers for the voyage planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, intent.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
	"github.com/zaccharietardy-dotcom/voyage-planner/internal/service"
	"github.com/zaccharietardy-dotcom/voyage-planner/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlannerServicer defines the mutation-engine operations the intent and
// schedule handlers depend on.
type PlannerServicer interface {
	HandleIntent(ctx context.Context, tripID uuid.UUID, intent domain.Intent) (domain.MutationResult, error)
	Layout(ctx context.Context, tripID uuid.UUID) ([]service.DayLayout, error)
	Review(ctx context.Context, tripID uuid.UUID) (service.TripReview, error)
	History(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.IntentLog, int64, error)
}

// ExportServicer defines the export operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
	ExportTrip(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	trips   TripServicer
	planner PlannerServicer
	export  ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, planner PlannerServicer, export ExportServicer) *Server {
	return &Server{trips: trips, planner: planner, export: export}
}

// Pagination echoes the resolved paging parameters in list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Routes assembles the API router. main mounts the result at /.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/docs", s.GetDocs)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Post("/intents", s.ApplyIntent)
			r.Get("/layout", s.GetLayout)
			r.Get("/review", s.GetReview)
			r.Get("/history", s.ListHistory)
			r.Get("/export", s.GetTripExport)
		})
	})
	r.Get("/export", s.GetExport)

	return r
}

// --- shared plumbing --------------------------------------------------------

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The status line is gone already; all we can do is log.
		slog.Error("failed to encode response", "error", err)
	}
}

// internalError logs the failure and returns an opaque 500.
// Details stay in the server log; clients never see internals.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("handler error", "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
	})
}

// decodeBody decodes the JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// tripIDParam parses the {tripID} path parameter. Malformed values are
// rejected with a 400 before any service call.
func tripIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid trip id"))
		return uuid.Nil, false
	}
	return id, true
}

// intQuery returns the named query parameter as an int pointer, or nil when
// the parameter is absent or not a number. Paging falls back to defaults
// rather than erroring on garbage.
func intQuery(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded spec.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// scalarPage is the self-contained Scalar API reference UI. It loads the
// embedded spec from /openapi.yaml, so the docs always match the binary.
const scalarPage = `<!doctype html>
<html>
  <head>
    <title>Voyage Planner API</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="/openapi.yaml"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`

// GetDocs handles GET /docs with the Scalar UI.
func (s *Server) GetDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(scalarPage))
}
