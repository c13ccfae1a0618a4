package handler

import (
	"errors"
	"net/http"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// GetLayout handles GET /trips/{tripID}/layout.
// It returns one grid layout per day, with overlapping items split into
// side-by-side columns the way a calendar view renders them.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	layouts, err := s.planner.Layout(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layouts)
}

// GetReview handles GET /trips/{tripID}/review.
// The review is computed fresh on every call: time conflicts and boundary
// issues per day, plus the constraints currently derived from the schedule.
func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	review, err := s.planner.Review(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}
