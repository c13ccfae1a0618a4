package handler

import (
	"errors"
	"net/http"

	"github.com/zaccharietardy-dotcom/voyage-planner/internal/domain"
)

// PagedHistory is the JSON envelope of GET /trips/{tripID}/history.
type PagedHistory struct {
	Data       []domain.IntentLog `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// ApplyIntent handles POST /trips/{tripID}/intents.
// The body is a classified intent envelope. Engine refusals (immutable item,
// full day, unknown target) are successful HTTP exchanges: they come back as
// 200 with success=false and an error block, so clients always have a result
// to render. Only rejected envelopes and unknown trips are HTTP errors.
func (s *Server) ApplyIntent(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	var intent domain.Intent
	if err := decodeBody(r, &intent); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid request body"))
		return
	}

	result, err := s.planner.HandleIntent(r.Context(), id, intent)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListHistory handles GET /trips/{tripID}/history.
// Entries are returned newest first. Supports ?page= and ?limit=.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := tripIDParam(w, r)
	if !ok {
		return
	}

	params := domain.NewPaginationParams(intQuery(r, "page"), intQuery(r, "limit"))

	entries, total, err := s.planner.History(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("trip not found"))
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedHistory{
		Data: entries,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}
