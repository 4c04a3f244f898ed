package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleSummary returns aggregate budget and performance figures across
// the campaigns visible to the caller.
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context(), principal(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

// handleRecordEvent feeds one tracking event (or a batch of identical ones
// when count is set) into the campaign's metrics.
func (h *Handler) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.RecordEvent(r.Context(), principal(r), chi.URLParam(r, "id"), req.Event, req.Version))
}
