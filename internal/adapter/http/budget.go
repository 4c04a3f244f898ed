package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleApplySpend adds a non-negative spend amount in minor currency units.
func (h *Handler) handleApplySpend(w http.ResponseWriter, r *http.Request) {
	var req spendRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.ApplySpend(r.Context(), principal(r), chi.URLParam(r, "id"), req.Amount, req.Version))
}

func (h *Handler) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.SetBudget(r.Context(), principal(r), chi.URLParam(r, "id"), req.Total, req.Version))
}
