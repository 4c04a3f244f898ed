package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type transitionView struct {
	Campaign campaignView `json:"campaign"`
	From     string       `json:"from"`
	To       string       `json:"to"`
	Warnings []warning    `json:"warnings"`
}

type warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleTransition moves the campaign to the requested status. Warnings
// such as activation outside the schedule window do not block the move.
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.Transition(r.Context(), principal(r), chi.URLParam(r, "id"), req.To, req.Version)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := transitionView{
		Campaign: view(res.Campaign),
		From:     string(res.From),
		To:       string(res.To),
		Warnings: make([]warning, 0, len(res.Warnings)),
	}
	for _, wr := range res.Warnings {
		out.Warnings = append(out.Warnings, warning{Code: wr.Code, Message: wr.Message})
	}
	h.writeJSON(w, http.StatusOK, out)
}
