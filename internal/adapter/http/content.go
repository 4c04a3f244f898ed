package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleAttachContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.AttachContent(r.Context(), principal(r), chi.URLParam(r, "id"), req.AttachContentInput, req.Version))
}

func (h *Handler) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.GenerateContent(r.Context(), principal(r), chi.URLParam(r, "id"), req.GenerateContentInput, req.Version))
}
