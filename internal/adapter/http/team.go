package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campaign-manager/internal/core/domain"
)

func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.AddComment(r.Context(), principal(r), chi.URLParam(r, "id"), req.Content, req.Version))
}

func (h *Handler) handleResolveComment(w http.ResponseWriter, r *http.Request) {
	var req versionRequest
	if err := decode(r, &req, true); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.ResolveComment(r.Context(), principal(r),
		chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), req.Version))
}

// handleSetMember adds the user in the path to the team or changes their
// role and permissions.
func (h *Handler) handleSetMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	m := domain.Member{UserID: chi.URLParam(r, "userId"), Role: req.Role, Permissions: req.Permissions}
	h.respond(w, r)(h.svc.SetMember(r.Context(), principal(r), chi.URLParam(r, "id"), m, req.Version))
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	var req versionRequest
	if err := decode(r, &req, true); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r)(h.svc.RemoveMember(r.Context(), principal(r),
		chi.URLParam(r, "id"), chi.URLParam(r, "userId"), req.Version))
}
