package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"campaign-manager/internal/core/port"
)

// Handler is the inbound HTTP adapter. It authenticates callers through an
// IdentityProvider and forwards every request to the campaign use case.
type Handler struct {
	svc    port.CampaignUseCase
	auth   port.IdentityProvider
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.CampaignUseCase, auth port.IdentityProvider, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, auth: auth, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreate)
			r.Get("/", h.handleList)
			r.Get("/summary", h.handleSummary)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGet)
				r.Patch("/", h.handleUpdate)
				r.Delete("/", h.handleDelete)

				r.Post("/transitions", h.handleTransition)
				r.Post("/budget/spend", h.handleApplySpend)
				r.Put("/budget", h.handleSetBudget)
				r.Put("/content", h.handleAttachContent)
				r.Post("/content/generate", h.handleGenerateContent)
				r.Post("/events", h.handleRecordEvent)
				r.Post("/comments", h.handleAddComment)
				r.Post("/comments/{commentId}/resolve", h.handleResolveComment)
				r.Put("/members/{userId}", h.handleSetMember)
				r.Delete("/members/{userId}", h.handleRemoveMember)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
