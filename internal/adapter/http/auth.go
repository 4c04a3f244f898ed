package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"campaign-manager/internal/core/domain"
)

type principalKey struct{}

// authenticate resolves the bearer token into a principal and stores it in
// the request context. Requests without a valid token get 401.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeProblem(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}
		p, err := h.auth.Verify(r.Context(), strings.TrimSpace(token))
		if err != nil {
			h.logger.Debug("token rejected", slog.Any("error", err))
			writeProblem(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

// principal returns the caller attached by authenticate.
func principal(r *http.Request) domain.Principal {
	p, _ := r.Context().Value(principalKey{}).(domain.Principal)
	return p
}
