package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campaign-manager/internal/core/domain"
)

type errorBody struct {
	Error problem `json:"error"`
}

type problem struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type errorMapping struct {
	status int
	code   string
}

var errorStatus = map[error]errorMapping{
	domain.ErrValidation:        {http.StatusBadRequest, "VALIDATION_ERROR"},
	domain.ErrNotFound:          {http.StatusNotFound, "NOT_FOUND"},
	domain.ErrConflict:          {http.StatusConflict, "CONFLICT"},
	domain.ErrIllegalTransition: {http.StatusConflict, "ILLEGAL_TRANSITION"},
	domain.ErrForbidden:         {http.StatusForbidden, "FORBIDDEN"},
	domain.ErrInvalidSpend:      {http.StatusUnprocessableEntity, "INVALID_SPEND"},
	domain.ErrInvalidBudget:     {http.StatusUnprocessableEntity, "INVALID_BUDGET"},
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps a use-case error onto a status code and the error
// envelope. Anything that is not a domain rejection is logged and reported
// as a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if m, ok := errorStatus[domain.Kind(err)]; ok {
		p := problem{Code: m.code, Message: err.Error()}
		var derr *domain.Error
		if errors.As(err, &derr) {
			p.Message = derr.Message
			p.Field = derr.Field
			p.Details = derr.Details
		}
		h.writeJSON(w, m.status, errorBody{Error: p})
		return
	}
	h.logger.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	writeProblem(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}

func writeProblem(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: problem{Code: code, Message: message}})
}
