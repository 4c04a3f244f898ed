package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the campaign core unwraps to exactly
// one of these so callers can branch with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("campaign not found")
	ErrConflict          = errors.New("version conflict")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidSpend      = errors.New("invalid spend")
	ErrInvalidBudget     = errors.New("invalid budget")
)

// Error is a structured campaign error. Kind is one of the sentinel errors
// above; Field names the offending input when there is one.
type Error struct {
	Kind    error
	Field   string
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds a structured error of the given kind.
func NewError(kind error, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// WithDetail returns e with an extra detail entry.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func validationError(field, message string) *Error {
	return NewError(ErrValidation, field, message)
}

// NotFoundError reports a campaign missing from the given organization.
func NotFoundError(orgID, id string) *Error {
	return NewError(ErrNotFound, "id", fmt.Sprintf("campaign %s not found", id)).
		WithDetail("organizationId", orgID).
		WithDetail("id", id)
}

// ConflictError reports an optimistic-version mismatch.
func ConflictError(id string, expected, actual int64) *Error {
	e := NewError(ErrConflict, "version", fmt.Sprintf("campaign %s was modified concurrently", id)).
		WithDetail("id", id).
		WithDetail("expectedVersion", fmt.Sprint(expected))
	if actual > 0 {
		e.WithDetail("currentVersion", fmt.Sprint(actual))
	}
	return e
}

// ForbiddenError reports that role may not perform action.
func ForbiddenError(role Role, action string) *Error {
	label := string(role)
	if label == "" {
		label = "none"
	}
	return NewError(ErrForbidden, "role", fmt.Sprintf("role %s may not %s", label, action)).
		WithDetail("role", label).
		WithDetail("action", action)
}

// Kind reports the sentinel kind carried by err, or nil when err did not
// originate from the campaign core.
func Kind(err error) error {
	for _, k := range []error{
		ErrValidation, ErrNotFound, ErrConflict, ErrIllegalTransition,
		ErrForbidden, ErrInvalidSpend, ErrInvalidBudget,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
