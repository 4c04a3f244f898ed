package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is a campaign's position in its approval and execution workflow.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReview    Status = "review"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{
	StatusDraft, StatusReview, StatusApproved, StatusActive,
	StatusPaused, StatusCompleted, StatusCancelled,
}

var transitions = map[Status][]Status{
	StatusDraft:    {StatusReview, StatusCancelled},
	StatusReview:   {StatusApproved, StatusDraft, StatusCancelled},
	StatusApproved: {StatusActive, StatusCancelled},
	StatusActive:   {StatusPaused, StatusCompleted, StatusCancelled},
	StatusPaused:   {StatusActive, StatusCompleted, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Next returns the statuses reachable from s in one step.
func (s Status) Next() []Status {
	return append([]Status(nil), transitions[s]...)
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Warning is a non-blocking notice attached to a successful operation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WarningOutsideSchedule is raised when a campaign is activated while the
// current time lies outside its schedule window.
const WarningOutsideSchedule = "OUTSIDE_SCHEDULE"

// TransitionResult describes an applied status change.
type TransitionResult struct {
	From     Status    `json:"from"`
	To       Status    `json:"to"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Transition moves c to the target status. Only listed edges are allowed;
// activating outside the schedule window succeeds with a warning because
// campaigns may be activated ahead of their start date.
func Transition(c *Campaign, to Status, now time.Time) (TransitionResult, error) {
	from := c.Status
	if !to.Valid() {
		return TransitionResult{}, validationError("status", fmt.Sprintf("unknown status %q", to))
	}
	if !CanTransition(from, to) {
		return TransitionResult{}, NewError(ErrIllegalTransition, "status",
			fmt.Sprintf("cannot move campaign from %s to %s", from, to)).
			WithDetail("from", string(from)).
			WithDetail("to", string(to)).
			WithDetail("allowed", joinStatuses(from.Next()))
	}
	c.Status = to
	res := TransitionResult{From: from, To: to}
	if to == StatusActive && !c.Schedule.InWindow(now) {
		msg := fmt.Sprintf("activated at %s outside schedule %s - %s",
			now.UTC().Format(time.RFC3339),
			c.Schedule.StartDate.UTC().Format(time.RFC3339),
			c.Schedule.EndDate.UTC().Format(time.RFC3339))
		res.Warnings = append(res.Warnings, Warning{Code: WarningOutsideSchedule, Message: msg})
	}
	return res, nil
}

func joinStatuses(ss []Status) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
