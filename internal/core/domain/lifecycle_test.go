package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionEdges(t *testing.T) {
	allowed := map[Status][]Status{
		StatusDraft:    {StatusReview, StatusCancelled},
		StatusReview:   {StatusApproved, StatusDraft, StatusCancelled},
		StatusApproved: {StatusActive, StatusCancelled},
		StatusActive:   {StatusPaused, StatusCompleted, StatusCancelled},
		StatusPaused:   {StatusActive, StatusCompleted, StatusCancelled},
	}
	for _, from := range Statuses {
		for _, to := range Statuses {
			c := newTestCampaign(t)
			c.Status = from

			_, err := Transition(&c, to, testNow)
			legal := false
			for _, s := range allowed[from] {
				legal = legal || s == to
			}
			if legal {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, c.Status)
				continue
			}
			require.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", from, to)
			assert.Equal(t, from, c.Status, "rejected transition must not change status")

			var derr *Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, string(from), derr.Details["from"])
			assert.Equal(t, string(to), derr.Details["to"])
			assert.Equal(t, joinStatuses(allowed[from]), derr.Details["allowed"])
		}
	}
}

func TestTransitionDraftToActiveIsIllegal(t *testing.T) {
	c := newTestCampaign(t)
	_, err := Transition(&c, StatusActive, testNow)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransitionUnknownStatus(t *testing.T) {
	c := newTestCampaign(t)
	_, err := Transition(&c, "archived", testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestActivateOutsideScheduleWarns(t *testing.T) {
	c := newTestCampaign(t)
	c.Status = StatusApproved

	res, err := Transition(&c, StatusActive, testNow)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	c.Status = StatusApproved
	res, err = Transition(&c, StatusActive, c.Schedule.EndDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, StatusActive, c.Status)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarningOutsideSchedule, res.Warnings[0].Code)
	assert.Equal(t, StatusApproved, res.From)
	assert.Equal(t, StatusActive, res.To)
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range Statuses {
		assert.Equal(t, len(s.Next()) == 0, s.Terminal(), s)
	}
}
