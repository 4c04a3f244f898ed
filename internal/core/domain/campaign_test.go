package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignDefaults(t *testing.T) {
	c := newTestCampaign(t)

	assert.Equal(t, StatusDraft, c.Status)
	assert.Equal(t, PriorityMedium, c.Priority)
	assert.Equal(t, "USD", c.Budget.Currency)
	assert.Equal(t, "UTC", c.Schedule.Timezone)
	assert.Equal(t, ToneProfessional, c.AIContent.Settings.Tone)
	assert.Equal(t, "en", c.AIContent.Settings.Language)
	assert.Equal(t, "web", c.Metadata.Source)
	assert.Equal(t, int64(1), c.Metadata.Version)
	assert.Equal(t, int64(1000), c.Budget.Remaining)
	assert.Equal(t, []string{"spring", "launch"}, c.Tags)
	assert.Equal(t, []Member{{UserID: "u-owner", Role: RoleOwner}}, c.Team.Members)
	assert.Equal(t, "org-1", c.OrganizationID)
	assert.Equal(t, "u-owner", c.CreatedBy)
}

func TestNewCampaignValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *CreateCampaignInput)
		field  string
	}{
		{"missing title", func(in *CreateCampaignInput) { in.Title = "  " }, "title"},
		{"unknown type", func(in *CreateCampaignInput) { in.Type = "radio" }, "type"},
		{"unknown currency", func(in *CreateCampaignInput) { in.Budget.Currency = "GBP" }, "budget.currency"},
		{"negative total", func(in *CreateCampaignInput) { in.Budget.Total = -1 }, "budget.total"},
		{"empty audience", func(in *CreateCampaignInput) { in.TargetAudience.Size = 0 }, "targetAudience.size"},
		{"start equals end", func(in *CreateCampaignInput) { in.Schedule.EndDate = in.Schedule.StartDate }, "schedule.endDate"},
		{"start after end", func(in *CreateCampaignInput) {
			in.Schedule.StartDate, in.Schedule.EndDate = in.Schedule.EndDate, in.Schedule.StartDate
		}, "schedule.endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := NewCampaign(in, testOwner, "c-1", testNow)
			require.ErrorIs(t, err, ErrValidation)

			var derr *Error
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.field, derr.Field)
		})
	}
}

func TestPatchApply(t *testing.T) {
	c := newTestCampaign(t)

	title := "Summer launch"
	tags := []string{"summer"}
	require.NoError(t, CampaignPatch{Title: &title, Tags: &tags}.Apply(&c))
	assert.Equal(t, "Summer launch", c.Title)
	assert.Equal(t, []string{"summer"}, c.Tags)

	end := c.Schedule.StartDate.Add(-time.Hour)
	err := CampaignPatch{EndDate: &end}.Apply(&c)
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, CampaignPatch{}.Empty())
}

func TestCloneIsDeep(t *testing.T) {
	c := newTestCampaign(t)
	cp := c.Clone()

	cp.Tags[0] = "changed"
	cp.Team.Members[0].Role = RoleViewer
	cp.Performance.Tracking.CustomEvents = append(cp.Performance.Tracking.CustomEvents, CustomEvent{Name: "x"})

	assert.Equal(t, "spring", c.Tags[0])
	assert.Equal(t, RoleOwner, c.Team.Members[0].Role)
	assert.Empty(t, c.Performance.Tracking.CustomEvents)
}

func TestDerivedViews(t *testing.T) {
	c := newTestCampaign(t)
	assert.Equal(t, 31, c.DurationDays())

	c.Schedule.EndDate = c.Schedule.StartDate.Add(36 * time.Hour)
	assert.Equal(t, 2, c.DurationDays())

	assert.Zero(t, c.Budget.Utilization())
	require.NoError(t, Ledger{}.ApplySpend(&c, 250))
	assert.InDelta(t, 25.0, c.Budget.Utilization(), 1e-9)

	c.Budget = Budget{}
	assert.Zero(t, c.Budget.Utilization())
}

func TestPrincipalRoleOn(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, c.Team.SetMember(Member{UserID: "u-editor", Role: RoleEditor}))

	assert.Equal(t, RoleOwner, testOwner.RoleOn(&c))
	assert.Equal(t, RoleEditor, Principal{ID: "u-editor", OrganizationID: "org-1"}.RoleOn(&c))
	assert.Equal(t, RoleManager, Principal{ID: "u-admin", OrganizationID: "org-1", Role: OrgRoleAdmin}.RoleOn(&c))
	assert.Equal(t, RoleNone, Principal{ID: "u-other", OrganizationID: "org-1", Role: OrgRoleMarketer}.RoleOn(&c))
	assert.Equal(t, RoleNone, Principal{ID: "u-owner", OrganizationID: "org-2", Role: OrgRoleAdmin}.RoleOn(&c))
}
