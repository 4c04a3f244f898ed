package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testOwner = Principal{ID: "u-owner", OrganizationID: "org-1", Role: OrgRoleMarketer}
)

func validInput() CreateCampaignInput {
	return CreateCampaignInput{
		Title:          "Spring launch",
		Description:    "Launch of the spring collection",
		Type:           TypeSocial,
		Tags:           []string{"spring", " launch ", "spring"},
		TargetAudience: TargetAudience{Size: 5000},
		Budget:         BudgetInput{Total: 1000},
		Schedule: Schedule{
			StartDate: testNow.AddDate(0, 0, -1),
			EndDate:   testNow.AddDate(0, 0, 30),
		},
	}
}

func newTestCampaign(t *testing.T) Campaign {
	t.Helper()
	c, err := NewCampaign(validInput(), testOwner, "c-1", testNow)
	require.NoError(t, err)
	return c
}
