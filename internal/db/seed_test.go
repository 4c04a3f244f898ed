package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-manager/internal/adapter/memory"
	"campaign-manager/internal/adapter/policy"
	"campaign-manager/internal/adapter/usecase"
	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

func TestSeed(t *testing.T) {
	svc := usecase.NewCampaignUseCase(memory.NewCampaignRepository(), policy.NewRoles())
	ctx := context.Background()

	require.NoError(t, Seed(ctx, svc))
	res, err := svc.List(ctx, DemoAdmin, port.ListQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(len(demoTypes)), res.Total)

	active := 0
	for _, c := range res.Campaigns {
		assert.Equal(t, c.Budget.Total-c.Budget.Spent, c.Budget.Remaining)
		if c.Status != domain.StatusActive {
			assert.Equal(t, domain.StatusDraft, c.Status)
			continue
		}
		active++
		assert.Positive(t, c.Budget.Spent)
		assert.Positive(t, c.Performance.Metrics.Impressions)
		assert.Positive(t, c.Performance.Metrics.ROAS)
	}
	assert.Equal(t, len(demoTypes)-1, active)

	require.NoError(t, Seed(ctx, svc))
	res, err = svc.List(ctx, DemoAdmin, port.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(demoTypes)), res.Total)
}
