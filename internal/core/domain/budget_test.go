package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySpend(t *testing.T) {
	c := newTestCampaign(t)

	require.NoError(t, Ledger{}.ApplySpend(&c, 300))
	assert.Equal(t, int64(300), c.Budget.Spent)
	assert.Equal(t, int64(700), c.Budget.Remaining)

	require.NoError(t, Ledger{}.ApplySpend(&c, 700))
	assert.Equal(t, int64(0), c.Budget.Remaining)
}

func TestApplySpendRejects(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		spent     int64
		delta     int64
	}{
		{"negative delta", 0, 0, -1},
		{"over total", 0, 900, 101},
		{"over tolerance", 0.1, 1000, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCampaign(t)
			c.Budget.Spent = tt.spent
			c = Recompute(c)

			err := Ledger{OverrunTolerance: tt.tolerance}.ApplySpend(&c, tt.delta)
			require.ErrorIs(t, err, ErrInvalidSpend)
			assert.Equal(t, tt.spent, c.Budget.Spent)
			assert.Equal(t, c.Budget.Total-c.Budget.Spent, c.Budget.Remaining)
		})
	}
}

func TestApplySpendWithinTolerance(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, Ledger{OverrunTolerance: 0.1}.ApplySpend(&c, 1100))
	assert.Equal(t, int64(-100), c.Budget.Remaining)
}

func TestSetBudget(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, Ledger{}.ApplySpend(&c, 100))

	err := Ledger{}.SetBudget(&c, 50)
	require.ErrorIs(t, err, ErrInvalidBudget)
	assert.Equal(t, int64(1000), c.Budget.Total)

	require.ErrorIs(t, Ledger{}.SetBudget(&c, -5), ErrInvalidBudget)

	require.NoError(t, Ledger{}.SetBudget(&c, 100))
	assert.Equal(t, int64(0), c.Budget.Remaining)

	require.NoError(t, Ledger{}.SetBudget(&c, 2500))
	assert.Equal(t, int64(2400), c.Budget.Remaining)
}

func TestBreakdownIsAdvisory(t *testing.T) {
	in := validInput()
	in.Budget.Breakdown = Breakdown{Creative: 800, Media: 900}
	c, err := NewCampaign(in, testOwner, "c-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, Breakdown{Creative: 800, Media: 900}, c.Budget.Breakdown)
	assert.Greater(t, c.Budget.Breakdown.Creative+c.Budget.Breakdown.Media, c.Budget.Total)
}

func TestRecomputeIsPure(t *testing.T) {
	c := newTestCampaign(t)
	c.Budget.Spent = 400
	c.Performance.Metrics.Impressions = 10
	c.Performance.Metrics.Clicks = 4

	out := Recompute(c)
	assert.Equal(t, int64(600), out.Budget.Remaining)
	assert.InDelta(t, 0.4, out.Performance.Metrics.CTR, 1e-9)
	assert.InDelta(t, 100.0, out.Performance.Metrics.CPC, 1e-9)
	assert.Equal(t, int64(1000), c.Budget.Remaining, "input must be untouched")
	assert.Equal(t, out, Recompute(out))
}
