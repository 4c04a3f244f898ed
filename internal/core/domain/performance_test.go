package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEventCTR(t *testing.T) {
	c := newTestCampaign(t)
	for range 100 {
		require.NoError(t, RecordEvent(&c, Event{Type: EventImpression}, testNow))
	}
	for range 10 {
		require.NoError(t, RecordEvent(&c, Event{Type: EventClick}, testNow))
	}
	assert.Equal(t, int64(100), c.Performance.Metrics.Impressions)
	assert.Equal(t, int64(10), c.Performance.Metrics.Clicks)
	assert.InDelta(t, 0.10, c.Performance.Metrics.CTR, 1e-9)
}

func TestRatiosWithZeroDenominators(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, RecordEvent(&c, Event{Type: EventClick, Count: 5}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: RevenueEvent, Value: 500}, testNow))

	m := c.Performance.Metrics
	assert.Zero(t, m.CTR)
	assert.Zero(t, m.CPC)
	assert.Zero(t, m.ROAS)
}

func TestRatiosWithSpend(t *testing.T) {
	c := newTestCampaign(t)
	require.NoError(t, Ledger{}.ApplySpend(&c, 200))
	require.NoError(t, RecordEvent(&c, Event{Type: EventImpression, Count: 1000}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventClick, Count: 50}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: RevenueEvent, Value: 300}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: RevenueEvent, Value: 500}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: "page_view", Value: 999}, testNow))

	m := c.Performance.Metrics
	assert.InDelta(t, 0.05, m.CTR, 1e-9)
	assert.InDelta(t, 4.0, m.CPC, 1e-9)
	assert.InDelta(t, 4.0, m.ROAS, 1e-9)
	assert.Len(t, c.Performance.Tracking.CustomEvents, 3)
}

func TestCustomConversionEvents(t *testing.T) {
	in := validInput()
	in.Tracking.ConversionEvents = []string{"signup"}
	in.Goals = Goals{Target: 10, Unit: "conversions"}
	c, err := NewCampaign(in, testOwner, "c-1", testNow)
	require.NoError(t, err)

	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: "signup", Count: 3}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventConversion}, testNow))

	assert.Equal(t, int64(4), c.Performance.Metrics.Conversions)
	assert.InDelta(t, 4.0, c.Performance.Goals.Current, 1e-9)
	require.Len(t, c.Performance.Tracking.CustomEvents, 1)
	assert.Equal(t, CustomEvent{Name: "signup", Count: 3, Timestamp: testNow}, c.Performance.Tracking.CustomEvents[0])
}

func TestCustomEventBatchStoredOnce(t *testing.T) {
	c := newTestCampaign(t)
	c.Performance.Tracking.ConversionEvents = []string{"signup"}
	require.NoError(t, Ledger{}.ApplySpend(&c, 100))

	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: "signup", Count: 2_000_000}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventCustom, Name: RevenueEvent, Value: 25, Count: 40}, testNow))
	// Entries written before batches carried a count weigh as one event.
	c.Performance.Tracking.CustomEvents = append(c.Performance.Tracking.CustomEvents,
		CustomEvent{Name: RevenueEvent, Value: 100, Timestamp: testNow})
	c = Recompute(c)

	assert.Len(t, c.Performance.Tracking.CustomEvents, 3)
	assert.Equal(t, int64(2_000_000), c.Performance.Metrics.Conversions)
	assert.InDelta(t, 1100.0, c.Performance.Revenue(), 1e-9)
	assert.InDelta(t, 11.0, c.Performance.Metrics.ROAS, 1e-9)
}

func TestRecordEventRejectsMalformed(t *testing.T) {
	c := newTestCampaign(t)
	assert.ErrorIs(t, RecordEvent(&c, Event{Type: "view"}, testNow), ErrValidation)
	assert.ErrorIs(t, RecordEvent(&c, Event{Type: EventCustom}, testNow), ErrValidation)
	assert.ErrorIs(t, RecordEvent(&c, Event{Type: EventClick, Count: -1}, testNow), ErrValidation)
	assert.Zero(t, c.Performance.Metrics.Clicks)
}

func TestReachAndEngagement(t *testing.T) {
	c := newTestCampaign(t)
	c.Performance.Goals = Goals{Target: 100, Unit: "reach"}
	require.NoError(t, RecordEvent(&c, Event{Type: EventReach, Count: 40}, testNow))
	require.NoError(t, RecordEvent(&c, Event{Type: EventEngagement, Count: 7}, testNow))

	assert.Equal(t, int64(40), c.Performance.Metrics.Reach)
	assert.Equal(t, int64(7), c.Performance.Metrics.Engagement)
	assert.InDelta(t, 40.0, c.Performance.Goals.Current, 1e-9)
}
