package memory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func campaign(t *testing.T, org, id, owner string, created time.Time) domain.Campaign {
	t.Helper()
	c, err := domain.NewCampaign(domain.CreateCampaignInput{
		Title:          "Campaign " + id,
		Description:    "test",
		Type:           domain.TypeEmail,
		Tags:           []string{"t-" + id},
		TargetAudience: domain.TargetAudience{Size: 10},
		Budget:         domain.BudgetInput{Total: 1000},
		Schedule:       domain.Schedule{StartDate: base, EndDate: base.AddDate(0, 1, 0)},
	}, domain.Principal{ID: owner, OrganizationID: org, Role: domain.OrgRoleMarketer}, id, created)
	require.NoError(t, err)
	return c
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	r := NewCampaignRepository()
	c := campaign(t, "org-1", "c-1", "u-1", base)

	require.NoError(t, r.Create(ctx, c))
	require.ErrorIs(t, r.Create(ctx, c), domain.ErrConflict)

	got, err := r.Get(ctx, "org-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, c, *got)

	_, err = r.Get(ctx, "org-2", "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got.Title = "mutated"
	again, err := r.Get(ctx, "org-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Campaign c-1", again.Title)

	require.ErrorIs(t, r.Delete(ctx, "org-2", "c-1"), domain.ErrNotFound)
	require.NoError(t, r.Delete(ctx, "org-1", "c-1"))
	require.ErrorIs(t, r.Delete(ctx, "org-1", "c-1"), domain.ErrNotFound)
}

func TestUpdateVersioning(t *testing.T) {
	ctx := context.Background()
	r := NewCampaignRepository()
	r.now = func() time.Time { return base.Add(time.Hour) }
	c := campaign(t, "org-1", "c-1", "u-1", base)
	require.NoError(t, r.Create(ctx, c))

	c.Title = "v2"
	updated, err := r.Update(ctx, c, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Metadata.Version)
	assert.Equal(t, base.Add(time.Hour), updated.Metadata.LastModified)

	c.Title = "stale"
	_, err = r.Update(ctx, c, 1)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.Get(ctx, "org-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)
	assert.Equal(t, int64(2), got.Metadata.Version)

	missing := campaign(t, "org-1", "c-404", "u-1", base)
	_, err = r.Update(ctx, missing, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Two writers that read the same version race; exactly one wins and the
// version moves by one.
func TestUpdateConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	r := NewCampaignRepository()
	require.NoError(t, r.Create(ctx, campaign(t, "org-1", "c-1", "u-1", base)))

	read, err := r.Get(ctx, "org-1", "c-1")
	require.NoError(t, err)

	const writers = 8
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	wg.Add(writers)
	for i := range writers {
		go func() {
			defer wg.Done()
			next := read.Clone()
			next.Title = fmt.Sprintf("writer %d", i)
			if _, err := r.Update(ctx, next, read.Metadata.Version); err == nil {
				wins.Add(1)
			} else if assert.ErrorIs(t, err, domain.ErrConflict) {
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(writers-1), conflicts.Load())
	got, err := r.Get(ctx, "org-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, read.Metadata.Version+1, got.Metadata.Version)
}

func TestListAndSummary(t *testing.T) {
	ctx := context.Background()
	r := NewCampaignRepository()
	for i := range 12 {
		owner := "u-1"
		if i%3 == 0 {
			owner = "u-2"
		}
		c := campaign(t, "org-1", fmt.Sprintf("c-%02d", i), owner, base.Add(time.Duration(i)*time.Minute))
		c.Performance.Metrics.Impressions = 100
		c.Performance.Metrics.Clicks = 5
		require.NoError(t, r.Create(ctx, c))
	}
	require.NoError(t, r.Create(ctx, campaign(t, "org-2", "c-x", "u-1", base)))

	page, total, err := r.List(ctx, port.ListFilter{OrganizationID: "org-1"}, port.Page{Number: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, page, 5)
	assert.Equal(t, "c-11", page[0].ID)

	page, _, err = r.List(ctx, port.ListFilter{OrganizationID: "org-1"}, port.Page{Number: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	_, total, err = r.List(ctx, port.ListFilter{OrganizationID: "org-1", VisibleTo: "u-2"}, port.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	page, total, err = r.List(ctx, port.ListFilter{OrganizationID: "org-1", Tag: "t-c-05", Search: "C-05"}, port.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "c-05", page[0].ID)

	s, err := r.Summary(ctx, port.ListFilter{OrganizationID: "org-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), s.Campaigns)
	assert.Equal(t, int64(12), s.ByStatus[domain.StatusDraft])
	assert.Equal(t, int64(12000), s.TotalBudget)
	assert.InDelta(t, 0.05, s.CTR, 1e-9)
}

func TestListPagePastEnd(t *testing.T) {
	ctx := context.Background()
	r := NewCampaignRepository()
	require.NoError(t, r.Create(ctx, campaign(t, "org-1", "c-1", "u-1", base)))

	for _, n := range []int{2, port.MaxPageNumber, math.MaxInt64/10 + 2, math.MaxInt} {
		var (
			got   []domain.Campaign
			total int64
			err   error
		)
		require.NotPanics(t, func() {
			got, total, err = r.List(ctx, port.ListFilter{OrganizationID: "org-1"}, port.Page{Number: n, Limit: 10})
		}, n)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, int64(1), total)
	}
}
