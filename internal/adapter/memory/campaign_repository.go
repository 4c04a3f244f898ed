// Package memory provides an in-process Campaign Entity Store used for
// local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

type key struct{ org, id string }

// CampaignRepository implements port.CampaignRepository on a map guarded by
// a mutex. Stored values are deep copies, so callers never share memory
// with the store.
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[key]domain.Campaign
	now       func() time.Time
}

// NewCampaignRepository returns an empty store.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[key]domain.Campaign),
		now:       time.Now,
	}
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

func (r *CampaignRepository) Create(_ context.Context, c domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{c.OrganizationID, c.ID}
	if _, ok := r.campaigns[k]; ok {
		return domain.NewError(domain.ErrConflict, "id", "campaign "+c.ID+" already exists")
	}
	r.campaigns[k] = c.Clone()
	return nil
}

func (r *CampaignRepository) Get(_ context.Context, orgID, id string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[key{orgID, id}]
	if !ok {
		return nil, domain.NotFoundError(orgID, id)
	}
	out := c.Clone()
	return &out, nil
}

func (r *CampaignRepository) Update(_ context.Context, c domain.Campaign, expectedVersion int64) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{c.OrganizationID, c.ID}
	cur, ok := r.campaigns[k]
	if !ok {
		return nil, domain.NotFoundError(c.OrganizationID, c.ID)
	}
	if cur.Metadata.Version != expectedVersion {
		return nil, domain.ConflictError(c.ID, expectedVersion, cur.Metadata.Version)
	}
	next := c.Clone()
	next.Metadata.Version = expectedVersion + 1
	next.Metadata.LastModified = r.now().UTC()
	r.campaigns[k] = next
	out := next.Clone()
	return &out, nil
}

func (r *CampaignRepository) Delete(_ context.Context, orgID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{orgID, id}
	if _, ok := r.campaigns[k]; !ok {
		return domain.NotFoundError(orgID, id)
	}
	delete(r.campaigns, k)
	return nil
}

func (r *CampaignRepository) List(_ context.Context, f port.ListFilter, page port.Page) ([]domain.Campaign, int64, error) {
	page = page.Normalize()
	matched := r.match(f)
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := min(page.Offset(), len(matched))
	end := min(start+page.Limit, len(matched))
	return matched[start:end], total, nil
}

func (r *CampaignRepository) Summary(_ context.Context, f port.ListFilter) (*port.Summary, error) {
	s := &port.Summary{ByStatus: make(map[domain.Status]int64)}
	for _, c := range r.match(f) {
		s.Campaigns++
		s.ByStatus[c.Status]++
		s.TotalBudget += c.Budget.Total
		s.TotalSpent += c.Budget.Spent
		s.Impressions += c.Performance.Metrics.Impressions
		s.Clicks += c.Performance.Metrics.Clicks
		s.Conversions += c.Performance.Metrics.Conversions
	}
	s.Finish()
	return s, nil
}

func (r *CampaignRepository) match(f port.ListFilter) []domain.Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Campaign
	for k, c := range r.campaigns {
		if k.org != f.OrganizationID || !matches(&c, f) {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

func matches(c *domain.Campaign, f port.ListFilter) bool {
	if f.VisibleTo != "" {
		if _, member := c.Team.Member(f.VisibleTo); c.CreatedBy != f.VisibleTo && !member {
			return false
		}
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	if f.Tag != "" && !c.HasTag(f.Tag) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(f.Search)) {
		return false
	}
	return true
}
