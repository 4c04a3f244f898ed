package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// CampaignRepository is the Campaign Entity Store. It is an outbound port:
// implementations scope every read and write by the supplied keys and
// perform no authorization of their own.
//
// Update is a compare-and-swap on the metadata version: it succeeds only
// when the stored version equals expectedVersion, and on success stamps
// metadata.lastModified and increments metadata.version by exactly one.
type CampaignRepository interface {
	// Create stores a new campaign.
	Create(ctx context.Context, c domain.Campaign) error
	// Get returns the campaign or a domain.ErrNotFound error.
	Get(ctx context.Context, orgID, id string) (*domain.Campaign, error)
	// Update replaces the stored campaign. It returns domain.ErrConflict on a
	// version mismatch and domain.ErrNotFound when the campaign is gone.
	Update(ctx context.Context, c domain.Campaign, expectedVersion int64) (*domain.Campaign, error)
	// Delete removes the campaign or returns domain.ErrNotFound.
	Delete(ctx context.Context, orgID, id string) error
	// List returns one page of campaigns matching the filter, newest first,
	// along with the total number of matches.
	List(ctx context.Context, filter ListFilter, page Page) ([]domain.Campaign, int64, error)
	// Summary aggregates budget and performance across matching campaigns.
	Summary(ctx context.Context, filter ListFilter) (*Summary, error)
}

// ListFilter narrows a campaign listing. OrganizationID is mandatory.
// VisibleTo, when set, restricts results to campaigns the principal created
// or is a team member of.
type ListFilter struct {
	OrganizationID string
	VisibleTo      string
	Status         domain.Status
	Type           domain.Type
	Priority       domain.Priority
	Tag            string
	Search         string
}

// Page selects a window of results. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// MaxPageNumber bounds Page.Number so Offset cannot overflow.
const MaxPageNumber = 1_000_000

// Normalize clamps the page into its allowed range.
func (p Page) Normalize() Page {
	p.Number = min(max(p.Number, 1), MaxPageNumber)
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset is the number of results to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Summary contains aggregated figures for a set of campaigns. Money sums
// are in integer currency units regardless of campaign currency.
type Summary struct {
	Campaigns   int64                   `json:"campaigns"`
	ByStatus    map[domain.Status]int64 `json:"byStatus"`
	TotalBudget int64                   `json:"totalBudget"`
	TotalSpent  int64                   `json:"totalSpent"`
	Impressions int64                   `json:"impressions"`
	Clicks      int64                   `json:"clicks"`
	Conversions int64                   `json:"conversions"`
	CTR         float64                 `json:"ctr"`
}

// Finish fills the derived summary fields.
func (s *Summary) Finish() {
	if s.ByStatus == nil {
		s.ByStatus = make(map[domain.Status]int64)
	}
	if s.Impressions > 0 {
		s.CTR = float64(s.Clicks) / float64(s.Impressions)
	} else {
		s.CTR = 0
	}
}
