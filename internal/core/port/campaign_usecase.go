package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the campaign
// engine. It is the primary port into the application domain.
//
// Every mutating operation takes the version the caller last read. A
// non-zero expectedVersion must match the stored version or the call fails
// with domain.ErrConflict. Zero means "apply to the latest version": the
// operation reads, applies and, on a concurrent write, retries once against
// a fresh read before surfacing the conflict.
type CampaignUseCase interface {
	// Create stores a new draft campaign owned by the principal.
	Create(ctx context.Context, p domain.Principal, in domain.CreateCampaignInput) (*domain.Campaign, error)
	// Get returns a campaign visible to the principal.
	Get(ctx context.Context, p domain.Principal, id string) (*domain.Campaign, error)
	// Update applies a descriptive patch.
	Update(ctx context.Context, p domain.Principal, id string, patch domain.CampaignPatch, expectedVersion int64) (*domain.Campaign, error)
	// Delete removes a campaign.
	Delete(ctx context.Context, p domain.Principal, id string) error
	// List returns the campaigns visible to the principal.
	List(ctx context.Context, p domain.Principal, q ListQuery) (*ListResult, error)
	// Summary aggregates the campaigns visible to the principal.
	Summary(ctx context.Context, p domain.Principal) (*Summary, error)

	// Transition moves a campaign along the lifecycle.
	Transition(ctx context.Context, p domain.Principal, id string, to domain.Status, expectedVersion int64) (*TransitionResult, error)
	// ApplySpend records additional spend.
	ApplySpend(ctx context.Context, p domain.Principal, id string, amount int64, expectedVersion int64) (*domain.Campaign, error)
	// SetBudget replaces the budget total.
	SetBudget(ctx context.Context, p domain.Principal, id string, total int64, expectedVersion int64) (*domain.Campaign, error)
	// AttachContent stores caller-supplied creative content.
	AttachContent(ctx context.Context, p domain.Principal, id string, in AttachContentInput, expectedVersion int64) (*domain.Campaign, error)
	// GenerateContent asks the content generator for creative content and
	// attaches it.
	GenerateContent(ctx context.Context, p domain.Principal, id string, in GenerateContentInput, expectedVersion int64) (*domain.Campaign, error)
	// RecordEvent feeds one interaction event into the performance metrics.
	RecordEvent(ctx context.Context, p domain.Principal, id string, e domain.Event, expectedVersion int64) (*domain.Campaign, error)

	// AddComment appends a team comment.
	AddComment(ctx context.Context, p domain.Principal, id string, content string, expectedVersion int64) (*domain.Campaign, error)
	// ResolveComment marks a comment resolved.
	ResolveComment(ctx context.Context, p domain.Principal, id, commentID string, expectedVersion int64) (*domain.Campaign, error)
	// SetMember adds a team member or changes their role.
	SetMember(ctx context.Context, p domain.Principal, id string, m domain.Member, expectedVersion int64) (*domain.Campaign, error)
	// RemoveMember removes a team member.
	RemoveMember(ctx context.Context, p domain.Principal, id, userID string, expectedVersion int64) (*domain.Campaign, error)
}

// ListQuery is the caller-facing listing request.
type ListQuery struct {
	Status   domain.Status
	Type     domain.Type
	Priority domain.Priority
	Tag      string
	Search   string
	Page     Page
}

// ListResult is one page of campaigns plus pagination figures.
type ListResult struct {
	Campaigns []domain.Campaign `json:"campaigns"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
	Total     int64             `json:"total"`
	Pages     int64             `json:"pages"`
}

// TransitionResult is the campaign after a status change, with any
// non-blocking warnings the lifecycle raised.
type TransitionResult struct {
	Campaign *domain.Campaign `json:"campaign"`
	From     domain.Status    `json:"from"`
	To       domain.Status    `json:"to"`
	Warnings []domain.Warning `json:"warnings,omitempty"`
}

// AttachContentInput carries caller-supplied creative content.
type AttachContentInput struct {
	Content  domain.Content         `json:"content"`
	Settings domain.ContentSettings `json:"settings"`
}

// GenerateContentInput asks the generator for content. Empty settings fall
// back to the campaign's current content settings.
type GenerateContentInput struct {
	Prompt   string                 `json:"prompt"`
	Settings domain.ContentSettings `json:"settings"`
}
