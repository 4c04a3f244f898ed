package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// CreateCampaignInput is everything a caller may set when creating a
// campaign. Status, spend, metrics and metadata are never caller-set.
type CreateCampaignInput struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Type           Type            `json:"type"`
	Category       string          `json:"category"`
	Tags           []string        `json:"tags"`
	Priority       Priority        `json:"priority"`
	TargetAudience TargetAudience  `json:"targetAudience"`
	Budget         BudgetInput     `json:"budget"`
	Schedule       Schedule        `json:"schedule"`
	Goals          Goals           `json:"goals"`
	Tracking       TrackingInput   `json:"tracking"`
	Settings       ContentSettings `json:"settings"`
	Source         string          `json:"source"`
}

type BudgetInput struct {
	Total     int64     `json:"total"`
	Currency  string    `json:"currency"`
	Breakdown Breakdown `json:"breakdown"`
}

type TrackingInput struct {
	PixelID          string   `json:"pixelId"`
	ConversionEvents []string `json:"conversionEvents"`
}

// NewCampaign builds a draft campaign owned by p. The returned campaign has
// passed full validation.
func NewCampaign(in CreateCampaignInput, p Principal, id string, now time.Time) (Campaign, error) {
	now = now.UTC()
	c := Campaign{
		ID:             id,
		OrganizationID: p.OrganizationID,
		CreatedBy:      p.ID,
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Type:           in.Type,
		Category:       strings.TrimSpace(in.Category),
		Tags:           normalizeTags(in.Tags),
		Status:         StatusDraft,
		Priority:       in.Priority,
		TargetAudience: in.TargetAudience,
		Budget: Budget{
			Total:     in.Budget.Total,
			Currency:  in.Budget.Currency,
			Breakdown: in.Budget.Breakdown,
		},
		Schedule: in.Schedule,
		AIContent: AIContent{
			Settings: in.Settings,
		},
		Performance: Performance{
			Goals: Goals{Target: in.Goals.Target, Unit: in.Goals.Unit},
			Tracking: Tracking{
				PixelID:          in.Tracking.PixelID,
				ConversionEvents: slices.Clone(in.Tracking.ConversionEvents),
			},
		},
		Team: Team{
			Members: []Member{{UserID: p.ID, Role: RoleOwner}},
		},
		Metadata: Metadata{
			Source:       in.Source,
			Version:      1,
			LastModified: now,
			ModifiedBy:   p.ID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyDefaults(&c)
	c = Recompute(c)
	if err := ValidateCampaign(&c); err != nil {
		return Campaign{}, err
	}
	return c, nil
}

func applyDefaults(c *Campaign) {
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	if c.Budget.Currency == "" {
		c.Budget.Currency = "USD"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "UTC"
	}
	for i := range c.Schedule.Milestones {
		if c.Schedule.Milestones[i].Status == "" {
			c.Schedule.Milestones[i].Status = MilestonePending
		}
	}
	if c.AIContent.Settings.Tone == "" {
		c.AIContent.Settings.Tone = ToneProfessional
	}
	if c.AIContent.Settings.Language == "" {
		c.AIContent.Settings.Language = "en"
	}
	if c.Metadata.Source == "" {
		c.Metadata.Source = "web"
	}
}

// ValidateCampaign checks every persisted invariant of c.
func ValidateCampaign(c *Campaign) error {
	if !c.Schedule.StartDate.IsZero() && !c.Schedule.EndDate.IsZero() &&
		!c.Schedule.StartDate.Before(c.Schedule.EndDate) {
		return validationError("schedule.endDate", "must be after startDate")
	}
	if err := Validate(c); err != nil {
		return err
	}
	if c.Budget.Remaining != c.Budget.Total-c.Budget.Spent {
		return validationError("budget.remaining", fmt.Sprintf("must equal total - spent (%d)", c.Budget.Total-c.Budget.Spent))
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CampaignPatch is a partial update of the descriptive parts of a
// campaign. Nil fields are left unchanged. Status, budget totals, spend and
// metrics have dedicated operations and cannot be patched.
type CampaignPatch struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Type           *Type           `json:"type,omitempty"`
	Category       *string         `json:"category,omitempty"`
	Tags           *[]string       `json:"tags,omitempty"`
	Priority       *Priority       `json:"priority,omitempty"`
	TargetAudience *TargetAudience `json:"targetAudience,omitempty"`
	Currency       *string         `json:"currency,omitempty"`
	Breakdown      *Breakdown      `json:"breakdown,omitempty"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Timezone       *string         `json:"timezone,omitempty"`
	Milestones     *[]Milestone    `json:"milestones,omitempty"`
	Goals          *Goals          `json:"goals,omitempty"`
	Tracking       *TrackingInput  `json:"tracking,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p CampaignPatch) Empty() bool {
	return p == CampaignPatch{}
}

// Apply writes the patch onto c and revalidates the whole campaign.
func (p CampaignPatch) Apply(c *Campaign) error {
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		c.Description = strings.TrimSpace(*p.Description)
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Category != nil {
		c.Category = strings.TrimSpace(*p.Category)
	}
	if p.Tags != nil {
		c.Tags = normalizeTags(*p.Tags)
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.TargetAudience != nil {
		c.TargetAudience = *p.TargetAudience
	}
	if p.Currency != nil {
		c.Budget.Currency = *p.Currency
	}
	if p.Breakdown != nil {
		c.Budget.Breakdown = *p.Breakdown
	}
	if p.StartDate != nil {
		c.Schedule.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.Schedule.EndDate = *p.EndDate
	}
	if p.Timezone != nil {
		c.Schedule.Timezone = *p.Timezone
	}
	if p.Milestones != nil {
		c.Schedule.Milestones = slices.Clone(*p.Milestones)
	}
	if p.Goals != nil {
		c.Performance.Goals.Target = p.Goals.Target
		c.Performance.Goals.Unit = p.Goals.Unit
	}
	if p.Tracking != nil {
		c.Performance.Tracking.PixelID = p.Tracking.PixelID
		c.Performance.Tracking.ConversionEvents = slices.Clone(p.Tracking.ConversionEvents)
	}
	applyDefaults(c)
	*c = Recompute(*c)
	return ValidateCampaign(c)
}
