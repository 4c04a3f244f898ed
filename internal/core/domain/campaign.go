package domain

import (
	"math"
	"slices"
	"time"
)

// Type is the marketing channel a campaign runs on.
type Type string

const (
	TypeSocial      Type = "social"
	TypeEmail       Type = "email"
	TypeContent     Type = "content"
	TypeAdvertising Type = "advertising"
	TypeEvent       Type = "event"
	TypeInfluencer  Type = "influencer"
)

// Priority orders campaigns for the team working on them.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Campaign is one marketing initiative with its budget, schedule, creative
// content and performance state. It is persisted as a single document.
// Money amounts are stored in integer minor units (e.g. cents).
type Campaign struct {
	ID             string `json:"id" bson:"_id"`
	OrganizationID string `json:"organizationId" bson:"organizationId" validate:"required"`
	CreatedBy      string `json:"createdBy" bson:"createdBy" validate:"required"`

	Title       string   `json:"title" bson:"title" validate:"required,max=200"`
	Description string   `json:"description" bson:"description" validate:"required,max=2000"`
	Type        Type     `json:"type" bson:"type" validate:"required,oneof=social email content advertising event influencer"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty" validate:"max=100"`
	Tags        []string `json:"tags" bson:"tags" validate:"dive,max=50"`

	Status   Status   `json:"status" bson:"status" validate:"required,oneof=draft review approved active paused completed cancelled"`
	Priority Priority `json:"priority" bson:"priority" validate:"required,oneof=low medium high urgent"`

	TargetAudience TargetAudience `json:"targetAudience" bson:"targetAudience"`
	Budget         Budget         `json:"budget" bson:"budget"`
	Schedule       Schedule       `json:"schedule" bson:"schedule"`
	AIContent      AIContent      `json:"aiContent" bson:"aiContent"`
	Performance    Performance    `json:"performance" bson:"performance"`
	Team           Team           `json:"team" bson:"team"`
	Metadata       Metadata       `json:"metadata" bson:"metadata"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TargetAudience describes who a campaign is aimed at.
type TargetAudience struct {
	Demographics Demographics `json:"demographics" bson:"demographics"`
	Behavior     Behavior     `json:"behavior" bson:"behavior"`
	Size         int64        `json:"size" bson:"size" validate:"gt=0"`
}

type Demographics struct {
	AgeRange  *AgeRange `json:"ageRange,omitempty" bson:"ageRange,omitempty"`
	Gender    []string  `json:"gender,omitempty" bson:"gender,omitempty" validate:"dive,oneof=male female other"`
	Location  []string  `json:"location,omitempty" bson:"location,omitempty"`
	Interests []string  `json:"interests,omitempty" bson:"interests,omitempty"`
}

type AgeRange struct {
	Min int `json:"min" bson:"min" validate:"min=0,max=120"`
	Max int `json:"max" bson:"max" validate:"min=0,max=120,gtefield=Min"`
}

type Behavior struct {
	PurchaseHistory *bool    `json:"purchaseHistory,omitempty" bson:"purchaseHistory,omitempty"`
	EngagementLevel string   `json:"engagementLevel,omitempty" bson:"engagementLevel,omitempty" validate:"omitempty,oneof=low medium high"`
	LoyaltyStatus   []string `json:"loyaltyStatus,omitempty" bson:"loyaltyStatus,omitempty"`
}

// Schedule is the campaign run window. StartDate is strictly before EndDate.
type Schedule struct {
	StartDate  time.Time   `json:"startDate" bson:"startDate" validate:"required"`
	EndDate    time.Time   `json:"endDate" bson:"endDate" validate:"required,gtfield=StartDate"`
	Timezone   string      `json:"timezone" bson:"timezone"`
	Milestones []Milestone `json:"milestones" bson:"milestones" validate:"dive"`
}

// MilestoneStatus tracks progress of a single milestone.
type MilestoneStatus string

const (
	MilestonePending   MilestoneStatus = "pending"
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneDelayed   MilestoneStatus = "delayed"
)

type Milestone struct {
	Name   string          `json:"name" bson:"name" validate:"required"`
	Date   time.Time       `json:"date" bson:"date" validate:"required"`
	Status MilestoneStatus `json:"status" bson:"status" validate:"oneof=pending completed delayed"`
}

// Metadata carries the optimistic-concurrency version and audit fields.
// Version starts at 1 and is bumped by the entity store on every update.
type Metadata struct {
	Source       string    `json:"source" bson:"source"`
	Version      int64     `json:"version" bson:"version" validate:"gte=1"`
	LastModified time.Time `json:"lastModified" bson:"lastModified"`
	ModifiedBy   string    `json:"modifiedBy,omitempty" bson:"modifiedBy,omitempty"`
}

// DurationDays returns the schedule length in whole days, rounded up.
func (c *Campaign) DurationDays() int {
	if c.Schedule.StartDate.IsZero() || c.Schedule.EndDate.IsZero() {
		return 0
	}
	d := c.Schedule.EndDate.Sub(c.Schedule.StartDate)
	return int(math.Ceil(d.Hours() / 24))
}

// InWindow reports whether t falls inside the schedule, bounds included.
func (s Schedule) InWindow(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}

// HasTag reports whether the campaign carries tag.
func (c *Campaign) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// Clone returns a deep copy so mutations on the copy never leak back into
// a value another caller still holds.
func (c Campaign) Clone() Campaign {
	c.Tags = slices.Clone(c.Tags)
	d := &c.TargetAudience.Demographics
	if d.AgeRange != nil {
		r := *d.AgeRange
		d.AgeRange = &r
	}
	d.Gender = slices.Clone(d.Gender)
	d.Location = slices.Clone(d.Location)
	d.Interests = slices.Clone(d.Interests)
	if b := c.TargetAudience.Behavior.PurchaseHistory; b != nil {
		v := *b
		c.TargetAudience.Behavior.PurchaseHistory = &v
	}
	c.TargetAudience.Behavior.LoyaltyStatus = slices.Clone(c.TargetAudience.Behavior.LoyaltyStatus)
	c.Schedule.Milestones = slices.Clone(c.Schedule.Milestones)
	c.AIContent.Content = c.AIContent.Content.clone()
	if t := c.AIContent.LastGenerated; t != nil {
		v := *t
		c.AIContent.LastGenerated = &v
	}
	c.Performance.Tracking.ConversionEvents = slices.Clone(c.Performance.Tracking.ConversionEvents)
	c.Performance.Tracking.CustomEvents = slices.Clone(c.Performance.Tracking.CustomEvents)
	c.Team.Members = slices.Clone(c.Team.Members)
	for i := range c.Team.Members {
		c.Team.Members[i].Permissions = slices.Clone(c.Team.Members[i].Permissions)
	}
	c.Team.Comments = slices.Clone(c.Team.Comments)
	return c
}
