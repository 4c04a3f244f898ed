package domain

import "time"

// ChangeType names the kind of mutation a ChangeEvent reports.
type ChangeType string

const (
	ChangeCreated         ChangeType = "campaign.created"
	ChangeUpdated         ChangeType = "campaign.updated"
	ChangeTransitioned    ChangeType = "campaign.transitioned"
	ChangeSpendApplied    ChangeType = "campaign.spend_applied"
	ChangeBudgetSet       ChangeType = "campaign.budget_set"
	ChangeContentAttached ChangeType = "campaign.content_attached"
	ChangeEventRecorded   ChangeType = "campaign.event_recorded"
	ChangeTeamUpdated     ChangeType = "campaign.team_updated"
	ChangeDeleted         ChangeType = "campaign.deleted"
)

// ChangeEvent is emitted after a campaign mutation has been persisted.
type ChangeEvent struct {
	ID             string     `json:"id"`
	Type           ChangeType `json:"type"`
	CampaignID     string     `json:"campaignId"`
	OrganizationID string     `json:"organizationId"`
	Version        int64      `json:"version"`
	Actor          string     `json:"actor"`
	From           Status     `json:"from,omitempty"`
	To             Status     `json:"to,omitempty"`
	At             time.Time  `json:"at"`
}
