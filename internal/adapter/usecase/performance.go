package usecase

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// RecordEvent accumulates an interaction event into the campaign metrics.
func (u *CampaignUseCase) RecordEvent(ctx context.Context, p domain.Principal, id string, e domain.Event, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.record_event", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanRecordEvents(role) {
			return domain.ForbiddenError(role, "record events")
		}
		return domain.RecordEvent(c, e, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeEventRecorded, p, c, "", "")
	return c, nil
}
