package usecase

import (
	"context"
	"log/slog"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// Transition moves a campaign to the target status. The edge must exist in
// the lifecycle and the principal's team role must be allowed to take it.
// Activating outside the schedule window succeeds with a warning.
func (u *CampaignUseCase) Transition(ctx context.Context, p domain.Principal, id string, to domain.Status, expectedVersion int64) (res *port.TransitionResult, err error) {
	ctx, span := u.start(ctx, "campaign.transition", p, id)
	defer func() { finish(span, err) }()

	var tr domain.TransitionResult
	c, err := u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		from := c.Status
		var terr error
		tr, terr = domain.Transition(c, to, u.now())
		if terr != nil {
			return terr
		}
		if !u.perms.CanTransition(role, from, to) {
			return domain.ForbiddenError(role, "move the campaign from "+string(from)+" to "+string(to)).
				WithDetail("from", string(from)).
				WithDetail("to", string(to))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, w := range tr.Warnings {
		u.logger.Info("campaign transition warning",
			slog.String("campaign_id", id), slog.String("code", w.Code), slog.String("message", w.Message))
	}
	u.publish(ctx, domain.ChangeTransitioned, p, c, tr.From, tr.To)
	return &port.TransitionResult{
		Campaign: c,
		From:     tr.From,
		To:       tr.To,
		Warnings: tr.Warnings,
	}, nil
}
