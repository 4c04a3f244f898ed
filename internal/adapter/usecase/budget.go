package usecase

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// ApplySpend adds amount to the campaign's spent budget.
func (u *CampaignUseCase) ApplySpend(ctx context.Context, p domain.Principal, id string, amount int64, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.apply_spend", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanEdit(role) {
			return domain.ForbiddenError(role, "record spend")
		}
		return u.ledger.ApplySpend(c, amount)
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeSpendApplied, p, c, "", "")
	return c, nil
}

// SetBudget replaces the campaign's total budget.
func (u *CampaignUseCase) SetBudget(ctx context.Context, p domain.Principal, id string, total int64, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.set_budget", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanEdit(role) {
			return domain.ForbiddenError(role, "change the budget")
		}
		return u.ledger.SetBudget(c, total)
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeBudgetSet, p, c, "", "")
	return c, nil
}
