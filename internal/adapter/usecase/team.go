package usecase

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// AddComment appends a comment from the principal. Closed campaigns still
// accept comments.
func (u *CampaignUseCase) AddComment(ctx context.Context, p domain.Principal, id string, content string, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.add_comment", p, id)
	defer func() { finish(span, err) }()

	commentID := u.newID()
	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanComment(role) {
			return domain.ForbiddenError(role, "comment")
		}
		return c.Team.AddComment(domain.Comment{
			ID:        commentID,
			UserID:    p.ID,
			Content:   content,
			Timestamp: u.now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeTeamUpdated, p, c, "", "")
	return c, nil
}

// ResolveComment marks a comment resolved.
func (u *CampaignUseCase) ResolveComment(ctx context.Context, p domain.Principal, id, commentID string, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.resolve_comment", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanComment(role) {
			return domain.ForbiddenError(role, "resolve comments")
		}
		return c.Team.ResolveComment(commentID)
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeTeamUpdated, p, c, "", "")
	return c, nil
}

// SetMember adds a member to the campaign team or changes their role.
func (u *CampaignUseCase) SetMember(ctx context.Context, p domain.Principal, id string, m domain.Member, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.set_member", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanManageTeam(role) {
			return domain.ForbiddenError(role, "manage the team")
		}
		if m.Role == domain.RoleOwner && role != domain.RoleOwner {
			return domain.ForbiddenError(role, "grant the owner role")
		}
		return c.Team.SetMember(m)
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeTeamUpdated, p, c, "", "")
	return c, nil
}

// RemoveMember removes a member from the campaign team.
func (u *CampaignUseCase) RemoveMember(ctx context.Context, p domain.Principal, id, userID string, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.remove_member", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanManageTeam(role) {
			return domain.ForbiddenError(role, "manage the team")
		}
		return c.Team.RemoveMember(userID)
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeTeamUpdated, p, c, "", "")
	return c, nil
}
