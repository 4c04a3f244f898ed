package usecase

import (
	"context"
	"fmt"
	"strings"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// AttachContent stores caller-supplied creative content on the campaign.
func (u *CampaignUseCase) AttachContent(ctx context.Context, p domain.Principal, id string, in port.AttachContentInput, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.attach_content", p, id)
	defer func() { finish(span, err) }()

	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanAttachContent(role) {
			return domain.ForbiddenError(role, "attach content")
		}
		return domain.AttachContent(c, in.Content, in.Settings, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeContentAttached, p, c, "", "")
	return c, nil
}

// GenerateContent produces content through the configured generator and
// attaches it in the same write. The generator runs at most once even if
// the write is retried.
func (u *CampaignUseCase) GenerateContent(ctx context.Context, p domain.Principal, id string, in port.GenerateContentInput, expectedVersion int64) (c *domain.Campaign, err error) {
	ctx, span := u.start(ctx, "campaign.generate_content", p, id)
	defer func() { finish(span, err) }()

	if u.generator == nil {
		return nil, fmt.Errorf("generate content: no content generator configured")
	}
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, domain.NewError(domain.ErrValidation, "prompt", "is required")
	}
	var generated *domain.Content
	c, err = u.mutate(ctx, p, id, expectedVersion, func(c *domain.Campaign, role domain.Role) error {
		if !u.perms.CanAttachContent(role) {
			return domain.ForbiddenError(role, "attach content")
		}
		if c.Status.Terminal() {
			return domain.NewError(domain.ErrForbidden, "status", "content cannot be attached to a "+string(c.Status)+" campaign")
		}
		settings := mergeSettings(c.AIContent.Settings, in.Settings)
		if generated == nil {
			out, gerr := u.generator.Generate(ctx, prompt, settings)
			if gerr != nil {
				return fmt.Errorf("generate content: %w", gerr)
			}
			generated = &out
		}
		return domain.AttachContent(c, *generated, settings, u.now())
	})
	if err != nil {
		return nil, err
	}
	u.publish(ctx, domain.ChangeContentAttached, p, c, "", "")
	return c, nil
}

func mergeSettings(base, override domain.ContentSettings) domain.ContentSettings {
	if override.Tone != "" {
		base.Tone = override.Tone
	}
	if override.Language != "" {
		base.Language = override.Language
	}
	if override.BrandVoice != "" {
		base.BrandVoice = override.BrandVoice
	}
	return base
}
