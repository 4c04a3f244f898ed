package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// ContentGenerator produces creative content for a prompt. The core only
// checks the shape of what it returns.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, settings domain.ContentSettings) (domain.Content, error)
}
