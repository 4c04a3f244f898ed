package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// EventPublisher announces persisted campaign changes to other systems.
// Publishing happens after the write commits; a failure never rolls the
// write back.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.ChangeEvent) error
}
