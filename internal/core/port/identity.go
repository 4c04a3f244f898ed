package port

import (
	"context"
	"errors"

	"campaign-manager/internal/core/domain"
)

// ErrInvalidToken is returned by an IdentityProvider for any token it
// cannot accept.
var ErrInvalidToken = errors.New("invalid token")

// IdentityProvider validates opaque principal tokens.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (domain.Principal, error)
}
