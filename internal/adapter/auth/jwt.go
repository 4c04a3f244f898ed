// Package auth adapts bearer tokens into principals for the campaign core.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// Claims is the access-token payload. The subject is the principal id.
type Claims struct {
	OrganizationID string `json:"org"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256-signed access tokens.
type JWTProvider struct {
	secret []byte
	issuer string
}

// NewJWTProvider returns a provider for tokens signed with secret. When
// issuer is non-empty the iss claim must match it.
func NewJWTProvider(secret, issuer string) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTProvider{secret: []byte(secret), issuer: issuer}, nil
}

var _ port.IdentityProvider = (*JWTProvider)(nil)

// Verify parses and validates the token and returns its principal.
func (p *JWTProvider) Verify(_ context.Context, token string) (domain.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", port.ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.OrganizationID == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing subject or organization", port.ErrInvalidToken)
	}
	role := domain.OrgRole(claims.Role)
	switch role {
	case domain.OrgRoleUser, domain.OrgRoleMarketer, domain.OrgRoleAdmin:
	case "":
		role = domain.OrgRoleUser
	default:
		return domain.Principal{}, fmt.Errorf("%w: unknown role %q", port.ErrInvalidToken, claims.Role)
	}
	return domain.Principal{
		ID:             claims.Subject,
		OrganizationID: claims.OrganizationID,
		Role:           role,
	}, nil
}

// Issue signs a token for p valid for ttl. Token issuance belongs to the
// identity service; this exists for tooling and tests.
func (p *JWTProvider) Issue(pr domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		OrganizationID: pr.OrganizationID,
		Role:           string(pr.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   pr.ID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
