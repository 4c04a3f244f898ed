package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

func TestVerifyRoundTrip(t *testing.T) {
	p, err := NewJWTProvider("secret", "campaign-manager")
	require.NoError(t, err)

	want := domain.Principal{ID: "u-1", OrganizationID: "org-1", Role: domain.OrgRoleAdmin}
	token, err := p.Issue(want, time.Minute)
	require.NoError(t, err)

	got, err := p.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVerifyDefaultsRole(t *testing.T) {
	p, err := NewJWTProvider("secret", "")
	require.NoError(t, err)

	token, err := p.Issue(domain.Principal{ID: "u-1", OrganizationID: "org-1"}, time.Minute)
	require.NoError(t, err)

	got, err := p.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.OrgRoleUser, got.Role)
}

func TestVerifyRejects(t *testing.T) {
	p, err := NewJWTProvider("secret", "campaign-manager")
	require.NoError(t, err)
	other, err := NewJWTProvider("other", "campaign-manager")
	require.NoError(t, err)
	foreign, err := NewJWTProvider("secret", "someone-else")
	require.NoError(t, err)

	pr := domain.Principal{ID: "u-1", OrganizationID: "org-1", Role: domain.OrgRoleMarketer}
	sign := func(c Claims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Minute))

	expired, err := p.Issue(pr, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := other.Issue(pr, time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := foreign.Issue(pr, time.Minute)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"expired":      expired,
		"wrong key":    wrongKey,
		"wrong issuer": wrongIssuer,
		"no expiry": sign(Claims{OrganizationID: "org-1",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", Issuer: "campaign-manager"}},
			jwt.SigningMethodHS256, []byte("secret")),
		"no org": sign(Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", Issuer: "campaign-manager", ExpiresAt: exp}},
			jwt.SigningMethodHS256, []byte("secret")),
		"unknown role": sign(Claims{OrganizationID: "org-1", Role: "root",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", Issuer: "campaign-manager", ExpiresAt: exp}},
			jwt.SigningMethodHS256, []byte("secret")),
		"none alg": sign(Claims{OrganizationID: "org-1",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", Issuer: "campaign-manager", ExpiresAt: exp}},
			jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.Verify(context.Background(), token)
			assert.ErrorIs(t, err, port.ErrInvalidToken)
		})
	}
}

func TestNewJWTProviderRequiresSecret(t *testing.T) {
	_, err := NewJWTProvider("", "")
	assert.Error(t, err)
}
