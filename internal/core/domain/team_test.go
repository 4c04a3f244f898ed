package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamMembers(t *testing.T) {
	c := newTestCampaign(t)

	require.NoError(t, c.Team.SetMember(Member{UserID: "u-2", Role: RoleEditor}))
	require.NoError(t, c.Team.SetMember(Member{UserID: "u-2", Role: RoleManager, Permissions: []string{"publish"}}))
	m, ok := c.Team.Member("u-2")
	require.True(t, ok)
	assert.Equal(t, RoleManager, m.Role)
	assert.Len(t, c.Team.Members, 2)

	assert.ErrorIs(t, c.Team.SetMember(Member{UserID: "u-owner", Role: RoleViewer}), ErrValidation)
	assert.ErrorIs(t, c.Team.RemoveMember("u-owner"), ErrValidation)
	assert.ErrorIs(t, c.Team.SetMember(Member{UserID: "u-3", Role: "guest"}), ErrValidation)
	assert.ErrorIs(t, c.Team.RemoveMember("u-missing"), ErrValidation)

	require.NoError(t, c.Team.SetMember(Member{UserID: "u-2", Role: RoleOwner}))
	require.NoError(t, c.Team.RemoveMember("u-owner"))
	_, ok = c.Team.Member("u-owner")
	assert.False(t, ok)
}

func TestTeamComments(t *testing.T) {
	c := newTestCampaign(t)

	require.NoError(t, c.Team.AddComment(Comment{ID: "k-1", UserID: "u-owner", Content: "Looks good", Timestamp: testNow}))
	assert.ErrorIs(t, c.Team.AddComment(Comment{ID: "k-2", UserID: "u-owner", Content: strings.Repeat("x", 1001)}), ErrValidation)
	assert.ErrorIs(t, c.Team.AddComment(Comment{ID: "k-3", UserID: "u-owner"}), ErrValidation)

	require.NoError(t, c.Team.ResolveComment("k-1"))
	assert.True(t, c.Team.Comments[0].Resolved)
	assert.ErrorIs(t, c.Team.ResolveComment("k-9"), ErrValidation)
}
