package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campaign-manager/internal/core/domain"
)

func TestOrgRoles(t *testing.T) {
	r := NewRoles()
	assert.False(t, r.CanAuthor(domain.OrgRoleUser))
	assert.True(t, r.CanAuthor(domain.OrgRoleMarketer))
	assert.True(t, r.CanAuthor(domain.OrgRoleAdmin))

	assert.False(t, r.CanViewAll(domain.OrgRoleMarketer))
	assert.True(t, r.CanViewAll(domain.OrgRoleAdmin))
}

func TestCanTransition(t *testing.T) {
	r := NewRoles()
	for _, from := range domain.Statuses {
		for _, to := range from.Next() {
			assert.True(t, r.CanTransition(domain.RoleOwner, from, to), "owner %s -> %s", from, to)
			assert.True(t, r.CanTransition(domain.RoleManager, from, to), "manager %s -> %s", from, to)
			assert.False(t, r.CanTransition(domain.RoleViewer, from, to), "viewer %s -> %s", from, to)
			assert.False(t, r.CanTransition(domain.RoleNone, from, to), "none %s -> %s", from, to)

			editor := (from == domain.StatusDraft && to == domain.StatusReview) ||
				(from == domain.StatusReview && to == domain.StatusDraft)
			assert.Equal(t, editor, r.CanTransition(domain.RoleEditor, from, to), "editor %s -> %s", from, to)
		}
	}
}

func TestTeamRoles(t *testing.T) {
	r := NewRoles()
	tests := []struct {
		role                       domain.Role
		edit, comment, team, erase bool
	}{
		{domain.RoleOwner, true, true, true, true},
		{domain.RoleManager, true, true, true, true},
		{domain.RoleEditor, true, true, false, false},
		{domain.RoleViewer, false, true, false, false},
		{domain.RoleNone, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.edit, r.CanEdit(tt.role))
			assert.Equal(t, tt.edit, r.CanAttachContent(tt.role))
			assert.Equal(t, tt.edit, r.CanRecordEvents(tt.role))
			assert.Equal(t, tt.comment, r.CanComment(tt.role))
			assert.Equal(t, tt.team, r.CanManageTeam(tt.role))
			assert.Equal(t, tt.erase, r.CanDelete(tt.role))
		})
	}
}
