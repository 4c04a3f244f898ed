// Package policy holds the role tables that decide what organization and
// campaign team roles may do.
package policy

import (
	"slices"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// edge is a lifecycle transition.
type edge struct{ from, to domain.Status }

// Roles is the default permission resolver.
//
// Owners and managers may take every lifecycle edge. Editors may submit a
// draft for review and send it back to draft. Only owners and managers
// may approve, activate, pause, complete or cancel.
type Roles struct {
	editorEdges []edge
}

// NewRoles returns the default role table.
func NewRoles() *Roles {
	return &Roles{
		editorEdges: []edge{
			{domain.StatusDraft, domain.StatusReview},
			{domain.StatusReview, domain.StatusDraft},
		},
	}
}

var _ port.PermissionResolver = (*Roles)(nil)

func (r *Roles) CanAuthor(role domain.OrgRole) bool {
	return role == domain.OrgRoleMarketer || role == domain.OrgRoleAdmin
}

func (r *Roles) CanViewAll(role domain.OrgRole) bool {
	return role == domain.OrgRoleAdmin
}

func (r *Roles) CanTransition(role domain.Role, from, to domain.Status) bool {
	switch role {
	case domain.RoleOwner, domain.RoleManager:
		return true
	case domain.RoleEditor:
		return slices.Contains(r.editorEdges, edge{from, to})
	default:
		return false
	}
}

func (r *Roles) CanAttachContent(role domain.Role) bool {
	return atLeastEditor(role)
}

func (r *Roles) CanEdit(role domain.Role) bool {
	return atLeastEditor(role)
}

func (r *Roles) CanRecordEvents(role domain.Role) bool {
	return atLeastEditor(role)
}

// CanComment lets every team member, viewers included, take part in the
// discussion.
func (r *Roles) CanComment(role domain.Role) bool {
	return role.Valid()
}

func (r *Roles) CanManageTeam(role domain.Role) bool {
	return role == domain.RoleOwner || role == domain.RoleManager
}

func (r *Roles) CanDelete(role domain.Role) bool {
	return role == domain.RoleOwner || role == domain.RoleManager
}

func atLeastEditor(role domain.Role) bool {
	switch role {
	case domain.RoleOwner, domain.RoleManager, domain.RoleEditor:
		return true
	}
	return false
}
