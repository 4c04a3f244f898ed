package port

import "campaign-manager/internal/core/domain"

// PermissionResolver decides what a role may do. Role policy lives behind
// this port so it can change without touching the campaign rules.
type PermissionResolver interface {
	// CanAuthor reports whether an organization role may create, update and
	// delete campaigns at all. Team roles still apply on top of it.
	CanAuthor(role domain.OrgRole) bool
	// CanViewAll reports whether an organization role sees every campaign
	// of its organization rather than only its own.
	CanViewAll(role domain.OrgRole) bool
	// CanTransition reports whether a team role may move a campaign from
	// one status to another.
	CanTransition(role domain.Role, from, to domain.Status) bool
	// CanAttachContent reports whether a team role may set AI content.
	CanAttachContent(role domain.Role) bool
	// CanEdit covers descriptive edits, spend and budget changes.
	CanEdit(role domain.Role) bool
	// CanRecordEvents covers feeding the performance aggregator.
	CanRecordEvents(role domain.Role) bool
	// CanComment covers adding and resolving comments.
	CanComment(role domain.Role) bool
	// CanManageTeam covers adding, changing and removing members.
	CanManageTeam(role domain.Role) bool
	// CanDelete covers removing the campaign.
	CanDelete(role domain.Role) bool
}
