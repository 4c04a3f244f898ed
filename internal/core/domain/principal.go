package domain

// OrgRole is a principal's role inside its organization, as asserted by
// the identity provider.
type OrgRole string

const (
	OrgRoleUser     OrgRole = "user"
	OrgRoleMarketer OrgRole = "marketer"
	OrgRoleAdmin    OrgRole = "admin"
)

// Principal is an authenticated caller. The core trusts it as given.
type Principal struct {
	ID             string  `json:"principalId"`
	OrganizationID string  `json:"organizationId"`
	Role           OrgRole `json:"role"`
}

// RoleOn returns the principal's team role on c. Organization admins who
// are not on the team act as managers.
func (p Principal) RoleOn(c *Campaign) Role {
	if c.OrganizationID != p.OrganizationID {
		return RoleNone
	}
	if m, ok := c.Team.Member(p.ID); ok {
		return m.Role
	}
	if p.Role == OrgRoleAdmin {
		return RoleManager
	}
	return RoleNone
}
