package domain

import "time"

// Role is a principal's role on a single campaign team.
type Role string

const (
	RoleNone    Role = ""
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleEditor  Role = "editor"
	RoleViewer  Role = "viewer"
)

// Valid reports whether r is an assignable team role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleEditor, RoleViewer:
		return true
	}
	return false
}

type Team struct {
	Members  []Member  `json:"members" bson:"members" validate:"dive"`
	Comments []Comment `json:"comments" bson:"comments" validate:"dive"`
}

type Member struct {
	UserID      string   `json:"userId" bson:"userId" validate:"required"`
	Role        Role     `json:"role" bson:"role" validate:"required,oneof=owner manager editor viewer"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

type Comment struct {
	ID        string    `json:"id" bson:"id" validate:"required"`
	UserID    string    `json:"userId" bson:"userId" validate:"required"`
	Content   string    `json:"content" bson:"content" validate:"required,max=1000"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Resolved  bool      `json:"resolved" bson:"resolved"`
}

// Member returns the team entry for userID.
func (t Team) Member(userID string) (Member, bool) {
	for _, m := range t.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

func (t Team) owners() int {
	n := 0
	for _, m := range t.Members {
		if m.Role == RoleOwner {
			n++
		}
	}
	return n
}

// SetMember adds or replaces a team member. A campaign always keeps at
// least one owner.
func (t *Team) SetMember(m Member) error {
	if err := Validate(m); err != nil {
		return err
	}
	for i, cur := range t.Members {
		if cur.UserID != m.UserID {
			continue
		}
		if cur.Role == RoleOwner && m.Role != RoleOwner && t.owners() == 1 {
			return validationError("role", "campaign must keep at least one owner")
		}
		t.Members[i] = m
		return nil
	}
	t.Members = append(t.Members, m)
	return nil
}

// RemoveMember drops userID from the team.
func (t *Team) RemoveMember(userID string) error {
	for i, cur := range t.Members {
		if cur.UserID != userID {
			continue
		}
		if cur.Role == RoleOwner && t.owners() == 1 {
			return validationError("userId", "campaign must keep at least one owner")
		}
		t.Members = append(t.Members[:i], t.Members[i+1:]...)
		return nil
	}
	return validationError("userId", "user "+userID+" is not a team member")
}

// AddComment appends a comment. Comments may be added in any status,
// including terminal ones.
func (t *Team) AddComment(c Comment) error {
	if err := Validate(c); err != nil {
		return err
	}
	t.Comments = append(t.Comments, c)
	return nil
}

// ResolveComment marks the comment with the given id resolved.
func (t *Team) ResolveComment(id string) error {
	for i := range t.Comments {
		if t.Comments[i].ID == id {
			t.Comments[i].Resolved = true
			return nil
		}
	}
	return validationError("commentId", "comment "+id+" not found")
}
