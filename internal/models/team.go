package models

import "time"

// Role is a member's role within a team. The empty string means the user
// holds no membership in the team at all.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleMember   Role = "MEMBER"
	RoleReadOnly Role = "READONLY"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember, RoleReadOnly:
		return true
	}
	return false
}

// Team represents a team entity. OwnerID is set at creation and is the
// single authoritative owner reference.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membership links a user to a team with a role. At most one membership
// exists per (user, team) pair.
type Membership struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	InvitedBy int64     `json:"invited_by,omitempty"`
}

// TeamMember is a membership joined with the member's user record, as
// returned by the member listing.
type TeamMember struct {
	MembershipID int64  `json:"membership_id"`
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         Role   `json:"role"`
}
