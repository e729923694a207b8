package group

import "time"

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

type Group struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join / DTO
	MemberCount *int64
}

// Membership links a user to a group with a per-group role. Unique per
// (group, user) pair.
type Membership struct {
	ID        string
	GroupID   string
	UserID    string
	Role      MemberRole
	CreatedAt time.Time

	// Join / DTO
	MemberName  *string
	MemberEmail *string
}
