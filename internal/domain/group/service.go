package group

import "context"

// GroupService defines business logic for groups and memberships
type GroupService interface {
	CreateGroup(ctx context.Context, req CreateGroupRequest) (GroupResponse, error)
	ListGroups(ctx context.Context) ([]GroupResponse, error)
	GetGroup(ctx context.Context, id string) (GroupResponse, error)
	DeleteGroup(ctx context.Context, id string) error

	// AddMember adds a user to a group. Allowed for admins and for the
	// group's own admins.
	AddMember(ctx context.Context, req AddMemberRequest) (MembershipResponse, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembers(ctx context.Context, groupID string) ([]MembershipResponse, error)
	// IsMember reports whether the user belongs to the group
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}
