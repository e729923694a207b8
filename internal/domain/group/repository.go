package group

import "context"

// GroupRepository - interface for groups table
type GroupRepository interface {
	Create(ctx context.Context, g Group) (Group, error)
	GetByID(ctx context.Context, id string) (Group, error)
	List(ctx context.Context) ([]Group, error)
	Update(ctx context.Context, g Group) error
	Delete(ctx context.Context, id string) error
}

// MembershipRepository - interface for group_memberships table
type MembershipRepository interface {
	Create(ctx context.Context, m Membership) (Membership, error)
	Get(ctx context.Context, groupID, userID string) (Membership, error)
	ListByGroup(ctx context.Context, groupID string) ([]Membership, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
	Delete(ctx context.Context, groupID, userID string) error
}
