package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/group"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type GroupServiceImpl struct {
	db *database.DB
	group.GroupRepository
	group.MembershipRepository
	user.UserRepository
}

func NewGroupService(
	db *database.DB,
	groupRepo group.GroupRepository,
	membershipRepo group.MembershipRepository,
	userRepo user.UserRepository,
) group.GroupService {
	return &GroupServiceImpl{
		db:                   db,
		GroupRepository:      groupRepo,
		MembershipRepository: membershipRepo,
		UserRepository:       userRepo,
	}
}

func caller(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// requireGroupAdmin allows organisation admins through unconditionally and
// group admins for their own group.
func (s *GroupServiceImpl) requireGroupAdmin(ctx context.Context, groupID string) error {
	userID, role, err := caller(ctx)
	if err != nil {
		return err
	}
	if role == user.RoleAdmin {
		return nil
	}

	membership, err := s.MembershipRepository.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, group.ErrMembershipNotFound) {
			return group.ErrNotGroupAdmin
		}
		return err
	}
	if membership.Role != group.MemberRoleAdmin {
		return group.ErrNotGroupAdmin
	}

	return nil
}

// CreateGroup implements group.GroupService.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, req group.CreateGroupRequest) (group.GroupResponse, error) {
	if err := req.Validate(); err != nil {
		return group.GroupResponse{}, err
	}

	created, err := s.GroupRepository.Create(ctx, group.Group{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return group.GroupResponse{}, err
	}

	return group.ToResponse(created), nil
}

// ListGroups implements group.GroupService.
func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]group.GroupResponse, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]group.GroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, group.ToResponse(g))
	}

	return responses, nil
}

// GetGroup implements group.GroupService.
func (s *GroupServiceImpl) GetGroup(ctx context.Context, id string) (group.GroupResponse, error) {
	found, err := s.GroupRepository.GetByID(ctx, id)
	if err != nil {
		return group.GroupResponse{}, err
	}

	return group.ToResponse(found), nil
}

// DeleteGroup implements group.GroupService. Memberships cascade; hour log
// entries keep their group reference blocked by the FK, so groups with
// logged hours cannot be deleted.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, id string) error {
	return s.GroupRepository.Delete(ctx, id)
}

// AddMember implements group.GroupService.
func (s *GroupServiceImpl) AddMember(ctx context.Context, req group.AddMemberRequest) (group.MembershipResponse, error) {
	if err := req.Validate(); err != nil {
		return group.MembershipResponse{}, err
	}

	if err := s.requireGroupAdmin(ctx, req.GroupID); err != nil {
		return group.MembershipResponse{}, err
	}

	if _, err := s.GroupRepository.GetByID(ctx, req.GroupID); err != nil {
		return group.MembershipResponse{}, err
	}

	member, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return group.MembershipResponse{}, err
	}
	if !member.IsVolunteer() && !member.IsAdmin() {
		return group.MembershipResponse{}, user.ErrInvalidRole
	}

	created, err := s.MembershipRepository.Create(ctx, group.Membership{
		GroupID: req.GroupID,
		UserID:  req.UserID,
		Role:    group.MemberRole(req.Role),
	})
	if err != nil {
		return group.MembershipResponse{}, err
	}

	return group.ToMembershipResponse(created), nil
}

// RemoveMember implements group.GroupService.
func (s *GroupServiceImpl) RemoveMember(ctx context.Context, groupID, userID string) error {
	if err := s.requireGroupAdmin(ctx, groupID); err != nil {
		return err
	}

	return s.MembershipRepository.Delete(ctx, groupID, userID)
}

// ListMembers implements group.GroupService.
func (s *GroupServiceImpl) ListMembers(ctx context.Context, groupID string) ([]group.MembershipResponse, error) {
	if _, err := s.GroupRepository.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	memberships, err := s.MembershipRepository.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	responses := make([]group.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		responses = append(responses, group.ToMembershipResponse(m))
	}

	return responses, nil
}

// IsMember implements group.GroupService.
func (s *GroupServiceImpl) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	_, err := s.MembershipRepository.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, group.ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
