package user

import (
	"context"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	postgresql.JWTRepository
}

func NewUserService(db *database.DB, userRepo user.UserRepository, jwtRepo postgresql.JWTRepository) user.UserService {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepo,
		JWTRepository:  jwtRepo,
	}
}

func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, role *user.Role) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, role)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return responses, nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	userData, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.UpdateRole(ctx, req.UserID, user.Role(req.Role)); err != nil {
		return user.UserResponse{}, err
	}

	return s.GetUser(ctx, req.UserID)
}

// SetActive implements user.UserService. Deactivating an account ends all of
// its sessions.
func (s *UserServiceImpl) SetActive(ctx context.Context, req user.SetActiveRequest) (user.UserResponse, error) {
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.UserRepository.SetActive(txCtx, req.UserID, req.Active); err != nil {
			return err
		}
		if !req.Active {
			return s.JWTRepository.RevokeAllForUser(txCtx, req.UserID)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return s.GetUser(ctx, req.UserID)
}
