package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	shift.SignupRepository
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	signupRepo shift.SignupRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:               db,
		ShiftRepository:  shiftRepo,
		SignupRepository: signupRepo,
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

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	creatorID, err := callerID(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		StartsAt:    req.ParsedStartsAt,
		EndsAt:      req.ParsedEndsAt,
		Capacity:    req.Capacity,
		Status:      shift.StatusOpen,
		CreatedBy:   creatorID,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToResponse(created), nil
}

// UpdateShift implements shift.ShiftService. Raising capacity on a full
// shift reopens it; details of terminal shifts cannot change.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.Shift
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.ShiftRepository.GetByIDForUpdate(txCtx, req.ShiftID)
		if err != nil {
			return err
		}
		if existing.IsTerminal() {
			return shift.ErrShiftNotCancelable
		}

		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Location != nil {
			existing.Location = *req.Location
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.Capacity != nil {
			count, err := s.SignupRepository.CountByShift(txCtx, existing.ID)
			if err != nil {
				return err
			}
			if int64(*req.Capacity) < count {
				return shift.ErrCapacityExceeded
			}
			existing.Capacity = *req.Capacity

			// Re-derive open/full from the new capacity.
			if count >= int64(existing.Capacity) {
				existing.Status = shift.StatusFull
			} else {
				existing.Status = shift.StatusOpen
			}
		}

		if err := s.ShiftRepository.Update(txCtx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.GetShift(ctx, updated.ID)
}

// CancelShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CancelShift(ctx context.Context, shiftID string) (shift.ShiftResponse, error) {
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.ShiftRepository.GetByIDForUpdate(txCtx, shiftID)
		if err != nil {
			return err
		}
		if existing.IsTerminal() {
			return shift.ErrShiftNotCancelable
		}

		return s.ShiftRepository.UpdateStatus(txCtx, shiftID, shift.StatusCancelled)
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.GetShift(ctx, shiftID)
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, shiftID string) (shift.ShiftResponse, error) {
	found, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.ToResponse(found), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ListShiftsFilter) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToResponse(sh))
	}

	return responses, nil
}

// SignUp implements shift.ShiftService. The shift row is locked for the
// duration of the transaction so the capacity check and insert cannot race.
func (s *ShiftServiceImpl) SignUp(ctx context.Context, shiftID string) (shift.SignupResponse, error) {
	volunteerID, err := callerID(ctx)
	if err != nil {
		return shift.SignupResponse{}, err
	}

	var created shift.Signup
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		locked, err := s.ShiftRepository.GetByIDForUpdate(txCtx, shiftID)
		if err != nil {
			return err
		}

		if !locked.AcceptsSignups(time.Now()) {
			if locked.Status == shift.StatusFull {
				return shift.ErrCapacityExceeded
			}
			if time.Now().After(locked.StartsAt) && !locked.IsTerminal() {
				return shift.ErrShiftAlreadyBegun
			}
			return shift.ErrShiftNotOpen
		}

		count, err := s.SignupRepository.CountByShift(txCtx, shiftID)
		if err != nil {
			return err
		}
		if count >= int64(locked.Capacity) {
			return shift.ErrCapacityExceeded
		}

		created, err = s.SignupRepository.Create(txCtx, shift.Signup{
			VolunteerID: volunteerID,
			ShiftID:     shiftID,
		})
		if err != nil {
			return err
		}

		// Taking the last slot flips the shift to full.
		if count+1 >= int64(locked.Capacity) {
			if err := s.ShiftRepository.UpdateStatus(txCtx, shiftID, shift.StatusFull); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return shift.SignupResponse{}, err
	}

	return shift.ToSignupResponse(created), nil
}

// CancelSignup implements shift.ShiftService. Releasing a slot on a full
// shift reopens it.
func (s *ShiftServiceImpl) CancelSignup(ctx context.Context, shiftID string) error {
	volunteerID, err := callerID(ctx)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		locked, err := s.ShiftRepository.GetByIDForUpdate(txCtx, shiftID)
		if err != nil {
			return err
		}
		if locked.IsTerminal() {
			return shift.ErrShiftNotOpen
		}
		if time.Now().After(locked.StartsAt) {
			return shift.ErrShiftAlreadyBegun
		}

		if err := s.SignupRepository.Delete(txCtx, volunteerID, shiftID); err != nil {
			return err
		}

		if locked.Status == shift.StatusFull {
			if err := s.ShiftRepository.UpdateStatus(txCtx, shiftID, shift.StatusOpen); err != nil {
				return err
			}
		}

		return nil
	})
}

// MyShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) MyShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	volunteerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	signups, err := s.SignupRepository.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.ShiftResponse, 0, len(signups))
	for _, su := range signups {
		sh, err := s.ShiftRepository.GetByID(ctx, su.ShiftID)
		if err != nil {
			if errors.Is(err, shift.ErrShiftNotFound) {
				continue
			}
			return nil, err
		}
		responses = append(responses, shift.ToResponse(sh))
	}

	return responses, nil
}

// Roster implements shift.ShiftService.
func (s *ShiftServiceImpl) Roster(ctx context.Context, shiftID string) ([]shift.SignupResponse, error) {
	if _, err := s.ShiftRepository.GetByID(ctx, shiftID); err != nil {
		return nil, err
	}

	signups, err := s.SignupRepository.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	responses := make([]shift.SignupResponse, 0, len(signups))
	for _, su := range signups {
		responses = append(responses, shift.ToSignupResponse(su))
	}

	return responses, nil
}
