package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.SessionRepository
	shift.ShiftRepository
	shift.SignupRepository
	hourlog.EntryRepository
}

func NewAttendanceService(
	db *database.DB,
	sessionRepo attendance.SessionRepository,
	shiftRepo shift.ShiftRepository,
	signupRepo shift.SignupRepository,
	entryRepo hourlog.EntryRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                db,
		SessionRepository: sessionRepo,
		ShiftRepository:   shiftRepo,
		SignupRepository:  signupRepo,
		EntryRepository:   entryRepo,
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

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	volunteerID, _, err := caller(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	shiftData, err := a.ShiftRepository.GetByID(ctx, req.ShiftID)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	if shiftData.IsTerminal() {
		return attendance.SessionResponse{}, attendance.ErrShiftNotActive
	}

	if _, err := a.SignupRepository.GetByVolunteerAndShift(ctx, volunteerID, req.ShiftID); err != nil {
		if errors.Is(err, shift.ErrSignupNotFound) {
			return attendance.SessionResponse{}, attendance.ErrNotSignedUp
		}
		return attendance.SessionResponse{}, err
	}

	// The partial unique index backs this up against concurrent check-ins.
	created, err := a.SessionRepository.Create(ctx, attendance.Session{
		VolunteerID: volunteerID,
		ShiftID:     req.ShiftID,
		CheckInAt:   time.Now().UTC(),
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Closing the session and
// recording the unapproved hour log entry happen in one transaction, so a
// closed session always has its matching entry.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	callerUserID, callerRole, err := caller(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	var closed attendance.Session
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		session, err := a.SessionRepository.GetByID(txCtx, req.SessionID)
		if err != nil {
			return err
		}

		if session.VolunteerID != callerUserID && callerRole != user.RoleAdmin {
			return attendance.ErrNotSessionOwner
		}
		if !session.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}

		now := time.Now().UTC()
		duration := attendance.Duration(session.CheckInAt, now)

		session.CheckOutAt = &now
		session.DurationMinutes = &duration
		session.Notes = req.Notes

		closed, err = a.SessionRepository.Close(txCtx, session)
		if err != nil {
			return err
		}

		hours, minutes := hourlog.FromMinutes(duration)
		description := "Shift attendance"
		if shiftData, err := a.ShiftRepository.GetByID(txCtx, session.ShiftID); err == nil {
			description = "Shift attendance: " + shiftData.Title
		}

		if _, err := a.EntryRepository.Create(txCtx, hourlog.Entry{
			VolunteerID: session.VolunteerID,
			Date:        session.CheckInAt,
			Hours:       hours,
			Minutes:     minutes,
			Description: description,
			Source:      hourlog.SourceAttendance,
		}); err != nil {
			return err
		}

		return a.completeIfFinished(txCtx, session.ShiftID, now)
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.ToResponse(closed), nil
}

// completeIfFinished moves an ended shift to completed once the last open
// session has been closed.
func (a *AttendanceServiceImpl) completeIfFinished(ctx context.Context, shiftID string, now time.Time) error {
	shiftData, err := a.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if shiftData.IsTerminal() || now.Before(shiftData.EndsAt) {
		return nil
	}

	openCount, err := a.SessionRepository.CountOpenByShift(ctx, shiftID)
	if err != nil {
		return err
	}
	if openCount > 0 {
		return nil
	}

	return a.ShiftRepository.UpdateStatus(ctx, shiftID, shift.StatusCompleted)
}

// MySessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MySessions(ctx context.Context) ([]attendance.SessionResponse, error) {
	volunteerID, _, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := a.SessionRepository.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.ToResponse(s))
	}

	return responses, nil
}

// ShiftSessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ShiftSessions(ctx context.Context, shiftID string) ([]attendance.SessionResponse, error) {
	if _, err := a.ShiftRepository.GetByID(ctx, shiftID); err != nil {
		return nil, err
	}

	sessions, err := a.SessionRepository.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.ToResponse(s))
	}

	return responses, nil
}
