package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/domain/dashboard"
	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/go-chi/jwtauth/v5"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	shift.ShiftRepository
	shift.SignupRepository
	attendance.SessionRepository
	hourlog.EntryRepository
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	shiftRepo shift.ShiftRepository,
	signupRepo shift.SignupRepository,
	sessionRepo attendance.SessionRepository,
	entryRepo hourlog.EntryRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepo,
		ShiftRepository:     shiftRepo,
		SignupRepository:    signupRepo,
		SessionRepository:   sessionRepo,
		EntryRepository:     entryRepo,
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

// AdminDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminDashboard(ctx context.Context) (dashboard.AdminDashboardResponse, error) {
	var resp dashboard.AdminDashboardResponse
	var err error

	if resp.ActiveVolunteers, err = s.DashboardRepository.ActiveVolunteerCount(ctx); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	if resp.PendingApplications, err = s.DashboardRepository.PendingApplicationCount(ctx); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	if resp.UpcomingShifts, err = s.DashboardRepository.UpcomingShiftCount(ctx); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	if resp.OpenSessions, err = s.DashboardRepository.OpenSessionCount(ctx); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	if resp.PendingHourEntries, err = s.DashboardRepository.PendingHourEntryCount(ctx); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}
	if resp.HoursApprovedMonth, err = s.DashboardRepository.HoursApprovedThisMonth(ctx); err != nil {
		return dashboard.AdminDashboardResponse{}, err
	}

	return resp, nil
}

// VolunteerDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) VolunteerDashboard(ctx context.Context) (dashboard.VolunteerDashboardResponse, error) {
	volunteerID, err := callerID(ctx)
	if err != nil {
		return dashboard.VolunteerDashboardResponse{}, err
	}

	resp := dashboard.VolunteerDashboardResponse{
		UpcomingShifts: []dashboard.UpcomingShift{},
	}

	signups, err := s.SignupRepository.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return dashboard.VolunteerDashboardResponse{}, err
	}

	now := time.Now()
	for _, su := range signups {
		sh, err := s.ShiftRepository.GetByID(ctx, su.ShiftID)
		if err != nil {
			if errors.Is(err, shift.ErrShiftNotFound) {
				continue
			}
			return dashboard.VolunteerDashboardResponse{}, err
		}
		if sh.IsTerminal() || sh.StartsAt.Before(now) {
			continue
		}
		resp.UpcomingShifts = append(resp.UpcomingShifts, dashboard.UpcomingShift{
			ShiftID:  sh.ID,
			Title:    sh.Title,
			Location: sh.Location,
			StartsAt: sh.StartsAt.Format(time.RFC3339),
			EndsAt:   sh.EndsAt.Format(time.RFC3339),
		})
	}

	open, err := s.SessionRepository.GetOpenByVolunteer(ctx, volunteerID)
	if err != nil {
		if !errors.Is(err, attendance.ErrSessionNotFound) {
			return dashboard.VolunteerDashboardResponse{}, err
		}
	} else {
		resp.OpenSessionID = &open.ID
	}

	entries, err := s.EntryRepository.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return dashboard.VolunteerDashboardResponse{}, err
	}

	var total hourlog.Total
	for _, e := range entries {
		total = total.Add(e.Hours, e.Minutes)
	}
	resp.TotalHours = total.Hours
	resp.TotalMinutes = total.Minutes

	return resp, nil
}
