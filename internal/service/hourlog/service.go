package hourlog

import (
	"context"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/group"
	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type HourLogServiceImpl struct {
	db *database.DB
	hourlog.EntryRepository
	group.MembershipRepository
}

func NewHourLogService(
	db *database.DB,
	entryRepo hourlog.EntryRepository,
	membershipRepo group.MembershipRepository,
) hourlog.HourLogService {
	return &HourLogServiceImpl{
		db:                   db,
		EntryRepository:      entryRepo,
		MembershipRepository: membershipRepo,
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

// LogManualHours implements hourlog.HourLogService. Attributing the entry to
// a group requires membership in that group.
func (s *HourLogServiceImpl) LogManualHours(ctx context.Context, req hourlog.LogHoursRequest) (hourlog.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return hourlog.EntryResponse{}, err
	}

	volunteerID, err := callerID(ctx)
	if err != nil {
		return hourlog.EntryResponse{}, err
	}

	if req.GroupID != nil {
		if _, err := s.MembershipRepository.Get(ctx, *req.GroupID, volunteerID); err != nil {
			if err == group.ErrMembershipNotFound {
				return hourlog.EntryResponse{}, hourlog.ErrNotGroupMember
			}
			return hourlog.EntryResponse{}, err
		}
	}

	created, err := s.EntryRepository.Create(ctx, hourlog.Entry{
		VolunteerID: volunteerID,
		Date:        req.ParsedDate,
		Hours:       req.Hours,
		Minutes:     req.Minutes,
		Description: req.Description,
		Source:      hourlog.SourceManual,
		GroupID:     req.GroupID,
	})
	if err != nil {
		return hourlog.EntryResponse{}, err
	}

	return hourlog.ToResponse(created), nil
}

// AggregateHours implements hourlog.HourLogService. Unapproved entries count
// too; approval gates reporting, not accrual.
func (s *HourLogServiceImpl) AggregateHours(ctx context.Context, volunteerID string) (hourlog.TotalResponse, error) {
	entries, err := s.EntryRepository.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return hourlog.TotalResponse{}, err
	}

	var total hourlog.Total
	for _, e := range entries {
		total = total.Add(e.Hours, e.Minutes)
	}

	return hourlog.TotalResponse{
		VolunteerID: volunteerID,
		Hours:       total.Hours,
		Minutes:     total.Minutes,
		EntryCount:  len(entries),
	}, nil
}

// Approve implements hourlog.HourLogService.
func (s *HourLogServiceImpl) Approve(ctx context.Context, entryID string) (hourlog.EntryResponse, error) {
	approverID, err := callerID(ctx)
	if err != nil {
		return hourlog.EntryResponse{}, err
	}

	entry, err := s.EntryRepository.GetByID(ctx, entryID)
	if err != nil {
		return hourlog.EntryResponse{}, err
	}
	if entry.Approved {
		return hourlog.EntryResponse{}, hourlog.ErrAlreadyApproved
	}

	if err := s.EntryRepository.Approve(ctx, entryID, approverID); err != nil {
		return hourlog.EntryResponse{}, err
	}

	approved, err := s.EntryRepository.GetByID(ctx, entryID)
	if err != nil {
		return hourlog.EntryResponse{}, err
	}

	return hourlog.ToResponse(approved), nil
}

// MyEntries implements hourlog.HourLogService.
func (s *HourLogServiceImpl) MyEntries(ctx context.Context) ([]hourlog.EntryResponse, error) {
	volunteerID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.EntryRepository.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	responses := make([]hourlog.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, hourlog.ToResponse(e))
	}

	return responses, nil
}

// PendingEntries implements hourlog.HourLogService.
func (s *HourLogServiceImpl) PendingEntries(ctx context.Context) ([]hourlog.EntryResponse, error) {
	entries, err := s.EntryRepository.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]hourlog.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, hourlog.ToResponse(e))
	}

	return responses, nil
}
