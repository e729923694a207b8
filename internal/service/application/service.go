package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/application"
	"github.com/communityroots/volunteer-backend-go/internal/domain/notification"
	"github.com/communityroots/volunteer-backend-go/internal/domain/profile"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

type ApplicationServiceImpl struct {
	db *database.DB
	application.ApplicationRepository
	user.UserRepository
	profile.ProfileRepository
	notification.OutboxRepository
}

func NewApplicationService(
	db *database.DB,
	applicationRepo application.ApplicationRepository,
	userRepo user.UserRepository,
	profileRepo profile.ProfileRepository,
	outboxRepo notification.OutboxRepository,
) application.ApplicationService {
	return &ApplicationServiceImpl{
		db:                    db,
		ApplicationRepository: applicationRepo,
		UserRepository:        userRepo,
		ProfileRepository:     profileRepo,
		OutboxRepository:      outboxRepo,
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

func applyForm(a *application.Application, req application.SubmitApplicationRequest) {
	a.Phone = req.Phone
	a.AddressLine1 = req.AddressLine1
	a.AddressLine2 = req.AddressLine2
	a.City = req.City
	a.Postcode = req.Postcode
	a.EmergencyContact = req.EmergencyContact
	a.EmergencyPhone = req.EmergencyPhone
	a.Motivation = req.Motivation
	a.Experience = req.Experience
	a.Availability = req.Availability
	a.HasConviction = req.HasConviction
}

// SaveDraft implements application.ApplicationService. Drafts skip form
// validation so partially filled forms can be saved.
func (s *ApplicationServiceImpl) SaveDraft(ctx context.Context, req application.SubmitApplicationRequest) (application.ApplicationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	existing, err := s.ApplicationRepository.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, application.ErrApplicationNotFound) {
			return application.ApplicationResponse{}, err
		}

		draft := application.Application{
			UserID: userID,
			Status: application.StatusIncomplete,
		}
		applyForm(&draft, req)

		created, err := s.ApplicationRepository.Create(ctx, draft)
		if err != nil {
			return application.ApplicationResponse{}, err
		}
		return application.ToResponse(created), nil
	}

	// A rejected application reopens as a draft on the next save.
	switch existing.Status {
	case application.StatusIncomplete, application.StatusRejected:
	default:
		return application.ApplicationResponse{}, application.ErrNotDraft
	}

	applyForm(&existing, req)
	existing.Status = application.StatusIncomplete
	existing.RejectionReason = nil

	if err := s.ApplicationRepository.Update(ctx, existing); err != nil {
		return application.ApplicationResponse{}, err
	}

	return application.ToResponse(existing), nil
}

// Submit implements application.ApplicationService.
func (s *ApplicationServiceImpl) Submit(ctx context.Context, req application.SubmitApplicationRequest) (application.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return application.ApplicationResponse{}, err
	}

	userID, err := callerID(ctx)
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	now := time.Now().UTC()

	existing, err := s.ApplicationRepository.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, application.ErrApplicationNotFound) {
			return application.ApplicationResponse{}, err
		}

		submission := application.Application{
			UserID:      userID,
			Status:      application.StatusPending,
			SubmittedAt: &now,
		}
		applyForm(&submission, req)

		created, err := s.ApplicationRepository.Create(ctx, submission)
		if err != nil {
			return application.ApplicationResponse{}, err
		}
		return application.ToResponse(created), nil
	}

	switch existing.Status {
	case application.StatusIncomplete, application.StatusRejected:
	case application.StatusPending:
		return application.ApplicationResponse{}, application.ErrApplicationExists
	default:
		return application.ApplicationResponse{}, application.ErrNotDraft
	}

	applyForm(&existing, req)
	existing.Status = application.StatusPending
	existing.SubmittedAt = &now
	existing.RejectionReason = nil

	if err := s.ApplicationRepository.Update(ctx, existing); err != nil {
		return application.ApplicationResponse{}, err
	}

	return application.ToResponse(existing), nil
}

// MyApplication implements application.ApplicationService.
func (s *ApplicationServiceImpl) MyApplication(ctx context.Context) (application.ApplicationResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	found, err := s.ApplicationRepository.GetByUserID(ctx, userID)
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	return application.ToResponse(found), nil
}

// ListPending implements application.ApplicationService.
func (s *ApplicationServiceImpl) ListPending(ctx context.Context) ([]application.ApplicationResponse, error) {
	pending, err := s.ApplicationRepository.ListByStatus(ctx, application.StatusPending)
	if err != nil {
		return nil, err
	}

	responses := make([]application.ApplicationResponse, 0, len(pending))
	for _, a := range pending {
		responses = append(responses, application.ToResponse(a))
	}

	return responses, nil
}

// GetApplication implements application.ApplicationService.
func (s *ApplicationServiceImpl) GetApplication(ctx context.Context, id string) (application.ApplicationResponse, error) {
	found, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	return application.ToResponse(found), nil
}

// Approve implements application.ApplicationService. State change, role
// promotion, profile creation and the outbox row commit or roll back
// together; the email itself goes out after commit via the dispatcher.
func (s *ApplicationServiceImpl) Approve(ctx context.Context, applicationID string) (application.ApplicationResponse, error) {
	approverID, err := callerID(ctx)
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	var approved application.Application
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		appData, err := s.ApplicationRepository.GetByID(txCtx, applicationID)
		if err != nil {
			return err
		}
		if appData.Status != application.StatusPending {
			return application.ErrNotPending
		}

		applicant, err := s.UserRepository.GetByID(txCtx, appData.UserID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		appData.Status = application.StatusApproved
		appData.ApprovedBy = &approverID
		appData.ApprovedAt = &now
		appData.RejectionReason = nil

		if err := s.ApplicationRepository.Update(txCtx, appData); err != nil {
			return err
		}

		// Admins keep their role when their own application is approved.
		if applicant.Role == user.RolePending {
			if err := s.UserRepository.UpdateRole(txCtx, applicant.ID, user.RoleVolunteer); err != nil {
				return err
			}
		}

		if _, err := s.ProfileRepository.Upsert(txCtx, profile.Profile{
			UserID:           applicant.ID,
			Phone:            appData.Phone,
			AddressLine1:     appData.AddressLine1,
			AddressLine2:     appData.AddressLine2,
			City:             appData.City,
			Postcode:         appData.Postcode,
			EmergencyContact: appData.EmergencyContact,
			EmergencyPhone:   appData.EmergencyPhone,
		}); err != nil {
			return err
		}

		if _, err := s.OutboxRepository.Enqueue(txCtx, notification.Notification{
			Recipient: applicant.Email,
			Template:  notification.TemplateApplicationApproved,
			Payload: map[string]string{
				"volunteer_name": applicant.FullName(),
			},
		}); err != nil {
			return err
		}

		approved = appData
		return nil
	})
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	return application.ToResponse(approved), nil
}

// Reject implements application.ApplicationService. The account survives so
// the volunteer can revise and re-apply.
func (s *ApplicationServiceImpl) Reject(ctx context.Context, req application.RejectApplicationRequest) (application.ApplicationResponse, error) {
	if _, err := callerID(ctx); err != nil {
		return application.ApplicationResponse{}, err
	}

	var rejected application.Application
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		appData, err := s.ApplicationRepository.GetByID(txCtx, req.ApplicationID)
		if err != nil {
			return err
		}
		if appData.Status != application.StatusPending {
			return application.ErrNotPending
		}

		applicant, err := s.UserRepository.GetByID(txCtx, appData.UserID)
		if err != nil {
			return err
		}

		appData.Status = application.StatusRejected
		appData.RejectionReason = req.Reason

		if err := s.ApplicationRepository.Update(txCtx, appData); err != nil {
			return err
		}

		payload := map[string]string{
			"volunteer_name": applicant.FullName(),
		}
		if req.Reason != nil {
			payload["reason"] = *req.Reason
		}

		if _, err := s.OutboxRepository.Enqueue(txCtx, notification.Notification{
			Recipient: applicant.Email,
			Template:  notification.TemplateApplicationRejected,
			Payload:   payload,
		}); err != nil {
			return err
		}

		rejected = appData
		return nil
	})
	if err != nil {
		return application.ApplicationResponse{}, err
	}

	return application.ToResponse(rejected), nil
}
