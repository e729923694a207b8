package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/application"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ApplicationHandler interface {
	SaveDraft(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	My(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type ApplicationHandlerImpl struct {
	applicationService application.ApplicationService
}

func NewApplicationHandler(applicationService application.ApplicationService) ApplicationHandler {
	return &ApplicationHandlerImpl{applicationService: applicationService}
}

// SaveDraft implements ApplicationHandler.
func (h *ApplicationHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var draftReq application.SubmitApplicationRequest

	if err := json.NewDecoder(r.Body).Decode(&draftReq); err != nil {
		slog.Error("SaveDraft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	applicationResponse, err := h.applicationService.SaveDraft(r.Context(), draftReq)
	if err != nil {
		slog.Error("SaveDraft service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft saved successfully", applicationResponse)
}

// Submit implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq application.SubmitApplicationRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit application decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	applicationResponse, err := h.applicationService.Submit(r.Context(), submitReq)
	if err != nil {
		slog.Error("Submit application service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Application submitted", "application_id", applicationResponse.ID)
	response.Created(w, "Application submitted successfully", applicationResponse)
}

// My implements ApplicationHandler.
func (h *ApplicationHandlerImpl) My(w http.ResponseWriter, r *http.Request) {
	applicationResponse, err := h.applicationService.MyApplication(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, applicationResponse)
}

// ListPending implements ApplicationHandler.
func (h *ApplicationHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	applications, err := h.applicationService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, applications)
}

// Get implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")

	applicationResponse, err := h.applicationService.GetApplication(r.Context(), applicationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, applicationResponse)
}

// Approve implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")

	applicationResponse, err := h.applicationService.Approve(r.Context(), applicationID)
	if err != nil {
		slog.Error("Approve application service error", "error", err, "application_id", applicationID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Application approved", "application_id", applicationID)
	response.SuccessWithMessage(w, "Application approved successfully", applicationResponse)
}

// Reject implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var rejectReq application.RejectApplicationRequest

	if err := json.NewDecoder(r.Body).Decode(&rejectReq); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Reject application decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	rejectReq.ApplicationID = chi.URLParam(r, "applicationID")

	applicationResponse, err := h.applicationService.Reject(r.Context(), rejectReq)
	if err != nil {
		slog.Error("Reject application service error", "error", err, "application_id", rejectReq.ApplicationID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Application rejected", "application_id", rejectReq.ApplicationID)
	response.SuccessWithMessage(w, "Application rejected", applicationResponse)
}
