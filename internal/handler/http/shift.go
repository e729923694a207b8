package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	SignUp(w http.ResponseWriter, r *http.Request)
	CancelSignup(w http.ResponseWriter, r *http.Request)
	MyShifts(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
}

type ShiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &ShiftHandlerImpl{shiftService: shiftService}
}

// Create implements ShiftHandler.
func (h *ShiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq shift.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	shiftResponse, err := h.shiftService.CreateShift(r.Context(), createReq)
	if err != nil {
		slog.Error("Create shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", shiftResponse)
}

// Update implements ShiftHandler.
func (h *ShiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq shift.UpdateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ShiftID = chi.URLParam(r, "shiftID")

	shiftResponse, err := h.shiftService.UpdateShift(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", shiftResponse)
}

// Cancel implements ShiftHandler.
func (h *ShiftHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	shiftResponse, err := h.shiftService.CancelShift(r.Context(), shiftID)
	if err != nil {
		slog.Error("Cancel shift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift cancelled successfully", shiftResponse)
}

// Get implements ShiftHandler.
func (h *ShiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	shiftResponse, err := h.shiftService.GetShift(r.Context(), shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shiftResponse)
}

// List implements ShiftHandler.
func (h *ShiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter shift.ListShiftsFilter

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := shift.Status(statusParam)
		filter.Status = &status
	}
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		if from, err := time.Parse(time.RFC3339, fromParam); err == nil {
			filter.From = &from
		}
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		if to, err := time.Parse(time.RFC3339, toParam); err == nil {
			filter.To = &to
		}
	}

	shifts, err := h.shiftService.ListShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// SignUp implements ShiftHandler.
func (h *ShiftHandlerImpl) SignUp(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	signupResponse, err := h.shiftService.SignUp(r.Context(), shiftID)
	if err != nil {
		slog.Error("Signup service error", "error", err, "shift_id", shiftID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Volunteer signed up for shift", "shift_id", shiftID)
	response.Created(w, "Signed up successfully", signupResponse)
}

// CancelSignup implements ShiftHandler.
func (h *ShiftHandlerImpl) CancelSignup(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	if err := h.shiftService.CancelSignup(r.Context(), shiftID); err != nil {
		slog.Error("Cancel signup service error", "error", err, "shift_id", shiftID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signup cancelled successfully", nil)
}

// MyShifts implements ShiftHandler.
func (h *ShiftHandlerImpl) MyShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.MyShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// Roster implements ShiftHandler.
func (h *ShiftHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	roster, err := h.shiftService.Roster(r.Context(), shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roster)
}
