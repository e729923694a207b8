package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MySessions(w http.ResponseWriter, r *http.Request)
	ShiftSessions(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq attendance.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sessionResponse, err := h.attendanceService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Volunteer checked in", "session_id", sessionResponse.ID, "shift_id", sessionResponse.ShiftID)
	response.Created(w, "Checked in successfully", sessionResponse)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkOutReq attendance.CheckOutRequest

	// An empty body is fine; notes are optional.
	if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	checkOutReq.SessionID = chi.URLParam(r, "sessionID")

	sessionResponse, err := h.attendanceService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Volunteer checked out", "session_id", sessionResponse.ID, "duration_minutes", sessionResponse.DurationMinutes)
	response.SuccessWithMessage(w, "Checked out successfully", sessionResponse)
}

// MySessions implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MySessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.attendanceService.MySessions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessions)
}

// ShiftSessions implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ShiftSessions(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")

	sessions, err := h.attendanceService.ShiftSessions(r.Context(), shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessions)
}
