package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type HourLogHandler interface {
	LogHours(w http.ResponseWriter, r *http.Request)
	MyEntries(w http.ResponseWriter, r *http.Request)
	MyTotal(w http.ResponseWriter, r *http.Request)
	VolunteerTotal(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type HourLogHandlerImpl struct {
	hourLogService hourlog.HourLogService
}

func NewHourLogHandler(hourLogService hourlog.HourLogService) HourLogHandler {
	return &HourLogHandlerImpl{hourLogService: hourLogService}
}

// LogHours implements HourLogHandler.
func (h *HourLogHandlerImpl) LogHours(w http.ResponseWriter, r *http.Request) {
	var logReq hourlog.LogHoursRequest

	if err := json.NewDecoder(r.Body).Decode(&logReq); err != nil {
		slog.Error("LogHours decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entryResponse, err := h.hourLogService.LogManualHours(r.Context(), logReq)
	if err != nil {
		slog.Error("LogHours service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Hours logged", "entry_id", entryResponse.ID)
	response.Created(w, "Hours logged successfully", entryResponse)
}

// MyEntries implements HourLogHandler.
func (h *HourLogHandlerImpl) MyEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.hourLogService.MyEntries(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// MyTotal implements HourLogHandler.
func (h *HourLogHandlerImpl) MyTotal(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	volunteerID, _ := claims["user_id"].(string)

	total, err := h.hourLogService.AggregateHours(r.Context(), volunteerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, total)
}

// VolunteerTotal implements HourLogHandler.
func (h *HourLogHandlerImpl) VolunteerTotal(w http.ResponseWriter, r *http.Request) {
	volunteerID := chi.URLParam(r, "volunteerID")

	total, err := h.hourLogService.AggregateHours(r.Context(), volunteerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, total)
}

// Pending implements HourLogHandler.
func (h *HourLogHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	entries, err := h.hourLogService.PendingEntries(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Approve implements HourLogHandler.
func (h *HourLogHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	entryResponse, err := h.hourLogService.Approve(r.Context(), entryID)
	if err != nil {
		slog.Error("Approve hour log service error", "error", err, "entry_id", entryID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Hour log entry approved", "entry_id", entryID)
	response.SuccessWithMessage(w, "Entry approved successfully", entryResponse)
}
