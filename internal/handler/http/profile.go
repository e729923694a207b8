package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/profile"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler interface {
	My(w http.ResponseWriter, r *http.Request)
	UpdateMy(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}

// My implements ProfileHandler.
func (h *ProfileHandlerImpl) My(w http.ResponseWriter, r *http.Request) {
	profileResponse, err := h.profileService.MyProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profileResponse)
}

// UpdateMy implements ProfileHandler.
func (h *ProfileHandlerImpl) UpdateMy(w http.ResponseWriter, r *http.Request) {
	var updateReq profile.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profileResponse, err := h.profileService.UpdateMyProfile(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profileResponse)
}

// Get implements ProfileHandler.
func (h *ProfileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profileResponse, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profileResponse)
}
