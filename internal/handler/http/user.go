package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	SetActive(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Me implements UserHandler.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userResponse, err := h.userService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, userResponse)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var role *user.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed := user.Role(raw)
		role = &parsed
	}

	users, err := h.userService.ListUsers(r.Context(), role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	userResponse, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, userResponse)
}

// UpdateRole implements UserHandler.
func (h *UserHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var roleReq user.UpdateRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&roleReq); err != nil {
		slog.Error("Update role decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	roleReq.UserID = chi.URLParam(r, "userID")

	userResponse, err := h.userService.UpdateRole(r.Context(), roleReq)
	if err != nil {
		slog.Error("Update role service error", "error", err, "user_id", roleReq.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User role updated", "user_id", roleReq.UserID, "role", roleReq.Role)
	response.SuccessWithMessage(w, "Role updated successfully", userResponse)
}

// SetActive implements UserHandler.
func (h *UserHandlerImpl) SetActive(w http.ResponseWriter, r *http.Request) {
	var activeReq user.SetActiveRequest

	if err := json.NewDecoder(r.Body).Decode(&activeReq); err != nil {
		slog.Error("Set active decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	activeReq.UserID = chi.URLParam(r, "userID")

	userResponse, err := h.userService.SetActive(r.Context(), activeReq)
	if err != nil {
		slog.Error("Set active service error", "error", err, "user_id", activeReq.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User active flag updated", "user_id", activeReq.UserID, "active", activeReq.Active)
	response.SuccessWithMessage(w, "Account status updated successfully", userResponse)
}
