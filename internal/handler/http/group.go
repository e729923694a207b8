package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/group"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type GroupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
}

type GroupHandlerImpl struct {
	groupService group.GroupService
}

func NewGroupHandler(groupService group.GroupService) GroupHandler {
	return &GroupHandlerImpl{groupService: groupService}
}

// Create implements GroupHandler.
func (h *GroupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq group.CreateGroupRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create group decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	groupResponse, err := h.groupService.CreateGroup(r.Context(), createReq)
	if err != nil {
		slog.Error("Create group service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Group created successfully", groupResponse)
}

// List implements GroupHandler.
func (h *GroupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groups)
}

// Get implements GroupHandler.
func (h *GroupHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	groupResponse, err := h.groupService.GetGroup(r.Context(), groupID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, groupResponse)
}

// Delete implements GroupHandler.
func (h *GroupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	if err := h.groupService.DeleteGroup(r.Context(), groupID); err != nil {
		slog.Error("Delete group service error", "error", err, "group_id", groupID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group deleted successfully", nil)
}

// AddMember implements GroupHandler.
func (h *GroupHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	var addReq group.AddMemberRequest

	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		slog.Error("Add group member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	addReq.GroupID = chi.URLParam(r, "groupID")

	membershipResponse, err := h.groupService.AddMember(r.Context(), addReq)
	if err != nil {
		slog.Error("Add group member service error", "error", err, "group_id", addReq.GroupID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member added successfully", membershipResponse)
}

// RemoveMember implements GroupHandler.
func (h *GroupHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	userID := chi.URLParam(r, "userID")

	if err := h.groupService.RemoveMember(r.Context(), groupID, userID); err != nil {
		slog.Error("Remove group member service error", "error", err, "group_id", groupID, "user_id", userID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", nil)
}

// ListMembers implements GroupHandler.
func (h *GroupHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	members, err := h.groupService.ListMembers(r.Context(), groupID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}
