package http

import (
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/dashboard"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Admin(w http.ResponseWriter, r *http.Request)
	Volunteer(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Admin implements DashboardHandler.
func (h *DashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	dashboardResponse, err := h.dashboardService.AdminDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboardResponse)
}

// Volunteer implements DashboardHandler.
func (h *DashboardHandlerImpl) Volunteer(w http.ResponseWriter, r *http.Request) {
	dashboardResponse, err := h.dashboardService.VolunteerDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboardResponse)
}
