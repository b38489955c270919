package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetPeriodDashboard returns the combined dashboard of a Jalali month
	GetPeriodDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetPeriodDashboard handles GET /dashboard?year=&month=
func (h *dashboardHandlerImpl) GetPeriodDashboard(w http.ResponseWriter, r *http.Request) {
	year := getIntQueryParam(r, "year", 0)
	month := getIntQueryParam(r, "month", 0)

	result, err := h.dashboardService.GetPeriodDashboard(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
