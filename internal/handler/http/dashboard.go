package http

import (
	"net/http"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/dashboard"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/search"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns counts, today's distribution, trend and recent entries
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// Search looks up employees and sessions from the header search box
	Search(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	searchService    search.SearchService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, searchService search.SearchService) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		searchService:    searchService,
	}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req := dashboard.DashboardRequest{Date: r.URL.Query().Get("date")} // YYYY-MM-DD, default: today

	result, err := h.dashboardService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Search handles GET /search
func (h *dashboardHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	req := search.SearchRequest{
		Query: r.URL.Query().Get("q"),
		Limit: queryInt(r, "limit"),
	}

	result, err := h.searchService.Search(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
