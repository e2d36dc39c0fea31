package http

import (
	"log/slog"
	"net/http"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
)

type ActivityLogHandler interface {
	ListLogs(w http.ResponseWriter, r *http.Request)
	Filters(w http.ResponseWriter, r *http.Request)
	ExportLogs(w http.ResponseWriter, r *http.Request)
}

type activityLogHandlerImpl struct {
	activityLogService activitylog.ActivityLogService
}

func NewActivityLogHandler(activityLogService activitylog.ActivityLogService) ActivityLogHandler {
	return &activityLogHandlerImpl{
		activityLogService: activityLogService,
	}
}

func logFilterFromQuery(r *http.Request) activitylog.LogFilter {
	return activitylog.LogFilter{
		Action:    queryString(r, "action"),
		ActorID:   queryString(r, "actor_id"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Search:    queryString(r, "q"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
}

// ListLogs handles GET /activity-logs
func (h *activityLogHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	result, err := h.activityLogService.List(r.Context(), logFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Filters handles GET /activity-logs/filters
func (h *activityLogHandlerImpl) Filters(w http.ResponseWriter, r *http.Request) {
	result, err := h.activityLogService.Filters(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportLogs handles GET /activity-logs/export
func (h *activityLogHandlerImpl) ExportLogs(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.activityLogService.Export(r.Context(), logFilterFromQuery(r), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Activity log exported", "file", file.Name)
	response.File(w, file)
}
