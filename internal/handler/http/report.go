package http

import (
	"log/slog"
	"net/http"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/report"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
)

type ReportHandler interface {
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)
	ExportAttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportRequestFromQuery(r *http.Request) report.AttendanceReportRequest {
	includeIdle := queryBool(r, "include_idle")
	return report.AttendanceReportRequest{
		StartDate:   r.URL.Query().Get("start_date"),
		EndDate:     r.URL.Query().Get("end_date"),
		UnitID:      queryString(r, "unit_id"),
		Search:      queryString(r, "q"),
		IncludeIdle: includeIdle != nil && *includeIdle,
		Page:        queryInt(r, "page"),
		Limit:       queryInt(r, "limit"),
	}
}

// GetAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.GetAttendanceReport(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportAttendanceReport handles GET /reports/attendance/export
func (h *reportHandlerImpl) ExportAttendanceReport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := report.ExportRequest{
		AttendanceReportRequest: reportRequestFromQuery(r),
		View:                    report.View(r.URL.Query().Get("view")),
	}

	file, err := h.reportService.ExportAttendanceReport(r.Context(), req, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance report exported", "file", file.Name, "view", req.View)
	response.File(w, file)
}
