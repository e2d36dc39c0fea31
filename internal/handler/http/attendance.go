package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
)

type AttendanceHandler interface {
	// Sessions
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	ListSessions(w http.ResponseWriter, r *http.Request)
	UpdateSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)

	// Entries
	SetAttendanceBulk(w http.ResponseWriter, r *http.Request)
	OverwriteAttendance(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	ExportEntries(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CreateSession handles POST /sessions
func (h *attendanceHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CreateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance session created successfully", result)
}

// GetSession handles GET /sessions/{id}
func (h *attendanceHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSessions handles GET /sessions
func (h *attendanceHandlerImpl) ListSessions(w http.ResponseWriter, r *http.Request) {
	filter := attendance.SessionFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}

	result, err := h.attendanceService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSession handles PATCH /sessions/{id}
func (h *attendanceHandlerImpl) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance session updated successfully", result)
}

// DeleteSession handles DELETE /sessions/{id}. Entries go with the session.
func (h *attendanceHandlerImpl) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance session deleted successfully", nil)
}

// SetAttendanceBulk handles POST /attendance/bulk
func (h *attendanceHandlerImpl) SetAttendanceBulk(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SetAttendanceBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved successfully", result)
}

// OverwriteAttendance handles POST /attendance/overwrite
func (h *attendanceHandlerImpl) OverwriteAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverwriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.OverwriteAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance replaced successfully", result)
}

func entryFilterFromQuery(r *http.Request) attendance.EntryFilter {
	return attendance.EntryFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		UnitID:    queryString(r, "unit_id"),
		Status:    queryString(r, "status"),
		Search:    queryString(r, "q"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
}

// ListEntries handles GET /attendance/entries
func (h *attendanceHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListEntries(r.Context(), entryFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportEntries handles GET /attendance/entries/export
func (h *attendanceHandlerImpl) ExportEntries(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.attendanceService.ExportEntries(r.Context(), entryFilterFromQuery(r), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance entries exported", "file", file.Name, "bytes", len(file.Data))
	response.File(w, file)
}
