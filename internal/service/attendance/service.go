package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx       database.Transactor
	repo     attendance.AttendanceRepository
	recorder activitylog.Recorder
}

func NewAttendanceService(tx database.Transactor, repo attendance.AttendanceRepository, recorder activitylog.Recorder) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:       tx,
		repo:     repo,
		recorder: recorder,
	}
}

// CreateSession implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateSession(ctx context.Context, req attendance.CreateSessionRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	session := attendance.Session{
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	}
	if userID, err := jwt.UserIDFromContext(ctx); err == nil {
		session.CreatedBy = &userID
	}

	var created attendance.Session
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateSession(txCtx, session)
		if err != nil {
			return err
		}
		return s.recorder.Record(txCtx, activitylog.ActionCreateSession, &created.ID, sessionMeta(created))
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.NewSessionResponse(created, nil), nil
}

// GetSession implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSession(ctx context.Context, id string) (attendance.SessionDetailResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.SessionDetailResponse{}, attendance.ErrSessionNotFound
	}

	session, err := s.repo.GetSessionByID(ctx, id)
	if err != nil {
		return attendance.SessionDetailResponse{}, err
	}

	rows, err := s.repo.ListEntriesBySession(ctx, id)
	if err != nil {
		return attendance.SessionDetailResponse{}, err
	}

	counts := make(map[attendance.Status]int, len(attendance.Statuses))
	entries := make([]attendance.EntryResponse, 0, len(rows))
	for _, r := range rows {
		counts[r.Status]++
		entries = append(entries, attendance.NewEntryResponse(r))
	}

	return attendance.SessionDetailResponse{
		SessionResponse: attendance.NewSessionResponse(session, counts),
		Entries:         entries,
	}, nil
}

// ListSessions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListSessions(ctx context.Context, filter attendance.SessionFilter) (attendance.ListSessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListSessionResponse{}, err
	}

	sessions, total, err := s.repo.ListSessions(ctx, filter)
	if err != nil {
		return attendance.ListSessionResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := make([]attendance.SessionResponse, 0, len(sessions))
	for _, ss := range sessions {
		resp = append(resp, attendance.NewSessionResponse(ss.Session, ss.Counts))
	}

	return attendance.ListSessionResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Sessions:   resp,
	}, nil
}

// UpdateSession implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateSession(ctx context.Context, req attendance.UpdateSessionRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	var (
		updated attendance.Session
		counts  map[attendance.Status]int
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		old, err := s.repo.GetSessionByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		next := old
		next.Date = date
		next.StartTime = req.StartTime
		next.EndTime = req.EndTime
		next.Description = req.Description

		updated, err = s.repo.UpdateSession(txCtx, next)
		if err != nil {
			return err
		}

		counts, err = s.repo.CountEntriesBySession(txCtx, req.ID)
		if err != nil {
			return err
		}

		meta := sessionMeta(updated)
		meta["old"] = sessionMeta(old)
		meta["new"] = sessionMeta(updated)
		return s.recorder.Record(txCtx, activitylog.ActionUpdateSession, &updated.ID, meta)
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	return attendance.NewSessionResponse(updated, counts), nil
}

// DeleteSession implements attendance.AttendanceService. The session's
// entries are removed with it.
func (s *AttendanceServiceImpl) DeleteSession(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrSessionNotFound
	}

	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		session, err := s.repo.GetSessionByID(txCtx, id)
		if err != nil {
			return err
		}

		counts, err := s.repo.CountEntriesBySession(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.repo.DeleteSession(txCtx, id); err != nil {
			return err
		}

		meta := sessionMeta(session)
		meta["entries"] = sumCounts(counts)
		return s.recorder.Record(txCtx, activitylog.ActionDeleteSession, &session.ID, meta)
	})
}

// SetAttendanceBulk implements attendance.AttendanceService. Employees that
// already have an entry in the session get their status replaced.
func (s *AttendanceServiceImpl) SetAttendanceBulk(ctx context.Context, req attendance.BulkSetRequest) (attendance.BulkSetResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkSetResponse{}, err
	}
	status := req.ParsedStatus()

	var affected int64
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		session, err := s.repo.GetSessionByID(txCtx, req.SessionID)
		if err != nil {
			return err
		}

		affected, err = s.repo.UpsertEntries(txCtx, req.SessionID, req.EmployeeIDs, status, req.Note)
		if err != nil {
			return err
		}

		return s.recorder.Record(txCtx, activitylog.ActionSetStatus, &session.ID, activitylog.Meta{
			"date":   session.Date.Format("2006-01-02"),
			"status": string(status),
			"count":  len(req.EmployeeIDs),
		})
	})
	if err != nil {
		return attendance.BulkSetResponse{}, err
	}

	return attendance.BulkSetResponse{
		SessionID: req.SessionID,
		Status:    status,
		Affected:  affected,
	}, nil
}

// OverwriteAttendance implements attendance.AttendanceService. All entries
// of the session are replaced in one transaction; employees absent from
// every bucket lose their entry.
func (s *AttendanceServiceImpl) OverwriteAttendance(ctx context.Context, req attendance.OverwriteRequest) (attendance.OverwriteResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OverwriteResponse{}, err
	}

	counts := make(map[attendance.Status]int, len(attendance.Statuses))
	var entries []attendance.Entry
	for _, bucket := range req.Buckets() {
		counts[bucket.Status] = len(bucket.EmployeeIDs)
		for _, employeeID := range bucket.EmployeeIDs {
			id, err := uuid.NewV7()
			if err != nil {
				return attendance.OverwriteResponse{}, fmt.Errorf("failed to generate entry id: %w", err)
			}
			entries = append(entries, attendance.Entry{
				ID:         id.String(),
				SessionID:  req.SessionID,
				EmployeeID: employeeID,
				Status:     bucket.Status,
			})
		}
	}

	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		session, err := s.repo.GetSessionByID(txCtx, req.SessionID)
		if err != nil {
			return err
		}

		removed, err := s.repo.DeleteEntriesBySession(txCtx, req.SessionID)
		if err != nil {
			return err
		}

		if _, err := s.repo.InsertEntries(txCtx, entries); err != nil {
			return err
		}

		perStatus := make(map[string]any, len(counts))
		for st, n := range counts {
			perStatus[string(st)] = n
		}
		return s.recorder.Record(txCtx, activitylog.ActionOverwrite, &session.ID, activitylog.Meta{
			"date":    session.Date.Format("2006-01-02"),
			"total":   len(entries),
			"removed": removed,
			"counts":  perStatus,
		})
	})
	if err != nil {
		return attendance.OverwriteResponse{}, err
	}

	return attendance.OverwriteResponse{SessionID: req.SessionID, Counts: counts}, nil
}

// ListEntries implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEntries(ctx context.Context, filter attendance.EntryFilter) (attendance.ListEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEntryResponse{}, err
	}

	rows, total, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return attendance.ListEntryResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]attendance.EntryResponse, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, attendance.NewEntryResponse(r))
	}

	return attendance.ListEntryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Entries:    entries,
	}, nil
}

// ExportEntries implements attendance.AttendanceService. At most
// MaxExportRows rows are exported.
func (s *AttendanceServiceImpl) ExportEntries(ctx context.Context, filter attendance.EntryFilter, format export.Format) (export.File, error) {
	if err := filter.Validate(); err != nil {
		return export.File{}, err
	}
	filter.Page, filter.Limit = 1, attendance.MaxExportRows

	rows, _, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return export.File{}, fmt.Errorf("failed to list entries: %w", err)
	}

	from, to := "awal", "akhir"
	if filter.StartDate != nil && *filter.StartDate != "" {
		from = *filter.StartDate
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		to = *filter.EndDate
	}

	table := export.Table{
		Title:    "Data Presensi Pegawai",
		Subtitle: fmt.Sprintf("Periode %s s.d. %s", from, to),
		Headers:  []string{"Tanggal", "Jam", "Unit", "Nama", "NIP", "Status", "Deskripsi", "Admin"},
	}
	for _, r := range rows {
		table.AddRow(
			r.Date.Format("2006-01-02"),
			clockRange(r.StartTime, r.EndTime),
			r.UnitName,
			r.Name,
			r.NIP,
			string(r.Status),
			r.Description,
			r.CreatorName,
		)
	}

	file, err := export.Render(table, format, fmt.Sprintf("presensi_%s_sd_%s", from, to))
	if err != nil {
		return export.File{}, err
	}

	if err := s.recorder.Record(ctx, activitylog.ActionExport, nil, activitylog.Meta{
		"what":   "data presensi",
		"format": string(format),
		"rows":   len(rows),
	}); err != nil {
		return export.File{}, err
	}
	return file, nil
}

func sessionMeta(s attendance.Session) activitylog.Meta {
	meta := activitylog.Meta{
		"date":       s.Date.Format("2006-01-02"),
		"start_time": s.StartTime,
		"end_time":   s.EndTime,
	}
	if s.Description != nil {
		meta["description"] = *s.Description
	}
	return meta
}

func sumCounts(counts map[attendance.Status]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// clockRange renders "08:00-09:00" from two HH:MM:SS values.
func clockRange(start, end string) string {
	return trimSeconds(start) + "-" + trimSeconds(end)
}

func trimSeconds(clock string) string {
	if t, err := time.Parse("15:04:05", clock); err == nil {
		return t.Format("15:04")
	}
	return clock
}
