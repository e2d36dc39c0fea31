package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/report"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/aggregate"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/textfold"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	recorder       activitylog.Recorder
	now            func() time.Time
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository, recorder activitylog.Recorder) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		recorder:       recorder,
		now:            time.Now,
	}
}

// GetAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GetAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	summary, err := s.summarize(ctx, req)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	total := len(summary.ByEmployee)
	start := min((req.Page-1)*req.Limit, total)
	end := min(start+req.Limit, total)

	return report.AttendanceReport{
		Period:      report.Period{StartDate: req.StartDate, EndDate: req.EndDate},
		GeneratedAt: s.now().Format(time.RFC3339),
		TotalDays:   summary.TotalDays,
		Overall:     summary.Overall,
		ByUnit:      summary.ByUnit,
		ByEmployee:  summary.ByEmployee[start:end],
		Pagination: report.Pagination{
			TotalCount: total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: int(math.Ceil(float64(total) / float64(req.Limit))),
		},
	}, nil
}

// ExportAttendanceReport implements report.ReportService. The file holds
// every row of the chosen view regardless of pagination.
func (s *ReportServiceImpl) ExportAttendanceReport(ctx context.Context, req report.ExportRequest, format export.Format) (export.File, error) {
	if err := req.Validate(); err != nil {
		return export.File{}, err
	}

	summary, err := s.summarize(ctx, req.AttendanceReportRequest)
	if err != nil {
		return export.File{}, err
	}

	period := fmt.Sprintf("Periode %s s.d. %s", req.StartDate, req.EndDate)
	var (
		table    export.Table
		baseName string
		what     string
	)

	switch req.View {
	case report.ViewEmployee:
		table = export.Table{
			Title:    "Laporan Presensi per Pegawai",
			Subtitle: period,
			Headers:  []string{"Nama", "NIP", "Unit", "Total Hari", "Hadir", "Izin", "Sakit", "DL", "TK", "% Hadir"},
		}
		for _, r := range summary.ByEmployee {
			cells := append([]any{r.Name, r.NIP, r.Unit, r.TotalDays}, statusCells(r.Counts)...)
			table.AddRow(append(cells, r.Percentage)...)
		}
		baseName = fmt.Sprintf("laporan_per_pegawai_%s_sd_%s", req.StartDate, req.EndDate)
		what = "laporan per pegawai"
	case report.ViewUnit:
		table = export.Table{
			Title:    "Laporan Presensi per Unit",
			Subtitle: period,
			Headers:  []string{"Unit", "Hadir", "Izin", "Sakit", "DL", "TK"},
		}
		for _, r := range summary.ByUnit {
			table.AddRow(append([]any{r.Unit}, statusCells(r.Counts)...)...)
		}
		baseName = fmt.Sprintf("laporan_per_unit_%s_sd_%s", req.StartDate, req.EndDate)
		what = "laporan per unit"
	default:
		return export.File{}, report.ErrUnknownView
	}

	file, err := export.Render(table, format, baseName)
	if err != nil {
		return export.File{}, err
	}

	if err := s.recorder.Record(ctx, activitylog.ActionExport, nil, activitylog.Meta{
		"what":       what,
		"format":     string(format),
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	}); err != nil {
		return export.File{}, err
	}
	return file, nil
}

// summarize counts days over the whole range, then narrows to the unit and
// query filters before aggregating.
func (s *ReportServiceImpl) summarize(ctx context.Context, req report.AttendanceReportRequest) (aggregate.Summary, error) {
	from, to := req.Range()

	rows, err := s.attendanceRepo.ListEntriesInRange(ctx, from, to)
	if err != nil {
		return aggregate.Summary{}, fmt.Errorf("failed to load attendance entries: %w", err)
	}

	all := make([]aggregate.Entry, 0, len(rows))
	for _, r := range rows {
		all = append(all, aggregate.Entry{
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			NIP:        r.NIP,
			Unit:       r.UnitName,
			Date:       r.Date.Format("2006-01-02"),
			Status:     r.Status,
		})
	}
	totalDays := aggregate.DistinctDays(all)

	unitID := ""
	if req.UnitID != nil {
		unitID = *req.UnitID
	}
	query := ""
	if req.Search != nil {
		query = *req.Search
	}
	matcher := textfold.NewMatcher(query)

	filtered := all
	if unitID != "" || !matcher.Empty() {
		filtered = make([]aggregate.Entry, 0, len(all))
		for i, r := range rows {
			if unitID != "" && r.UnitID != unitID {
				continue
			}
			description := ""
			if r.Description != nil {
				description = *r.Description
			}
			if !matcher.Match(r.Name, r.NIP, r.UnitName, description) {
				continue
			}
			filtered = append(filtered, all[i])
		}
	}

	var base []aggregate.Member
	if req.IncludeIdle {
		employees, err := s.employeeRepo.ListActiveByUnit(ctx, unitID)
		if err != nil {
			return aggregate.Summary{}, fmt.Errorf("failed to load employees: %w", err)
		}
		for _, e := range employees {
			if !matcher.Match(e.Name, e.NIP, e.UnitName) {
				continue
			}
			base = append(base, aggregate.Member{EmployeeID: e.ID, Name: e.Name, NIP: e.NIP, Unit: e.UnitName})
		}
	}

	summary, err := aggregate.Summarize(filtered, totalDays, base)
	if err != nil {
		return aggregate.Summary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	return summary, nil
}

// statusCells renders counts in the column order Hadir, Izin, Sakit, DL, TK.
func statusCells(c aggregate.Counts) []any {
	cells := make([]any, 0, len(attendance.Statuses))
	for _, st := range attendance.Statuses {
		cells = append(cells, c.Get(st))
	}
	return cells
}
