package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/report"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/aggregate"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeRepo struct {
	attendance.AttendanceRepository
	rows []attendance.EntryRow
}

func (r *rangeRepo) ListEntriesInRange(_ context.Context, from, to time.Time) ([]attendance.EntryRow, error) {
	var out []attendance.EntryRow
	for _, row := range r.rows {
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

type activeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (r *activeRepo) ListActiveByUnit(_ context.Context, unitID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if unitID == "" || e.UnitID == unitID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRecorder struct {
	actions []activitylog.Action
	metas   []activitylog.Meta
}

func (f *fakeRecorder) Record(_ context.Context, action activitylog.Action, _ *string, meta activitylog.Meta) error {
	f.actions = append(f.actions, action)
	f.metas = append(f.metas, meta)
	return nil
}

var (
	unitSekretariat = uuid.NewString()
	unitSDA         = uuid.NewString()
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func row(emp, name, unitID, unitName, date string, status attendance.Status) attendance.EntryRow {
	return attendance.EntryRow{
		EntryID:    uuid.NewString(),
		EmployeeID: emp,
		Name:       name,
		NIP:        "NIP-" + emp,
		UnitID:     unitID,
		UnitName:   unitName,
		Date:       day(date),
		StartTime:  "07:30:00",
		EndTime:    "08:00:00",
		Status:     status,
	}
}

func newTestService() (*ReportServiceImpl, *fakeRecorder) {
	attendanceRepo := &rangeRepo{rows: []attendance.EntryRow{
		row("E1", "Budi Santoso", unitSekretariat, "Sekretariat", "2024-01-01", attendance.StatusPresent),
		row("E1", "Budi Santoso", unitSekretariat, "Sekretariat", "2024-01-02", attendance.StatusPresent),
		row("E2", "José Rahman", unitSDA, "Bid. SDA", "2024-01-01", attendance.StatusSick),
		row("E2", "José Rahman", unitSDA, "Bid. SDA", "2024-01-01", attendance.StatusPresent),
		row("E3", "Siti Aminah", unitSDA, "Bid. SDA", "2024-01-02", attendance.StatusPresent),
		row("E1", "Budi Santoso", unitSekretariat, "Sekretariat", "2024-02-01", attendance.StatusAbsent),
	}}
	employeeRepo := &activeRepo{employees: []employee.Employee{
		{ID: "E1", Name: "Budi Santoso", NIP: "NIP-E1", UnitID: unitSekretariat, UnitName: "Sekretariat", Active: true},
		{ID: "E2", Name: "José Rahman", NIP: "NIP-E2", UnitID: unitSDA, UnitName: "Bid. SDA", Active: true},
		{ID: "E3", Name: "Siti Aminah", NIP: "NIP-E3", UnitID: unitSDA, UnitName: "Bid. SDA", Active: true},
		{ID: "E4", Name: "Agus Salim", NIP: "NIP-E4", UnitID: unitSDA, UnitName: "Bid. SDA", Active: true},
	}}
	recorder := &fakeRecorder{}

	svc := NewReportService(attendanceRepo, employeeRepo, recorder).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC) }
	return svc, recorder
}

func januaryRequest() report.AttendanceReportRequest {
	return report.AttendanceReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}
}

func TestGetAttendanceReport(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.GetAttendanceReport(context.Background(), januaryRequest())
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", res.Period.StartDate)
	assert.Equal(t, "2024-02-05T09:00:00Z", res.GeneratedAt)
	assert.Equal(t, 2, res.TotalDays)

	// E2 counts once on 2024-01-01 and SAKIT outranks HADIR
	assert.Equal(t, 4, res.Overall.Total)
	assert.Equal(t, 3, res.Overall.Counts.Present)
	assert.Equal(t, 1, res.Overall.Counts.Sick)

	require.Len(t, res.ByEmployee, 3)
	assert.Equal(t, "E1", res.ByEmployee[0].EmployeeID)
	assert.Equal(t, 100, res.ByEmployee[0].Percentage)
	assert.Equal(t, "E3", res.ByEmployee[1].EmployeeID)
	assert.Equal(t, 50, res.ByEmployee[1].Percentage)
	assert.Equal(t, "E2", res.ByEmployee[2].EmployeeID)
	assert.Equal(t, 0, res.ByEmployee[2].Percentage)

	require.Len(t, res.ByUnit, 2)
	assert.Equal(t, "Bid. SDA", res.ByUnit[0].Unit)
	assert.Equal(t, "Sekretariat", res.ByUnit[1].Unit)

	assert.Equal(t, 3, res.Pagination.TotalCount)
	assert.Equal(t, 1, res.Pagination.TotalPages)
}

func TestGetAttendanceReport_UnitFilterKeepsRangeDays(t *testing.T) {
	svc, _ := newTestService()

	req := januaryRequest()
	unit := unitSekretariat
	req.UnitID = &unit

	res, err := svc.GetAttendanceReport(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalDays)
	require.Len(t, res.ByEmployee, 1)
	assert.Equal(t, "E1", res.ByEmployee[0].EmployeeID)
	require.Len(t, res.ByUnit, 1)
}

func TestGetAttendanceReport_SearchIgnoresAccents(t *testing.T) {
	svc, _ := newTestService()

	req := januaryRequest()
	q := "jose"
	req.Search = &q

	res, err := svc.GetAttendanceReport(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.ByEmployee, 1)
	assert.Equal(t, "E2", res.ByEmployee[0].EmployeeID)
	assert.Equal(t, 2, res.TotalDays)
}

func TestGetAttendanceReport_SearchSpansFields(t *testing.T) {
	svc, _ := newTestService()

	req := januaryRequest()
	q := "rahman nip-e2"
	req.Search = &q

	res, err := svc.GetAttendanceReport(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.ByEmployee, 1)
	assert.Equal(t, "E2", res.ByEmployee[0].EmployeeID)
}

func TestGetAttendanceReport_CorruptStoredStatus(t *testing.T) {
	svc, _ := newTestService()
	repo := svc.attendanceRepo.(*rangeRepo)
	repo.rows = append(repo.rows, row("E3", "Siti Aminah", unitSDA, "Bid. SDA", "2024-01-03", attendance.Status("BOGUS")))

	_, err := svc.GetAttendanceReport(context.Background(), januaryRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, aggregate.ErrUnknownStatus)
	assert.NotErrorIs(t, err, attendance.ErrInvalidStatus)

	var verrs validator.ValidationErrors
	assert.False(t, errors.As(err, &verrs))
}

func TestGetAttendanceReport_IncludeIdle(t *testing.T) {
	svc, _ := newTestService()

	req := januaryRequest()
	unit := unitSDA
	req.UnitID = &unit
	req.IncludeIdle = true

	res, err := svc.GetAttendanceReport(context.Background(), req)
	require.NoError(t, err)

	var ids []string
	for _, r := range res.ByEmployee {
		ids = append(ids, r.EmployeeID)
	}
	assert.ElementsMatch(t, []string{"E2", "E3", "E4"}, ids)
	assert.Equal(t, "E4", res.ByEmployee[len(res.ByEmployee)-1].EmployeeID)
	assert.Equal(t, 2, res.Overall.Total)
}

func TestGetAttendanceReport_Pagination(t *testing.T) {
	svc, _ := newTestService()

	req := januaryRequest()
	req.Page = 2
	req.Limit = 2

	res, err := svc.GetAttendanceReport(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.ByEmployee, 1)
	assert.Equal(t, "E2", res.ByEmployee[0].EmployeeID)
	assert.Equal(t, 2, res.Pagination.TotalPages)

	req.Page = 5
	res, err = svc.GetAttendanceReport(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, res.ByEmployee)
}

func TestGetAttendanceReport_EmptyRange(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.GetAttendanceReport(context.Background(), report.AttendanceReportRequest{StartDate: "2023-06-01", EndDate: "2023-06-30"})
	require.NoError(t, err)

	assert.Equal(t, 0, res.TotalDays)
	assert.Equal(t, 0, res.Overall.Total)
	assert.NotNil(t, res.ByEmployee)
	assert.NotNil(t, res.ByUnit)
}

func TestGetAttendanceReport_Validation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetAttendanceReport(context.Background(), report.AttendanceReportRequest{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "end_date", verrs[0].Field)
}

func TestExportAttendanceReport_EmployeeView(t *testing.T) {
	svc, recorder := newTestService()

	file, err := svc.ExportAttendanceReport(context.Background(), report.ExportRequest{
		AttendanceReportRequest: report.AttendanceReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31", Limit: 1},
	}, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "laporan_per_pegawai_2024-01-01_sd_2024-01-31.csv", file.Name)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Nama,NIP,Unit,Total Hari,Hadir,Izin,Sakit,DL,TK,% Hadir", lines[0])
	assert.Equal(t, "Budi Santoso,NIP-E1,Sekretariat,2,2,0,0,0,0,100", lines[1])

	require.Len(t, recorder.actions, 1)
	assert.Equal(t, activitylog.ActionExport, recorder.actions[0])
	assert.Equal(t, "laporan per pegawai", recorder.metas[0]["what"])
	assert.Equal(t, "csv", recorder.metas[0]["format"])
}

func TestExportAttendanceReport_UnitView(t *testing.T) {
	svc, recorder := newTestService()

	file, err := svc.ExportAttendanceReport(context.Background(), report.ExportRequest{
		AttendanceReportRequest: januaryRequest(),
		View:                    report.ViewUnit,
	}, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "laporan_per_unit_2024-01-01_sd_2024-01-31.csv", file.Name)
	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Unit,Hadir,Izin,Sakit,DL,TK", lines[0])
	assert.Equal(t, "Bid. SDA,1,0,1,0,0", lines[1])
	assert.Equal(t, "laporan per unit", recorder.metas[0]["what"])
}

func TestExportAttendanceReport_InvalidView(t *testing.T) {
	svc, recorder := newTestService()

	_, err := svc.ExportAttendanceReport(context.Background(), report.ExportRequest{
		AttendanceReportRequest: januaryRequest(),
		View:                    "monthly",
	}, export.FormatCSV)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, recorder.actions)
}
