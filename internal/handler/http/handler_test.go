package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/auth"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/dashboard"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/report"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/search"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/settings"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/user"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
	"github.com/pupr-presensi/presensi-backend-go/internal/service/master"
	"github.com/stretchr/testify/require"
)

// Fakes embed the service interface so only the methods a test needs are implemented.

type fakeAuthService struct {
	auth.AuthService
	loginErr    error
	gotRefresh  string
	loggedOut   string
	changeCalls int
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{
		AccessToken:           "access-" + req.Email,
		AccessTokenExpiresIn:  1900000000,
		RefreshToken:          "refresh-token",
		RefreshTokenExpiresIn: 1900000000,
	}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return nil
}

func (f *fakeAuthService) RefreshToken(_ context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	f.gotRefresh = req.RefreshToken
	return auth.AccessTokenResponse{AccessToken: "new-access", AccessTokenExpiresIn: 1900000000}, nil
}

func (f *fakeAuthService) Me(context.Context) (auth.MeResponse, error) {
	return auth.MeResponse{ID: "admin-1", Email: "admin@pupr.go.id", IsAdmin: true}, nil
}

func (f *fakeAuthService) ChangePassword(_ context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	f.changeCalls++
	return nil
}

type fakeEmployeeService struct {
	employee.EmployeeService
	err       error
	gotFilter employee.EmployeeFilter
}

func (f *fakeEmployeeService) ListEmployees(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	f.gotFilter = filter
	return employee.ListEmployeeResponse{Showing: "0 of 0", Employees: []employee.EmployeeResponse{}}, nil
}

func (f *fakeEmployeeService) CreateEmployee(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if f.err != nil {
		return employee.EmployeeResponse{}, f.err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.EmployeeResponse{ID: "E1", Name: req.Name}, nil
}

func (f *fakeEmployeeService) DeleteEmployee(context.Context, string) error {
	return f.err
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	err       error
	gotBulk   attendance.BulkSetRequest
	gotFilter attendance.EntryFilter
	gotFormat export.Format
}

func (f *fakeAttendanceService) SetAttendanceBulk(_ context.Context, req attendance.BulkSetRequest) (attendance.BulkSetResponse, error) {
	f.gotBulk = req
	if f.err != nil {
		return attendance.BulkSetResponse{}, f.err
	}
	return attendance.BulkSetResponse{SessionID: req.SessionID, Status: attendance.StatusPresent, Affected: int64(len(req.EmployeeIDs))}, nil
}

func (f *fakeAttendanceService) GetSession(context.Context, string) (attendance.SessionDetailResponse, error) {
	return attendance.SessionDetailResponse{}, f.err
}

func (f *fakeAttendanceService) ExportEntries(_ context.Context, filter attendance.EntryFilter, format export.Format) (export.File, error) {
	f.gotFilter, f.gotFormat = filter, format
	return export.File{Name: "presensi_awal_sd_akhir.csv", ContentType: format.ContentType(), Data: []byte("Tanggal\n")}, nil
}

type fakeReportService struct {
	report.ReportService
	gotReq report.AttendanceReportRequest
	err    error
}

func (f *fakeReportService) GetAttendanceReport(_ context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	f.gotReq = req
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}
	if f.err != nil {
		return report.AttendanceReport{}, f.err
	}
	return report.AttendanceReport{Period: report.Period{StartDate: req.StartDate, EndDate: req.EndDate}}, nil
}

type fakeActivityLogService struct {
	activitylog.ActivityLogService
}

type fakeDashboardService struct {
	dashboard.DashboardService
}

type fakeSearchService struct {
	search.SearchService
}

type fakeSettingsService struct {
	settings.SettingsService
}

type fakeMasterService struct {
	master.MasterService
}

type testServer struct {
	router     http.Handler
	jwt        jwt.Service
	auth       *fakeAuthService
	employees  *fakeEmployeeService
	attendance *fakeAttendanceService
	reports    *fakeReportService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtSvc, err := jwt.NewJWTService("handler-test-secret", "1h", "24h", false)
	require.NoError(t, err)

	s := &testServer{
		jwt:        jwtSvc,
		auth:       &fakeAuthService{},
		employees:  &fakeEmployeeService{},
		attendance: &fakeAttendanceService{},
		reports:    &fakeReportService{},
	}
	s.router = NewRouter(jwtSvc, Handlers{
		Auth:        NewAuthHandler(jwtSvc, s.auth),
		Master:      NewMasterHandler(fakeMasterService{}),
		Employee:    NewEmployeeHandler(s.employees),
		Attendance:  NewAttendanceHandler(s.attendance),
		Report:      NewReportHandler(s.reports),
		ActivityLog: NewActivityLogHandler(fakeActivityLogService{}),
		Dashboard:   NewDashboardHandler(fakeDashboardService{}, fakeSearchService{}),
		Settings:    NewSettingsHandler(fakeSettingsService{}),
	}, RouterOptions{AllowedOrigins: []string{"http://localhost:5173"}})
	return s
}

func (s *testServer) token(t *testing.T, isAdmin bool) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(user.User{ID: "admin-1", Email: "admin@pupr.go.id", IsAdmin: isAdmin})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}
