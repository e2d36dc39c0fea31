package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/middleware"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth        AuthHandler
	Master      MasterHandler
	Employee    EmployeeHandler
	Attendance  AttendanceHandler
	Report      ReportHandler
	ActivityLog ActivityLogHandler
	Dashboard   DashboardHandler
	Settings    SettingsHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires an admin access token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)
			r.Use(middleware.AdminOnly)

			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/change-password", h.Auth.ChangePassword)

			r.Route("/units", func(r chi.Router) {
				r.Get("/", h.Master.ListUnits)
				r.Get("/{id}", h.Master.GetUnit)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Patch("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeleteEmployee)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", h.Attendance.ListSessions)
				r.Post("/", h.Attendance.CreateSession)
				r.Get("/{id}", h.Attendance.GetSession)
				r.Patch("/{id}", h.Attendance.UpdateSession)
				r.Delete("/{id}", h.Attendance.DeleteSession)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/bulk", h.Attendance.SetAttendanceBulk)
				r.Post("/overwrite", h.Attendance.OverwriteAttendance)
				r.Get("/entries", h.Attendance.ListEntries)
				r.Get("/entries/export", h.Attendance.ExportEntries)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", h.Report.GetAttendanceReport)
				r.Get("/attendance/export", h.Report.ExportAttendanceReport)
			})

			r.Route("/activity-logs", func(r chi.Router) {
				r.Get("/", h.ActivityLog.ListLogs)
				r.Get("/filters", h.ActivityLog.Filters)
				r.Get("/export", h.ActivityLog.ExportLogs)
			})

			r.Get("/dashboard", h.Dashboard.GetDashboard)
			r.Get("/search", h.Dashboard.Search)

			r.Get("/settings", h.Settings.GetSettings)
			r.Put("/settings", h.Settings.UpdateSettings)
		})
	})
	return r
}
