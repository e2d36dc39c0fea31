package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/pupr-presensi/presensi-backend-go/internal/config"
	appHTTP "github.com/pupr-presensi/presensi-backend-go/internal/handler/http"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
	"github.com/pupr-presensi/presensi-backend-go/internal/repository/postgresql"
	activityLogService "github.com/pupr-presensi/presensi-backend-go/internal/service/activitylog"
	attendanceService "github.com/pupr-presensi/presensi-backend-go/internal/service/attendance"
	serviceAuth "github.com/pupr-presensi/presensi-backend-go/internal/service/auth"
	dashboardService "github.com/pupr-presensi/presensi-backend-go/internal/service/dashboard"
	employeeService "github.com/pupr-presensi/presensi-backend-go/internal/service/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/service/master"
	reportService "github.com/pupr-presensi/presensi-backend-go/internal/service/report"
	searchService "github.com/pupr-presensi/presensi-backend-go/internal/service/search"
	settingsService "github.com/pupr-presensi/presensi-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	level, _ := cfg.LogLevel()
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presensi-pupr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	unitRepo := postgresql.NewUnitRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	activityLogRepo := postgresql.NewActivityLogRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	// Services
	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())
	if err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	activityLogSvc := activityLogService.NewActivityLogService(activityLogRepo)
	authService := serviceAuth.NewAuthService(tx, userRepo, JWTService, JWTRepository)
	masterService := master.NewMasterService(unitRepo)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, activityLogSvc)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, activityLogSvc)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo, activityLogSvc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, attendanceRepo)
	searchSvc := searchService.NewSearchService(employeeRepo, attendanceRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authService),
		Master:      appHTTP.NewMasterHandler(masterService),
		Employee:    appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:      appHTTP.NewReportHandler(reportSvc),
		ActivityLog: appHTTP.NewActivityLogHandler(activityLogSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc, searchSvc),
		Settings:    appHTTP.NewSettingsHandler(settingsSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       level,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
