package report

import (
	"context"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
)

type ReportService interface {
	GetAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
	ExportAttendanceReport(ctx context.Context, req ExportRequest, format export.Format) (export.File, error)
}
