package dashboard

import (
	"context"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
)

type DashboardRepository interface {
	CountUnits(ctx context.Context) (int, error)
	GetEmployeeStats(ctx context.Context) (EmployeeStats, error)
	ListRecentEntries(ctx context.Context, limit int) ([]attendance.EntryRow, error)
}
