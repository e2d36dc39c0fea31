package postgresql

import (
	"context"
	"fmt"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/dashboard"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountUnits implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountUnits(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM units`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count units: %w", err)
	}
	return n, nil
}

// GetEmployeeStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetEmployeeStats(ctx context.Context) (dashboard.EmployeeStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE active),
			COUNT(*) FILTER (WHERE active AND employment_status = 'ASN'),
			COUNT(*) FILTER (WHERE active AND employment_status = 'NON_ASN')
		FROM employees
	`

	var stats dashboard.EmployeeStats
	if err := q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active, &stats.ASN, &stats.NonASN); err != nil {
		return dashboard.EmployeeStats{}, fmt.Errorf("failed to get employee stats: %w", err)
	}
	return stats, nil
}

// ListRecentEntries implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) ListRecentEntries(ctx context.Context, limit int) ([]attendance.EntryRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, entryRowSelect+` ORDER BY en.updated_at DESC, en.id ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent entries: %w", err)
	}
	return scanEntryRows(rows)
}
