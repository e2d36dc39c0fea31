package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/dashboard"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/aggregate"
	"golang.org/x/sync/errgroup"
)

// RecentLimit is the number of latest entries shown on the dashboard.
const RecentLimit = 10

var weekdayLabels = [...]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	now            func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, attendanceRepo attendance.AttendanceRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		attendanceRepo:      attendanceRepo,
		now:                 time.Now,
	}
}

// GetDashboard implements dashboard.DashboardService. Every query runs
// concurrently and the first failure fails the whole response.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (dashboard.DashboardResponse, error) {
	if err := req.Validate(s.now()); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	trendStart := date.AddDate(0, 0, -(dashboard.TrendDays - 1))

	var (
		unitCount int
		stats     dashboard.EmployeeStats
		sessions  []attendance.SessionSummary
		window    []attendance.EntryRow
		recent    []attendance.EntryRow
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		unitCount, err = s.CountUnits(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count units: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		stats, err = s.GetEmployeeStats(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get employee stats: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		sessions, _, err = s.attendanceRepo.ListSessions(gCtx, attendance.SessionFilter{
			StartDate: &req.Date,
			EndDate:   &req.Date,
			Page:      1,
			Limit:     100,
		})
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		window, err = s.attendanceRepo.ListEntriesInRange(gCtx, trendStart, date)
		if err != nil {
			return fmt.Errorf("failed to load trend entries: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		recent, err = s.ListRecentEntries(gCtx, RecentLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent entries: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	entries := make([]aggregate.Entry, 0, len(window))
	for _, r := range window {
		entries = append(entries, aggregate.Entry{
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			NIP:        r.NIP,
			Unit:       r.UnitName,
			Date:       r.Date.Format("2006-01-02"),
			Status:     r.Status,
		})
	}
	resolved, err := aggregate.Resolve(entries)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to resolve trend entries: %w", err)
	}

	byDate := make(map[string][]aggregate.Resolved)
	for _, r := range resolved {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	today := aggregate.OverallDistribution(byDate[req.Date])

	trend := make([]dashboard.TrendPoint, 0, dashboard.TrendDays)
	for d := trendStart; !d.After(date); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		present := 0
		for _, r := range byDate[key] {
			if r.Status == attendance.StatusPresent {
				present++
			}
		}
		trend = append(trend, dashboard.TrendPoint{
			Date:    key,
			Label:   weekdayLabels[d.Weekday()],
			Present: present,
			Total:   len(byDate[key]),
		})
	}

	sessionResponses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, ss := range sessions {
		sessionResponses = append(sessionResponses, attendance.NewSessionResponse(ss.Session, ss.Counts))
	}

	recentResponses := make([]attendance.EntryResponse, 0, len(recent))
	for _, r := range recent {
		recentResponses = append(recentResponses, attendance.NewEntryResponse(r))
	}

	return dashboard.DashboardResponse{
		Date:      req.Date,
		UnitCount: unitCount,
		Employees: stats,
		Today: dashboard.TodaySummary{
			Sessions:          len(sessions),
			Distribution:      today,
			PresentPercentage: today.Percentages.Present,
		},
		Sessions: sessionResponses,
		Trend:    trend,
		Recent:   recentResponses,
	}, nil
}
