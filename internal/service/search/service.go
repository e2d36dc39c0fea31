package search

import (
	"context"
	"fmt"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/search"
	"golang.org/x/sync/errgroup"
)

type SearchServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewSearchService(employeeRepo employee.EmployeeRepository, attendanceRepo attendance.AttendanceRepository) search.SearchService {
	return &SearchServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Search implements search.SearchService.
func (s *SearchServiceImpl) Search(ctx context.Context, req search.SearchRequest) (search.SearchResponse, error) {
	if err := req.Validate(); err != nil {
		return search.SearchResponse{}, err
	}

	var (
		employees []employee.Employee
		sessions  []attendance.Session
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.Search(gCtx, req.Query, req.Limit)
		if err != nil {
			return fmt.Errorf("failed to search employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		sessions, err = s.attendanceRepo.SearchSessions(gCtx, req.Query, req.Limit)
		if err != nil {
			return fmt.Errorf("failed to search sessions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return search.SearchResponse{}, err
	}

	res := search.SearchResponse{
		Query:     req.Query,
		Employees: make([]employee.EmployeeResponse, 0, len(employees)),
		Sessions:  make([]attendance.SessionResponse, 0, len(sessions)),
	}
	for _, e := range employees {
		res.Employees = append(res.Employees, employee.NewEmployeeResponse(e))
	}
	for _, sess := range sessions {
		r := attendance.NewSessionResponse(sess, nil)
		r.Counts = nil
		res.Sessions = append(res.Sessions, r)
	}
	return res, nil
}
