package employee

import (
	"context"
	"fmt"
	"math"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	recorder     activitylog.Recorder
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository, recorder activitylog.Recorder) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		recorder:     recorder,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			Name:             req.Name,
			NIP:              req.NIP,
			Position:         req.Position,
			UnitID:           req.UnitID,
			EmploymentStatus: employee.EmploymentStatus(*req.EmploymentStatus),
			Active:           *req.Active,
		})
		if err != nil {
			return err
		}

		return s.recorder.Record(txCtx, activitylog.ActionCreateEmployee, &created.ID, activitylog.Meta{
			"name": created.Name,
			"nip":  created.NIP,
			"unit": created.UnitName,
		})
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// UpdateEmployee implements employee.EmployeeService. The log entry keeps
// the values before and after the change.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		old, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if err := s.employeeRepo.Update(txCtx, req); err != nil {
			return err
		}

		updated, err = s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		return s.recorder.Record(txCtx, activitylog.ActionUpdateEmployee, &updated.ID, activitylog.Meta{
			"name": updated.Name,
			"old":  snapshot(old),
			"new":  snapshot(updated),
		})
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.employeeRepo.Delete(txCtx, id); err != nil {
			return err
		}

		return s.recorder.Record(txCtx, activitylog.ActionDeleteEmployee, &emp.ID, activitylog.Meta{
			"name": emp.Name,
			"nip":  emp.NIP,
		})
	})
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	// a page past the end shows an empty range instead of "81-30 of 30"
	from := (filter.Page-1)*filter.Limit + 1
	to := min(filter.Page*filter.Limit, int(total))
	showing := fmt.Sprintf("%d-%d of %d", from, to, total)
	if from > to {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

func snapshot(e employee.Employee) map[string]any {
	return map[string]any{
		"name":              e.Name,
		"nip":               e.NIP,
		"position":          e.Position,
		"unit":              e.UnitName,
		"employment_status": string(e.EmploymentStatus),
		"active":            e.Active,
	}
}
