package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListActiveByUnit returns active employees of one unit, or of every unit when unitID is empty.
	ListActiveByUnit(ctx context.Context, unitID string) ([]Employee, error)
	Search(ctx context.Context, query string, limit int) ([]Employee, error)
}
