package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	unitID = "6f1c2d3e-4b5a-4c6d-8e7f-8091a2b3c4d5"
	empID  = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type recorded struct {
	action   activitylog.Action
	targetID *string
	meta     activitylog.Meta
}

type fakeRecorder struct {
	entries []recorded
}

func (f *fakeRecorder) Record(_ context.Context, action activitylog.Action, targetID *string, meta activitylog.Meta) error {
	f.entries = append(f.entries, recorded{action: action, targetID: targetID, meta: meta})
	return nil
}

type memoryRepo struct {
	employee.EmployeeRepository
	byID      map[string]employee.Employee
	listTotal int64
	deleteErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[string]employee.Employee{}}
}

func (m *memoryRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range m.byID {
		if existing.NIP == e.NIP {
			return employee.Employee{}, employee.ErrNIPExists
		}
	}
	e.ID = empID
	e.UnitName = "Sekretariat"
	m.byID[e.ID] = e
	return e, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memoryRepo) Update(_ context.Context, req employee.UpdateEmployeeRequest) error {
	e, ok := m.byID[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	m.byID[req.ID] = e
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range m.byID {
		out = append(out, e)
	}
	total := m.listTotal
	if total == 0 {
		total = int64(len(out))
	}
	return out, total, nil
}

func strPtr(s string) *string { return &s }

func newService() (employee.EmployeeService, *memoryRepo, *fakeRecorder) {
	repo := newMemoryRepo()
	rec := &fakeRecorder{}
	return NewEmployeeService(passthroughTx{}, repo, rec), repo, rec
}

func TestCreateEmployee_DefaultsAndLog(t *testing.T) {
	svc, _, rec := newService()

	res, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Name:     "  Budi Santoso ",
		NIP:      "197901012005011001",
		Position: "Staf",
		UnitID:   unitID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", res.Name)
	assert.Equal(t, "ASN", res.EmploymentStatus)
	assert.True(t, res.Active)
	assert.Equal(t, "Sekretariat", res.UnitName)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, activitylog.ActionCreateEmployee, rec.entries[0].action)
	require.NotNil(t, rec.entries[0].targetID)
	assert.Equal(t, empID, *rec.entries[0].targetID)
	assert.Equal(t, "Budi Santoso", rec.entries[0].meta["name"])
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc, _, rec := newService()

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		NIP:              "1979 0101",
		UnitID:           "not-a-uuid",
		EmploymentStatus: strPtr("PPPK"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "nip")
	assert.Contains(t, fields, "position")
	assert.Contains(t, fields, "unit_id")
	assert.Contains(t, fields, "employment_status")
	assert.Empty(t, rec.entries)
}

func TestCreateEmployee_DuplicateNIP(t *testing.T) {
	svc, repo, rec := newService()
	repo.byID["other"] = employee.Employee{ID: "other", NIP: "197901012005011001"}

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Name: "Budi", NIP: "197901012005011001", Position: "Staf", UnitID: unitID,
	})
	assert.ErrorIs(t, err, employee.ErrNIPExists)
	assert.Empty(t, rec.entries)
}

func TestUpdateEmployee_LogsOldAndNew(t *testing.T) {
	svc, repo, rec := newService()
	repo.byID[empID] = employee.Employee{ID: empID, Name: "Budi", Position: "Staf", Active: true, EmploymentStatus: employee.EmploymentStatusASN}

	inactive := false
	res, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{
		ID:       empID,
		Position: strPtr(" Kepala Seksi "),
		Active:   &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kepala Seksi", res.Position)
	assert.False(t, res.Active)

	require.Len(t, rec.entries, 1)
	entry := rec.entries[0]
	assert.Equal(t, activitylog.ActionUpdateEmployee, entry.action)
	old := entry.meta["old"].(map[string]any)
	updated := entry.meta["new"].(map[string]any)
	assert.Equal(t, "Staf", old["position"])
	assert.Equal(t, true, old["active"])
	assert.Equal(t, "Kepala Seksi", updated["position"])
	assert.Equal(t, false, updated["active"])
}

func TestUpdateEmployee_EmptyBody(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{ID: empID})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "at least one field must be provided", verrs.ToMap()["body"])
}

func TestGetEmployee_InvalidID(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.GetEmployee(context.Background(), "123")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(context.Background(), empID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	svc, repo, rec := newService()
	repo.byID[empID] = employee.Employee{ID: empID, Name: "Budi", NIP: "1979"}

	require.NoError(t, svc.DeleteEmployee(context.Background(), empID))
	assert.NotContains(t, repo.byID, empID)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, activitylog.ActionDeleteEmployee, rec.entries[0].action)
	assert.Equal(t, "Budi", rec.entries[0].meta["name"])
}

func TestDeleteEmployee_HasEntries(t *testing.T) {
	svc, repo, rec := newService()
	repo.byID[empID] = employee.Employee{ID: empID, Name: "Budi"}
	repo.deleteErr = employee.ErrEmployeeHasEntries

	err := svc.DeleteEmployee(context.Background(), empID)
	assert.True(t, errors.Is(err, employee.ErrEmployeeHasEntries))
	assert.Empty(t, rec.entries)
}

func TestListEmployees_Showing(t *testing.T) {
	svc, repo, _ := newService()
	repo.byID[empID] = employee.Employee{ID: empID, Name: "Budi"}
	repo.listTotal = 45

	res, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "41-45 of 45", res.Showing)
	assert.Equal(t, 3, res.TotalPages)

	empty := newMemoryRepo()
	svc = NewEmployeeService(passthroughTx{}, empty, &fakeRecorder{})
	res, err = svc.ListEmployees(context.Background(), employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", res.Showing)
	assert.NotNil(t, res.Employees)
	assert.Empty(t, res.Employees)
}

func TestListEmployees_ShowingPastLastPage(t *testing.T) {
	svc, repo, _ := newService()
	repo.listTotal = 30

	res, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Page: 5, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, "0 of 30", res.Showing)
	assert.Equal(t, 2, res.TotalPages)
}
