package activitylog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

type memoryRepo struct {
	logs       []activitylog.Log
	lastFilter activitylog.LogFilter
}

func (m *memoryRepo) Create(_ context.Context, l activitylog.Log) (activitylog.Log, error) {
	l.ID = int64(len(m.logs) + 1)
	l.At = time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	m.logs = append(m.logs, l)
	return l, nil
}

func (m *memoryRepo) List(_ context.Context, filter activitylog.LogFilter) ([]activitylog.Log, int64, error) {
	m.lastFilter = filter
	return m.logs, int64(len(m.logs)), nil
}

func (m *memoryRepo) ListActions(context.Context) ([]string, error) { return nil, nil }

func (m *memoryRepo) ListActors(context.Context) ([]activitylog.Actor, error) {
	return []activitylog.Actor{{ID: adminID, Name: "Admin"}}, nil
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("secret"), nil)
	token, _, err := auth.Encode(map[string]any{"user_id": adminID, "is_admin": true})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newService(repo *memoryRepo) *ActivityLogServiceImpl {
	return &ActivityLogServiceImpl{
		repo: repo,
		now:  func() time.Time { return time.Date(2024, 3, 6, 10, 30, 0, 0, time.UTC) },
	}
}

func TestRecord_SetsActor(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)
	target := "session-1"

	err := svc.Record(authedContext(t), activitylog.ActionCreateSession, &target, activitylog.Meta{"date": "2024-03-06"})
	require.NoError(t, err)

	require.Len(t, repo.logs, 1)
	require.NotNil(t, repo.logs[0].ActorID)
	assert.Equal(t, adminID, *repo.logs[0].ActorID)
	assert.Equal(t, "Buat sesi presensi 2024-03-06", repo.logs[0].Summary())
}

func TestRecord_WithoutActor(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)

	require.NoError(t, svc.Record(context.Background(), activitylog.ActionExport, nil, activitylog.Meta{"what": "laporan"}))
	require.Len(t, repo.logs, 1)
	assert.Nil(t, repo.logs[0].ActorID)
}

func TestList(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)
	ctx := authedContext(t)
	require.NoError(t, svc.Record(ctx, activitylog.ActionSetStatus, nil, activitylog.Meta{"status": "S", "count": 3}))
	require.NoError(t, svc.Record(ctx, activitylog.ActionDeleteEmployee, nil, nil))

	res, err := svc.List(ctx, activitylog.LogFilter{Action: strPtr(" set_status ")})
	require.NoError(t, err)

	assert.Equal(t, "SET_STATUS", *repo.lastFilter.Action)
	assert.Equal(t, int64(2), res.TotalCount)
	assert.Equal(t, 1, res.TotalPages)
	require.Len(t, res.Logs, 2)
	assert.Equal(t, "Set status S (3 pegawai)", res.Logs[0].Summary)
	assert.Equal(t, "-", res.Logs[0].ActorName)
	assert.NotNil(t, res.Logs[1].Meta)
	assert.Equal(t, "Hapus pegawai -", res.Logs[1].Summary)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := newService(&memoryRepo{})

	_, err := svc.List(context.Background(), activitylog.LogFilter{
		ActorID:   strPtr("nope"),
		StartDate: strPtr("2024-03-10"),
		EndDate:   strPtr("2024-03-01"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "actor_id")
	assert.Contains(t, verrs.ToMap(), "end_date")
}

func TestFilters_NonNil(t *testing.T) {
	svc := newService(&memoryRepo{})

	res, err := svc.Filters(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Actions)
	assert.Empty(t, res.Actions)
	assert.Len(t, res.Actors, 1)
}

func TestExport_RecordsItself(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)
	ctx := authedContext(t)
	require.NoError(t, svc.Record(ctx, activitylog.ActionCreateEmployee, nil, activitylog.Meta{"name": "Budi"}))

	file, err := svc.Export(ctx, activitylog.LogFilter{Page: 4, Limit: 10}, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, activitylog.MaxExportRows, repo.lastFilter.Limit)
	assert.Equal(t, "log_aktivitas_20240306_103000.csv", file.Name)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Waktu,Admin,Aksi,Target,Ringkasan", lines[0])
	assert.Contains(t, lines[1], "Tambah pegawai Budi")

	require.Len(t, repo.logs, 2)
	assert.Equal(t, activitylog.ActionExport, repo.logs[1].Action)
	assert.Equal(t, 1, repo.logs[1].Meta["rows"])
}

func strPtr(s string) *string { return &s }
