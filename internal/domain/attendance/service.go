package attendance

import (
	"context"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
)

type AttendanceService interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (SessionResponse, error)
	GetSession(ctx context.Context, id string) (SessionDetailResponse, error)
	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionResponse, error)
	UpdateSession(ctx context.Context, req UpdateSessionRequest) (SessionResponse, error)
	DeleteSession(ctx context.Context, id string) error

	SetAttendanceBulk(ctx context.Context, req BulkSetRequest) (BulkSetResponse, error)
	OverwriteAttendance(ctx context.Context, req OverwriteRequest) (OverwriteResponse, error)

	ListEntries(ctx context.Context, filter EntryFilter) (ListEntryResponse, error)
	ExportEntries(ctx context.Context, filter EntryFilter, format export.Format) (export.File, error)
}
