package activitylog

import (
	"context"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
)

// Recorder appends a log entry for the admin found in ctx. When ctx carries a
// transaction the entry commits or rolls back with it.
type Recorder interface {
	Record(ctx context.Context, action Action, targetID *string, meta Meta) error
}

type ActivityLogService interface {
	Recorder
	List(ctx context.Context, filter LogFilter) (ListLogResponse, error)
	Filters(ctx context.Context) (FiltersResponse, error)
	Export(ctx context.Context, filter LogFilter, format export.Format) (export.File, error)
}
