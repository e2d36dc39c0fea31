package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSessionByID(ctx context.Context, id string) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	DeleteSession(ctx context.Context, id string) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]SessionSummary, int64, error)
	// SearchSessions matches the description or the date written as YYYY-MM-DD.
	SearchSessions(ctx context.Context, query string, limit int) ([]Session, error)

	// UpsertEntries sets status and note for every employee in the session,
	// inserting missing entries.
	UpsertEntries(ctx context.Context, sessionID string, employeeIDs []string, status Status, note *string) (int64, error)
	// InsertEntries bulk loads entries that are known not to exist yet.
	InsertEntries(ctx context.Context, entries []Entry) (int64, error)
	DeleteEntriesBySession(ctx context.Context, sessionID string) (int64, error)
	CountEntriesBySession(ctx context.Context, sessionID string) (map[Status]int, error)

	ListEntriesBySession(ctx context.Context, sessionID string) ([]EntryRow, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]EntryRow, int64, error)
	// ListEntriesInRange returns every entry whose session date lies in [from, to].
	ListEntriesInRange(ctx context.Context, from, to time.Time) ([]EntryRow, error)
}
