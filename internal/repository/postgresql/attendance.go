package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const sessionColumns = `
	s.id, s.date, to_char(s.start_time, 'HH24:MI:SS'), to_char(s.end_time, 'HH24:MI:SS'),
	s.description, s.created_by, s.created_at, s.updated_at,
	COALESCE(NULLIF(cu.full_name, ''), cu.email)
`

const entryRowSelect = `
	SELECT en.id, en.session_id, en.employee_id, s.date,
		to_char(s.start_time, 'HH24:MI:SS'), to_char(s.end_time, 'HH24:MI:SS'), s.description,
		e.name, e.nip, e.unit_id, un.name, en.status, en.note,
		COALESCE(NULLIF(cu.full_name, ''), cu.email), en.created_at
	FROM attendance_entries en
	JOIN attendance_sessions s ON s.id = en.session_id
	JOIN employees e ON e.id = en.employee_id
	JOIN units un ON un.id = e.unit_id
	LEFT JOIN users cu ON cu.id = s.created_by
`

func scanSession(row pgx.Row, extra ...any) (attendance.Session, error) {
	var s attendance.Session
	dest := []any{
		&s.ID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Description, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		&s.CreatorName,
	}
	err := row.Scan(append(dest, extra...)...)
	return s, err
}

func scanEntryRows(rows pgx.Rows) ([]attendance.EntryRow, error) {
	defer rows.Close()

	var out []attendance.EntryRow
	for rows.Next() {
		var r attendance.EntryRow
		err := rows.Scan(
			&r.EntryID, &r.SessionID, &r.EmployeeID, &r.Date,
			&r.StartTime, &r.EndTime, &r.Description,
			&r.Name, &r.NIP, &r.UnitID, &r.UnitName, &r.Status, &r.Note,
			&r.CreatorName, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// parseDate reads an optional YYYY-MM-DD filter value.
func parseDate(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CreateSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateSession(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_sessions (date, start_time, end_time, description, created_by)
		VALUES ($1, $2::text::time, $3::text::time, $4, $5)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, session.Date, session.StartTime, session.EndTime, session.Description, session.CreatedBy).Scan(&id)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return a.GetSessionByID(ctx, id)
}

// GetSessionByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetSessionByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		LEFT JOIN users cu ON cu.id = s.created_by
		WHERE s.id = $1
	`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}
	return s, nil
}

// UpdateSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateSession(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_sessions
		SET date = $1, start_time = $2::text::time, end_time = $3::text::time, description = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, session.Date, session.StartTime, session.EndTime, session.Description, session.ID)
	if err != nil {
		return attendance.Session{}, fmt.Errorf("failed to update attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}

	return a.GetSessionByID(ctx, session.ID)
}

// DeleteSession implements attendance.AttendanceRepository. Entries go with
// the session through ON DELETE CASCADE.
func (a *attendanceRepository) DeleteSession(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionNotFound
	}
	return nil
}

// ListSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListSessions(ctx context.Context, filter attendance.SessionFilter) ([]attendance.SessionSummary, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if from, ok := parseDate(filter.StartDate); ok {
		conditions = append(conditions, fmt.Sprintf("s.date >= $%d", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to, ok := parseDate(filter.EndDate); ok {
		conditions = append(conditions, fmt.Sprintf("s.date <= $%d", argIdx))
		args = append(args, to)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance_sessions s WHERE %s", whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance sessions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s,
			COUNT(en.id) FILTER (WHERE en.status = 'HADIR'),
			COUNT(en.id) FILTER (WHERE en.status = 'IZIN'),
			COUNT(en.id) FILTER (WHERE en.status = 'SAKIT'),
			COUNT(en.id) FILTER (WHERE en.status = 'DL'),
			COUNT(en.id) FILTER (WHERE en.status = 'TK')
		FROM attendance_sessions s
		LEFT JOIN users cu ON cu.id = s.created_by
		LEFT JOIN attendance_entries en ON en.session_id = s.id
		WHERE %s
		GROUP BY s.id, cu.full_name, cu.email
		ORDER BY s.date DESC, s.start_time DESC
		LIMIT $%d OFFSET $%d
	`, sessionColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.SessionSummary
	for rows.Next() {
		var present, leave, sick, travel, absent int
		s, err := scanSession(rows, &present, &leave, &sick, &travel, &absent)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, attendance.SessionSummary{
			Session: s,
			Counts: map[attendance.Status]int{
				attendance.StatusPresent:        present,
				attendance.StatusLeave:          leave,
				attendance.StatusSick:           sick,
				attendance.StatusOfficialTravel: travel,
				attendance.StatusAbsent:         absent,
			},
		})
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// SearchSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) SearchSessions(ctx context.Context, query string, limit int) ([]attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	sql := `SELECT ` + sessionColumns + `
		FROM attendance_sessions s
		LEFT JOIN users cu ON cu.id = s.created_by
		WHERE s.description ILIKE $1 OR to_char(s.date, 'YYYY-MM-DD') LIKE $1
		ORDER BY s.date DESC, s.start_time DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search attendance sessions: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// UpsertEntries implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertEntries(ctx context.Context, sessionID string, employeeIDs []string, status attendance.Status, note *string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_entries (session_id, employee_id, status, note)
		SELECT $1, emp_id, $3, $4
		FROM unnest($2::uuid[]) AS emp_id
		ON CONFLICT (session_id, employee_id)
		DO UPDATE SET status = EXCLUDED.status, note = EXCLUDED.note, updated_at = NOW()
	`

	tag, err := q.Exec(ctx, query, sessionID, employeeIDs, string(status), note)
	if err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return 0, translateEntryFK(err)
		}
		return 0, fmt.Errorf("failed to upsert attendance entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertEntries implements attendance.AttendanceRepository using COPY.
func (a *attendanceRepository) InsertEntries(ctx context.Context, entries []attendance.Entry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, a.db)

	rows := make([][]any, 0, len(entries))
	for _, en := range entries {
		id, err := uuid.Parse(en.ID)
		if err != nil {
			return 0, fmt.Errorf("invalid entry id %q: %w", en.ID, err)
		}
		sessionID, err := uuid.Parse(en.SessionID)
		if err != nil {
			return 0, attendance.ErrSessionNotFound
		}
		employeeID, err := uuid.Parse(en.EmployeeID)
		if err != nil {
			return 0, attendance.ErrUnknownEmployee
		}
		rows = append(rows, []any{id, sessionID, employeeID, string(en.Status), en.Note})
	}

	n, err := q.CopyFrom(ctx,
		pgx.Identifier{"attendance_entries"},
		[]string{"id", "session_id", "employee_id", "status", "note"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		switch database.PgErrorCode(err) {
		case database.CodeForeignKeyViolation:
			return 0, translateEntryFK(err)
		case database.CodeUniqueViolation:
			return 0, attendance.ErrDuplicateEmployee
		}
		return 0, fmt.Errorf("failed to copy attendance entries: %w", err)
	}
	return n, nil
}

func translateEntryFK(err error) error {
	if strings.Contains(database.PgConstraint(err), "session") {
		return attendance.ErrSessionNotFound
	}
	return attendance.ErrUnknownEmployee
}

// DeleteEntriesBySession implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteEntriesBySession(ctx context.Context, sessionID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_entries WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountEntriesBySession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountEntriesBySession(ctx context.Context, sessionID string) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM attendance_entries WHERE session_id = $1 GROUP BY status`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int, len(attendance.Statuses))
	for _, s := range attendance.Statuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status attendance.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan attendance count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListEntriesBySession implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEntriesBySession(ctx context.Context, sessionID string) ([]attendance.EntryRow, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, entryRowSelect+` WHERE en.session_id = $1 ORDER BY un.name ASC, e.name ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session entries: %w", err)
	}
	return scanEntryRows(rows)
}

// ListEntries implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEntries(ctx context.Context, filter attendance.EntryFilter) ([]attendance.EntryRow, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if from, ok := parseDate(filter.StartDate); ok {
		conditions = append(conditions, fmt.Sprintf("s.date >= $%d", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to, ok := parseDate(filter.EndDate); ok {
		conditions = append(conditions, fmt.Sprintf("s.date <= $%d", argIdx))
		args = append(args, to)
		argIdx++
	}
	if filter.UnitID != nil && *filter.UnitID != "" {
		conditions = append(conditions, fmt.Sprintf("e.unit_id = $%d", argIdx))
		args = append(args, *filter.UnitID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("en.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.nip ILIKE $%d OR un.name ILIKE $%d OR s.description ILIKE $%d)", argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendance_entries en
		JOIN attendance_sessions s ON s.id = en.session_id
		JOIN employees e ON e.id = en.employee_id
		JOIN units un ON un.id = e.unit_id
		WHERE %s
	`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance entries: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY s.date %s, s.start_time %s, e.name ASC
		LIMIT $%d OFFSET $%d
	`, entryRowSelect, whereClause, sortOrder, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	entries, err := scanEntryRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListEntriesInRange implements attendance.AttendanceRepository. Rows come in
// session order so that callers see entries in the order they were taken.
func (a *attendanceRepository) ListEntriesInRange(ctx context.Context, from, to time.Time) ([]attendance.EntryRow, error) {
	q := GetQuerier(ctx, a.db)

	query := entryRowSelect + `
		WHERE s.date BETWEEN $1 AND $2
		ORDER BY s.date ASC, s.start_time ASC, s.created_at ASC, en.created_at ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries in range: %w", err)
	}
	return scanEntryRows(rows)
}
