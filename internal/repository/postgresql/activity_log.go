package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
)

type activityLogRepositoryImpl struct {
	db *database.DB
}

func NewActivityLogRepository(db *database.DB) activitylog.ActivityLogRepository {
	return &activityLogRepositoryImpl{db: db}
}

// Create implements activitylog.ActivityLogRepository.
func (r *activityLogRepositoryImpl) Create(ctx context.Context, log activitylog.Log) (activitylog.Log, error) {
	q := GetQuerier(ctx, r.db)

	meta := log.Meta
	if meta == nil {
		meta = activitylog.Meta{}
	}

	query := `
		INSERT INTO activity_logs (actor_id, action, target_id, meta)
		VALUES ($1, $2, $3, $4)
		RETURNING id, at
	`

	created := log
	created.Meta = meta
	err := q.QueryRow(ctx, query, log.ActorID, string(log.Action), log.TargetID, meta).Scan(&created.ID, &created.At)
	if err != nil {
		return activitylog.Log{}, fmt.Errorf("failed to create activity log: %w", err)
	}
	return created, nil
}

// List implements activitylog.ActivityLogRepository. Newest entries first.
func (r *activityLogRepositoryImpl) List(ctx context.Context, filter activitylog.LogFilter) ([]activitylog.Log, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Action != nil && *filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("l.action = $%d", argIdx))
		args = append(args, *filter.Action)
		argIdx++
	}
	if filter.ActorID != nil && *filter.ActorID != "" {
		conditions = append(conditions, fmt.Sprintf("l.actor_id = $%d", argIdx))
		args = append(args, *filter.ActorID)
		argIdx++
	}
	if from, ok := parseDate(filter.StartDate); ok {
		conditions = append(conditions, fmt.Sprintf("l.at >= $%d", argIdx))
		args = append(args, from)
		argIdx++
	}
	if to, ok := parseDate(filter.EndDate); ok {
		// inclusive end date
		conditions = append(conditions, fmt.Sprintf("l.at < $%d", argIdx))
		args = append(args, to.Add(24*time.Hour))
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(l.action ILIKE $%d OR l.target_id ILIKE $%d OR l.meta::text ILIKE $%d OR u.full_name ILIKE $%d OR u.email ILIKE $%d)", argIdx, argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM activity_logs l LEFT JOIN users u ON u.id = l.actor_id WHERE %s`, whereClause)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT l.id, l.at, l.actor_id, l.action, l.target_id, l.meta,
			COALESCE(NULLIF(u.full_name, ''), u.email)
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.actor_id
		WHERE %s
		ORDER BY l.at DESC, l.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []activitylog.Log
	for rows.Next() {
		var l activitylog.Log
		if err := rows.Scan(&l.ID, &l.At, &l.ActorID, &l.Action, &l.TargetID, &l.Meta, &l.ActorName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListActions implements activitylog.ActivityLogRepository.
func (r *activityLogRepositoryImpl) ListActions(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT action FROM activity_logs ORDER BY action ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity actions: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// ListActors implements activitylog.ActivityLogRepository.
func (r *activityLogRepositoryImpl) ListActors(ctx context.Context) ([]activitylog.Actor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT u.id, COALESCE(NULLIF(u.full_name, ''), u.email) AS name
		FROM activity_logs l
		JOIN users u ON u.id = l.actor_id
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity actors: %w", err)
	}
	defer rows.Close()

	var actors []activitylog.Actor
	for rows.Next() {
		var a activitylog.Actor
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}
