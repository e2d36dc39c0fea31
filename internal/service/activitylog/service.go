package activitylog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/activitylog"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
)

type ActivityLogServiceImpl struct {
	repo activitylog.ActivityLogRepository
	now  func() time.Time
}

func NewActivityLogService(repo activitylog.ActivityLogRepository) activitylog.ActivityLogService {
	return &ActivityLogServiceImpl{repo: repo, now: time.Now}
}

// Record implements activitylog.Recorder. The actor is the authenticated
// admin; entries written without one keep a NULL actor.
func (s *ActivityLogServiceImpl) Record(ctx context.Context, action activitylog.Action, targetID *string, meta activitylog.Meta) error {
	entry := activitylog.Log{Action: action, TargetID: targetID, Meta: meta}
	if userID, err := jwt.UserIDFromContext(ctx); err == nil {
		entry.ActorID = &userID
	} else {
		slog.Warn("activity log without actor", "action", action, "error", err)
	}

	if _, err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record %s: %w", action, err)
	}
	return nil
}

func (s *ActivityLogServiceImpl) List(ctx context.Context, filter activitylog.LogFilter) (activitylog.ListLogResponse, error) {
	if err := filter.Validate(); err != nil {
		return activitylog.ListLogResponse{}, err
	}

	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return activitylog.ListLogResponse{}, err
	}

	resp := make([]activitylog.LogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, toLogResponse(l))
	}

	return activitylog.ListLogResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Logs:       resp,
	}, nil
}

func (s *ActivityLogServiceImpl) Filters(ctx context.Context) (activitylog.FiltersResponse, error) {
	actions, err := s.repo.ListActions(ctx)
	if err != nil {
		return activitylog.FiltersResponse{}, err
	}
	actors, err := s.repo.ListActors(ctx)
	if err != nil {
		return activitylog.FiltersResponse{}, err
	}

	if actions == nil {
		actions = []string{}
	}
	if actors == nil {
		actors = []activitylog.Actor{}
	}
	return activitylog.FiltersResponse{Actions: actions, Actors: actors}, nil
}

// Export renders the filtered log, newest first, capped at MaxExportRows.
func (s *ActivityLogServiceImpl) Export(ctx context.Context, filter activitylog.LogFilter, format export.Format) (export.File, error) {
	if err := filter.Validate(); err != nil {
		return export.File{}, err
	}
	filter.Page, filter.Limit = 1, activitylog.MaxExportRows

	logs, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return export.File{}, err
	}

	table := export.Table{
		Title:    "Log Aktivitas Admin",
		Subtitle: "Diekspor " + s.now().Format("2006-01-02 15:04"),
		Headers:  []string{"Waktu", "Admin", "Aksi", "Target", "Ringkasan"},
	}
	for _, l := range logs {
		table.AddRow(l.At.Format("2006-01-02 15:04:05"), actorName(l), string(l.Action), l.TargetID, l.Summary())
	}

	file, err := export.Render(table, format, "log_aktivitas_"+s.now().Format("20060102_150405"))
	if err != nil {
		return export.File{}, err
	}

	if err := s.Record(ctx, activitylog.ActionExport, nil, activitylog.Meta{
		"what":   "log aktivitas",
		"format": string(format),
		"rows":   len(logs),
	}); err != nil {
		return export.File{}, err
	}
	return file, nil
}

func actorName(l activitylog.Log) string {
	if l.ActorName == nil || *l.ActorName == "" {
		return "-"
	}
	return *l.ActorName
}

func toLogResponse(l activitylog.Log) activitylog.LogResponse {
	meta := l.Meta
	if meta == nil {
		meta = activitylog.Meta{}
	}
	return activitylog.LogResponse{
		ID:        l.ID,
		At:        l.At.Format(time.RFC3339),
		ActorID:   l.ActorID,
		ActorName: actorName(l),
		Action:    l.Action,
		TargetID:  l.TargetID,
		Summary:   l.Summary(),
		Old:       meta["old"],
		New:       meta["new"],
		Meta:      meta,
	}
}
