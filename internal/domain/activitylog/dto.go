package activitylog

import (
	"strings"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type LogFilter struct {
	Action    *string `json:"action,omitempty"`
	ActorID   *string `json:"actor_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Search    *string `json:"q,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// MaxExportRows matches the window the log page loads at most.
const MaxExportRows = 2000

func (f *LogFilter) Validate() error {
	errs := validator.DateRange(f.StartDate, f.EndDate)

	if f.Action != nil {
		a := strings.ToUpper(strings.TrimSpace(*f.Action))
		if a == "" {
			f.Action = nil
		} else {
			f.Action = &a
		}
	}
	if f.ActorID != nil && *f.ActorID != "" && !validator.IsValidUUID(*f.ActorID) {
		errs = append(errs, validator.ValidationError{Field: "actor_id", Message: "actor_id must be a valid UUID"})
	}
	if f.Search != nil {
		q := strings.TrimSpace(*f.Search)
		if q == "" {
			f.Search = nil
		} else {
			f.Search = &q
		}
	}

	errs = append(errs, validator.Pagination(&f.Page, &f.Limit, 20, 100)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LogResponse struct {
	ID        int64   `json:"id"`
	At        string  `json:"at"`
	ActorID   *string `json:"actor_id"`
	ActorName string  `json:"actor_name"`
	Action    Action  `json:"action"`
	TargetID  *string `json:"target_id"`
	Summary   string  `json:"summary"`
	Old       any     `json:"old,omitempty"`
	New       any     `json:"new,omitempty"`
	Meta      Meta    `json:"meta"`
}

type ListLogResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Logs       []LogResponse `json:"logs"`
}

type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FiltersResponse struct {
	Actions []string `json:"actions"`
	Actors  []Actor  `json:"actors"`
}
