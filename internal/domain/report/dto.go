package report

import (
	"errors"
	"strings"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/aggregate"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

// MaxRangeDays bounds one report to roughly a year of sessions.
const MaxRangeDays = 366

type AttendanceReportRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	UnitID    *string `json:"unit_id,omitempty"`
	Search    *string `json:"q,omitempty"`

	// IncludeIdle adds active employees without any entry in the range.
	IncludeIdle bool `json:"include_idle"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.StartDate)
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}

	to, okTo := validator.IsValidDate(r.EndDate)
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if !okTo {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if okFrom && okTo {
		if from.After(to) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		} else if to.Sub(from) > MaxRangeDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "date range must not exceed 366 days"})
		}
	}

	if r.UnitID != nil {
		id := strings.TrimSpace(*r.UnitID)
		if id == "" {
			r.UnitID = nil
		} else if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "unit_id", Message: "unit_id must be a valid UUID"})
		} else {
			r.UnitID = &id
		}
	}

	if r.Search != nil {
		q := strings.TrimSpace(*r.Search)
		if q == "" {
			r.Search = nil
		} else {
			r.Search = &q
		}
	}

	errs = append(errs, validator.Pagination(&r.Page, &r.Limit, 10, 100)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed bounds. Valid only after Validate succeeded.
func (r *AttendanceReportRequest) Range() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.StartDate)
	to, _ := validator.IsValidDate(r.EndDate)
	return from, to
}

type View string

const (
	ViewEmployee View = "employee"
	ViewUnit     View = "unit"
)

type ExportRequest struct {
	AttendanceReportRequest
	View View `json:"view"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	var verrs validator.ValidationErrors
	if err := r.AttendanceReportRequest.Validate(); errors.As(err, &verrs) {
		errs = append(errs, verrs...)
	}

	switch View(strings.ToLower(string(r.View))) {
	case "", ViewEmployee:
		r.View = ViewEmployee
	case ViewUnit:
		r.View = ViewUnit
	default:
		errs = append(errs, validator.ValidationError{Field: "view", Message: "view must be 'employee' or 'unit'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Pagination struct {
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type AttendanceReport struct {
	Period      Period                  `json:"period"`
	GeneratedAt string                  `json:"generated_at"`
	TotalDays   int                     `json:"total_days"`
	Overall     aggregate.Overall       `json:"overall"`
	ByUnit      []aggregate.UnitRow     `json:"by_unit"`
	ByEmployee  []aggregate.EmployeeRow `json:"by_employee"`
	Pagination  Pagination              `json:"pagination"`
}
