package dashboard

import (
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/aggregate"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

// TrendDays is the length of the present-count trend ending at the requested date.
const TrendDays = 7

type DashboardRequest struct {
	Date string `json:"date"`
}

// Validate defaults Date to today.
func (r *DashboardRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	if r.Date == "" {
		r.Date = now.Format("2006-01-02")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
	ASN    int64 `json:"asn"`
	NonASN int64 `json:"non_asn"`
}

type TrendPoint struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Present int    `json:"present"`
	Total   int    `json:"total"`
}

type TodaySummary struct {
	Sessions          int               `json:"sessions"`
	Distribution      aggregate.Overall `json:"distribution"`
	PresentPercentage int               `json:"present_percentage"`
}

type DashboardResponse struct {
	Date      string                       `json:"date"`
	UnitCount int                          `json:"unit_count"`
	Employees EmployeeStats                `json:"employees"`
	Today     TodaySummary                 `json:"today"`
	Sessions  []attendance.SessionResponse `json:"sessions"`
	Trend     []TrendPoint                 `json:"trend"`
	Recent    []attendance.EntryResponse   `json:"recent"`
}
