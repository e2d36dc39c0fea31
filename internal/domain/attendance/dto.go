package attendance

import (
	"strings"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

// CreateSessionRequest opens a new roll call.
type CreateSessionRequest struct {
	Date        string  `json:"date"`       // YYYY-MM-DD
	StartTime   string  `json:"start_time"` // HH:MM or HH:MM:SS
	EndTime     string  `json:"end_time"`
	Description *string `json:"description,omitempty"`
}

// Validate checks the fields and normalises both times to HH:MM:SS.
func (r *CreateSessionRequest) Validate() error {
	errs := validateSessionFields(&r.Date, &r.StartTime, &r.EndTime)
	r.Description = trimOptional(r.Description)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSessionRequest struct {
	ID          string  `json:"-"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	errs = append(errs, validateSessionFields(&r.Date, &r.StartTime, &r.EndTime)...)
	r.Description = trimOptional(r.Description)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateSessionFields(date, start, end *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	*date = strings.TrimSpace(*date)
	if validator.IsEmpty(*date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, ok := validator.IsValidDate(*date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	startOK, endOK := false, false
	if validator.IsEmpty(*start) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is required"})
	} else if normalized, ok := validator.NormalizeClock(*start); ok {
		*start, startOK = normalized, true
	} else {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}

	if validator.IsEmpty(*end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time is required"})
	} else if normalized, ok := validator.NormalizeClock(*end); ok {
		*end, endOK = normalized, true
	} else {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}

	// zero-padded HH:MM:SS compares correctly as text
	if startOK && endOK && *end <= *start {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be after start_time"})
	}

	return errs
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// BulkSetRequest assigns one status to a list of employees in a session.
type BulkSetRequest struct {
	SessionID   string   `json:"session_id"`
	EmployeeIDs []string `json:"employee_ids"`
	Status      string   `json:"status"`
	Note        *string  `json:"note,omitempty"`

	parsedStatus Status
}

func (r *BulkSetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.SessionID) {
		errs = append(errs, validator.ValidationError{Field: "session_id", Message: "session_id must be a valid UUID"})
	}

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "employee_ids must not be empty"})
	} else {
		ids, bad := dedupeIDs(r.EmployeeIDs)
		if bad {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "employee_ids must contain valid UUIDs"})
		}
		r.EmployeeIDs = ids
	}

	status, err := ParseStatus(r.Status)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of HADIR, IZIN, SAKIT, DL, TK"})
	}
	r.parsedStatus = status
	r.Note = trimOptional(r.Note)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedStatus is valid only after Validate succeeded.
func (r *BulkSetRequest) ParsedStatus() Status {
	return r.parsedStatus
}

// dedupeIDs trims ids, drops repeats and reports whether any id is malformed.
func dedupeIDs(ids []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	bad := false
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if !validator.IsValidUUID(id) {
			bad = true
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, bad
}

type BulkSetResponse struct {
	SessionID string `json:"session_id"`
	Status    Status `json:"status"`
	Affected  int64  `json:"affected"`
}

// OverwriteRequest replaces every entry of a session with the given buckets.
type OverwriteRequest struct {
	SessionID      string   `json:"session_id"`
	Present        []string `json:"hadir"`
	Leave          []string `json:"izin"`
	Sick           []string `json:"sakit"`
	OfficialTravel []string `json:"dl"`
	Absent         []string `json:"tk"`
}

// Buckets returns the employee ids per status in display order.
func (r *OverwriteRequest) Buckets() []Bucket {
	return []Bucket{
		{Status: StatusPresent, EmployeeIDs: r.Present},
		{Status: StatusLeave, EmployeeIDs: r.Leave},
		{Status: StatusSick, EmployeeIDs: r.Sick},
		{Status: StatusOfficialTravel, EmployeeIDs: r.OfficialTravel},
		{Status: StatusAbsent, EmployeeIDs: r.Absent},
	}
}

type Bucket struct {
	Status      Status
	EmployeeIDs []string
}

func (r *OverwriteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{Field: "session_id", Message: "session_id is required"})
	} else if !validator.IsValidUUID(r.SessionID) {
		errs = append(errs, validator.ValidationError{Field: "session_id", Message: "session_id must be a valid UUID"})
	}

	owner := make(map[string]Status)
	lists := []*[]string{&r.Present, &r.Leave, &r.Sick, &r.OfficialTravel, &r.Absent}
	for i, list := range lists {
		status := Statuses[i]
		field := strings.ToLower(string(status))
		ids, bad := dedupeIDs(*list)
		if bad {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must contain valid UUIDs"})
		}
		for _, id := range ids {
			if prev, ok := owner[id]; ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "employee " + id + " is already listed as " + string(prev),
				})
				continue
			}
			owner[id] = status
		}
		*list = ids
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverwriteResponse struct {
	SessionID string         `json:"session_id"`
	Counts    map[Status]int `json:"counts"`
}

type SessionResponse struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	Description *string        `json:"description"`
	CreatedBy   *string        `json:"created_by"`
	CreatorName *string        `json:"creator_name,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Counts      map[Status]int `json:"counts,omitempty"`
	Total       int            `json:"total"`
}

type SessionDetailResponse struct {
	SessionResponse
	Entries []EntryResponse `json:"entries"`
}

type EntryResponse struct {
	ID           string  `json:"id"`
	SessionID    string  `json:"session_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	NIP          string  `json:"nip"`
	UnitID       string  `json:"unit_id"`
	UnitName     string  `json:"unit_name"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Description  *string `json:"description"`
	Status       Status  `json:"status"`
	Note         *string `json:"note"`
	CreatorName  *string `json:"creator_name"`
}

type SessionFilter struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *SessionFilter) Validate() error {
	errs := validator.DateRange(f.StartDate, f.EndDate)
	errs = append(errs, validator.Pagination(&f.Page, &f.Limit, 20, 100)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListSessionResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Sessions   []SessionResponse `json:"sessions"`
}

// EntryFilter drives the all-attendance table and its export.
type EntryFilter struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	UnitID    *string `json:"unit_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	Search    *string `json:"q,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	// SortOrder applies to date then start time. Defaults to desc.
	SortOrder string `json:"sort_order"`
}

// MaxExportRows caps the number of rows a single export may contain.
const MaxExportRows = 10000

func (f *EntryFilter) Validate() error {
	errs := validator.DateRange(f.StartDate, f.EndDate)

	if f.UnitID != nil && *f.UnitID != "" && !validator.IsValidUUID(*f.UnitID) {
		errs = append(errs, validator.ValidationError{Field: "unit_id", Message: "unit_id must be a valid UUID"})
	}
	if f.Status != nil && *f.Status != "" {
		status, err := ParseStatus(*f.Status)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of HADIR, IZIN, SAKIT, DL, TK"})
		} else {
			s := string(status)
			f.Status = &s
		}
	}
	if f.Search != nil {
		f.Search = trimOptional(f.Search)
	}

	switch strings.ToLower(f.SortOrder) {
	case "":
		f.SortOrder = "desc"
	case "asc", "desc":
		f.SortOrder = strings.ToLower(f.SortOrder)
	default:
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be 'asc' or 'desc'"})
	}

	errs = append(errs, validator.Pagination(&f.Page, &f.Limit, 20, 100)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEntryResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Entries    []EntryResponse `json:"entries"`
}

// NewSessionResponse renders s with counts. A nil counts map renders as zeros.
func NewSessionResponse(s Session, counts map[Status]int) SessionResponse {
	full := make(map[Status]int, len(Statuses))
	total := 0
	for _, st := range Statuses {
		full[st] = counts[st]
		total += counts[st]
	}

	return SessionResponse{
		ID:          s.ID,
		Date:        s.Date.Format("2006-01-02"),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Description: s.Description,
		CreatedBy:   s.CreatedBy,
		CreatorName: s.CreatorName,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
		Counts:      full,
		Total:       total,
	}
}

func NewEntryResponse(r EntryRow) EntryResponse {
	return EntryResponse{
		ID:           r.EntryID,
		SessionID:    r.SessionID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.Name,
		NIP:          r.NIP,
		UnitID:       r.UnitID,
		UnitName:     r.UnitName,
		Date:         r.Date.Format("2006-01-02"),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Description:  r.Description,
		Status:       r.Status,
		Note:         r.Note,
		CreatorName:  r.CreatorName,
	}
}
