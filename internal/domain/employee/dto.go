package employee

import (
	"strings"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name             string  `json:"name"`
	NIP              string  `json:"nip"`
	Position         string  `json:"position"`
	UnitID           string  `json:"unit_id"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	Active           *bool   `json:"active,omitempty"`
}

// Validate trims every field and applies the defaults: ASN, active.
func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.NIP = strings.TrimSpace(r.NIP)
	r.Position = strings.TrimSpace(r.Position)
	r.UnitID = strings.TrimSpace(r.UnitID)

	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateNIP(r.NIP)...)
	errs = append(errs, validatePosition(r.Position)...)

	if validator.IsEmpty(r.UnitID) {
		errs = append(errs, validator.ValidationError{Field: "unit_id", Message: "unit_id is required"})
	} else if !validator.IsValidUUID(r.UnitID) {
		errs = append(errs, validator.ValidationError{Field: "unit_id", Message: "unit_id must be a valid UUID"})
	}

	if r.EmploymentStatus == nil || validator.IsEmpty(*r.EmploymentStatus) {
		s := string(EmploymentStatusASN)
		r.EmploymentStatus = &s
	} else if status, ok := ParseEmploymentStatus(*r.EmploymentStatus); ok {
		s := string(status)
		r.EmploymentStatus = &s
	} else {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "employment_status must be ASN or NON_ASN"})
	}

	if r.Active == nil {
		active := true
		r.Active = &active
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseEmploymentStatus also accepts the legacy spelling "non-ASN".
func ParseEmploymentStatus(v string) (EmploymentStatus, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(v))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	s := EmploymentStatus(normalized)
	return s, s.IsValid()
}

type UpdateEmployeeRequest struct {
	ID               string  `json:"-"`
	Name             *string `json:"name,omitempty"`
	NIP              *string `json:"nip,omitempty"`
	Position         *string `json:"position,omitempty"`
	UnitID           *string `json:"unit_id,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	Active           *bool   `json:"active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}

	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		errs = append(errs, validateName(*r.Name)...)
	}
	if r.NIP != nil {
		*r.NIP = strings.TrimSpace(*r.NIP)
		errs = append(errs, validateNIP(*r.NIP)...)
	}
	if r.Position != nil {
		*r.Position = strings.TrimSpace(*r.Position)
		errs = append(errs, validatePosition(*r.Position)...)
	}
	if r.UnitID != nil {
		*r.UnitID = strings.TrimSpace(*r.UnitID)
		if !validator.IsValidUUID(*r.UnitID) {
			errs = append(errs, validator.ValidationError{Field: "unit_id", Message: "unit_id must be a valid UUID"})
		}
	}
	if r.EmploymentStatus != nil {
		if status, ok := ParseEmploymentStatus(*r.EmploymentStatus); ok {
			s := string(status)
			r.EmploymentStatus = &s
		} else {
			errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "employment_status must be ASN or NON_ASN"})
		}
	}

	if r.Name == nil && r.NIP == nil && r.Position == nil && r.UnitID == nil && r.EmploymentStatus == nil && r.Active == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateName(name string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(name) > 150 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 150 characters"})
	}
	return errs
}

func validateNIP(nip string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(nip) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "nip is required"})
	} else if len(nip) > 30 || strings.ContainsAny(nip, " \t") {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "nip must be at most 30 characters without spaces"})
	}
	return errs
}

func validatePosition(position string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	} else if len(position) > 150 {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position must not exceed 150 characters"})
	}
	return errs
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NIP              string `json:"nip"`
	Position         string `json:"position"`
	UnitID           string `json:"unit_id"`
	UnitName         string `json:"unit_name"`
	EmploymentStatus string `json:"employment_status"`
	Active           bool   `json:"active"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		Name:             e.Name,
		NIP:              e.NIP,
		Position:         e.Position,
		UnitID:           e.UnitID,
		UnitName:         e.UnitName,
		EmploymentStatus: string(e.EmploymentStatus),
		Active:           e.Active,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
}

type EmployeeFilter struct {
	UnitIDs          []string `json:"unit_ids,omitempty"`
	EmploymentStatus *string  `json:"employment_status,omitempty"`
	Active           *bool    `json:"active,omitempty"`
	Search           *string  `json:"q,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // name, position, nip, unit
	SortOrder string `json:"sort_order"` // asc, desc
}

// MaxListLimit lets the attendance wizard load whole units at once.
const MaxListLimit = 1000

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	for _, id := range f.UnitIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "unit_ids", Message: "unit_ids must contain valid UUIDs"})
			break
		}
	}

	if f.EmploymentStatus != nil && *f.EmploymentStatus != "" {
		if status, ok := ParseEmploymentStatus(*f.EmploymentStatus); ok {
			s := string(status)
			f.EmploymentStatus = &s
		} else {
			errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "employment_status must be ASN or NON_ASN"})
		}
	}

	if f.Search != nil {
		q := strings.TrimSpace(*f.Search)
		if q == "" {
			f.Search = nil
		} else {
			f.Search = &q
		}
	}

	errs = append(errs, validator.Pagination(&f.Page, &f.Limit, 20, MaxListLimit)...)

	if f.SortBy == "" {
		f.SortBy = "name"
	}
	if !validator.IsInSlice(f.SortBy, []string{"name", "position", "nip", "unit", "created_at"}) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "sort_by must be one of: name, position, nip, unit, created_at"})
	}

	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be 'asc' or 'desc'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
