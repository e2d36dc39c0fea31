// Package search finds employees and sessions from one free-text query.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type SearchRequest struct {
	Query string `json:"q"`
	Limit int    `json:"limit"`
}

func (r *SearchRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Query = strings.TrimSpace(r.Query)
	if utf8.RuneCountInString(r.Query) < 2 {
		errs = append(errs, validator.ValidationError{Field: "q", Message: "q must be at least 2 characters long"})
	}

	if r.Limit == 0 {
		r.Limit = 5
	}
	if r.Limit < 0 || r.Limit > 20 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be between 1 and 20"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SearchResponse struct {
	Query     string                       `json:"q"`
	Employees []employee.EmployeeResponse  `json:"employees"`
	Sessions  []attendance.SessionResponse `json:"sessions"`
}

type SearchService interface {
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}
