package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts any RFC 4122 UUID in its canonical dashed form.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM:SS".
func NormalizeClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !clockRegex.MatchString(s) {
		return "", false
	}
	if len(s) == 5 {
		return s + ":00", true
	}
	return s, true
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// DateRange validates an optional start/end pair. Either bound may be empty;
// when both are given the start must not be after the end.
func DateRange(start, end *string) ValidationErrors {
	var errs ValidationErrors
	var from, to time.Time
	var okFrom, okTo bool

	if start != nil && *start != "" {
		if from, okFrom = IsValidDate(*start); !okFrom {
			errs = append(errs, ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if end != nil && *end != "" {
		if to, okTo = IsValidDate(*end); !okTo {
			errs = append(errs, ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	if okFrom && okTo && from.After(to) {
		errs = append(errs, ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	return errs
}

// Pagination applies the default page and limit and bounds the limit.
func Pagination(page, limit *int, defaultLimit, maxLimit int) ValidationErrors {
	var errs ValidationErrors
	if *page < 0 {
		errs = append(errs, ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if *page == 0 {
		*page = 1
	}
	if *limit < 0 {
		errs = append(errs, ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if *limit == 0 {
		*limit = defaultLimit
	}
	if *limit > maxLimit {
		errs = append(errs, ValidationError{Field: "limit", Message: "limit must not exceed " + strconv.Itoa(maxLimit)})
	}
	return errs
}
