// Package settings holds per-admin preferences for the attendance wizard.
package settings

import (
	"context"
	"strings"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

type Settings struct {
	UserID        string
	DefaultStatus attendance.Status
	NotesTemplate string
	UpdatedAt     time.Time
}

// Default is returned for admins that never saved their preferences.
func Default(userID string) Settings {
	return Settings{UserID: userID, DefaultStatus: attendance.StatusPresent}
}

type UpdateSettingsRequest struct {
	DefaultStatus string `json:"default_status"`
	NotesTemplate string `json:"notes_template"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if status, err := attendance.ParseStatus(r.DefaultStatus); err != nil {
		errs = append(errs, validator.ValidationError{Field: "default_status", Message: "default_status must be one of HADIR, IZIN, SAKIT, DL, TK"})
	} else {
		r.DefaultStatus = string(status)
	}

	r.NotesTemplate = strings.TrimSpace(r.NotesTemplate)
	if len(r.NotesTemplate) > 500 {
		errs = append(errs, validator.ValidationError{Field: "notes_template", Message: "notes_template must not exceed 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	DefaultStatus attendance.Status `json:"default_status"`
	NotesTemplate string            `json:"notes_template"`
	UpdatedAt     *string           `json:"updated_at"`
}

type SettingsRepository interface {
	// Get returns Default when the admin has no stored settings.
	Get(ctx context.Context, userID string) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
