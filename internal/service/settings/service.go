package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/settings"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
)

type SettingsServiceImpl struct {
	repo settings.SettingsRepository
}

func NewSettingsService(repo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{repo: repo}
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	st, err := s.repo.Get(ctx, userID)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return toResponse(st), nil
}

// UpdateSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	st, err := s.repo.Upsert(ctx, settings.Settings{
		UserID:        userID,
		DefaultStatus: attendance.Status(req.DefaultStatus),
		NotesTemplate: req.NotesTemplate,
	})
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return toResponse(st), nil
}

func toResponse(st settings.Settings) settings.SettingsResponse {
	res := settings.SettingsResponse{
		DefaultStatus: st.DefaultStatus,
		NotesTemplate: st.NotesTemplate,
	}
	if !st.UpdatedAt.IsZero() {
		at := st.UpdatedAt.Format(time.RFC3339)
		res.UpdatedAt = &at
	}
	return res
}
