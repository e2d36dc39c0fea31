package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/settings"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context, userID string) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT user_id, default_status, notes_template, updated_at FROM admin_settings WHERE user_id = $1`

	var s settings.Settings
	err := q.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.DefaultStatus, &s.NotesTemplate, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Default(userID), nil
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admin_settings (user_id, default_status, notes_template)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET default_status = EXCLUDED.default_status, notes_template = EXCLUDED.notes_template, updated_at = NOW()
		RETURNING user_id, default_status, notes_template, updated_at
	`

	var saved settings.Settings
	err := q.QueryRow(ctx, query, s.UserID, string(s.DefaultStatus), s.NotesTemplate).
		Scan(&saved.UserID, &saved.DefaultStatus, &saved.NotesTemplate, &saved.UpdatedAt)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return saved, nil
}
