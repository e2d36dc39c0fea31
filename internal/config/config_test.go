package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/presensi")
	t.Setenv("JWT_SECRET_KEY", "dev-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://presensi.pupr.go.id, http://localhost:5173,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/presensi", cfg.DatabaseURL())
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, []string{"https://presensi.pupr.go.id", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Seed.Enabled())

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_DatabaseURLFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PASSWORD", "rahasia")
	t.Setenv("DB_NAME", "presensi")
	t.Setenv("JWT_SECRET_KEY", "dev-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://postgres:rahasia@pg:5432/presensi?sslmode=disable", cfg.DatabaseURL())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"missing database", Config{JWT: JWTConfig{Secret: "s"}, App: AppConfig{LogLevel: "info"}}, false},
		{"missing secret", Config{Database: DatabaseConfig{URL: "postgres://x"}, App: AppConfig{LogLevel: "info"}}, false},
		{"short secret in production", Config{Database: DatabaseConfig{URL: "postgres://x"}, JWT: JWTConfig{Secret: "short"}, App: AppConfig{Env: "production", LogLevel: "info"}}, false},
		{"bad log level", Config{Database: DatabaseConfig{URL: "postgres://x"}, JWT: JWTConfig{Secret: "s"}, App: AppConfig{LogLevel: "verbose"}}, false},
		{"ok", Config{Database: DatabaseConfig{URL: "postgres://x"}, JWT: JWTConfig{Secret: "s"}, App: AppConfig{LogLevel: "debug"}}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSeedConfig_Enabled(t *testing.T) {
	assert.True(t, SeedConfig{AdminEmail: "admin@pupr.go.id", AdminPassword: "x"}.Enabled())
	assert.False(t, SeedConfig{AdminEmail: "admin@pupr.go.id"}.Enabled())
}
