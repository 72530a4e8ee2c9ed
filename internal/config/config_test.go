package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "http://localhost:8000", cfg.CoverageAPI.BaseURL)
	assert.Equal(t, 300, cfg.CoverageAPI.Timeout)
	assert.Equal(t, 0.5, cfg.Planner.TileSizeM)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("COVERAGE_API_BASE_URL", "http://coverage:8000")
	t.Setenv("COVERAGE_API_TIMEOUT_SECONDS", "60")
	t.Setenv("PLANNER_TILE_SIZE_M", "0.25")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "http://coverage:8000", cfg.CoverageAPI.BaseURL)
	assert.Equal(t, 60, cfg.CoverageAPI.Timeout)
	assert.Equal(t, 0.25, cfg.Planner.TileSizeM)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigInvalidNumbers(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("PLANNER_TILE_SIZE_M", "wide")

	// Невалидные значения откатываются к значениям по умолчанию
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Planner.TileSizeM)
}
