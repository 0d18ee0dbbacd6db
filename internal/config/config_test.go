package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-quiz/internal/domain"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
quiz:
  amount: 5
  difficulty: easy
store:
  driver: redis
  redis:
    addr: localhost:6379
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Quiz.Amount)
	assert.Equal(t, domain.DifficultyEasy, cfg.Quiz.Difficulty)
	assert.Equal(t, 10, cfg.Quiz.Category, "unset keys keep their defaults")
	assert.Equal(t, domain.TypeMultiple, cfg.Quiz.Type)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "trivia", cfg.Store.Redis.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "quiz_app.log", cfg.Log.File)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: sqlite\n"), 0o644))

	_, err := Load(path)
	require.ErrorContains(t, err, "unknown store driver")
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, Duration("3s", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("soon", time.Minute))
}
