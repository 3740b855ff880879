package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsat-prep/diagnostics/internal/diagnostics"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 72, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "off", cfg.LLM.NarrationMode)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)

	assert.Equal(t, diagnostics.DefaultConfig(), cfg.Engine.Diagnostics())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("STYLE_BLOCK_SIZE", "5")
	t.Setenv("LENIENT_CONFIDENCE", "true")
	t.Setenv("COGNITIVE_SKILLS", "deduction, induction ,,analogy")
	t.Setenv("NARRATION", "mock")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "mock", cfg.LLM.NarrationMode)

	eng := cfg.Engine.Diagnostics()
	assert.Equal(t, 5, eng.StyleBlockSize)
	assert.True(t, eng.LenientConfidence)
	assert.Equal(t, []string{"deduction", "induction", "analogy"}, eng.CognitiveSkills)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	path := filepath.Join(t.TempDir(), "diagnostics.yaml")
	content := []byte(`
server:
  log_level: debug
engine:
  style_block_size: 6
  expected_seconds_per_question: 72
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 6, cfg.Engine.StyleBlockSize)
	assert.InDelta(t, 72.0, cfg.Engine.ExpectedSecondsPerQuestion, 1e-9)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"bad log level", map[string]string{"JWT_SECRET": testSecret, "LOG_LEVEL": "chatty"}},
		{"bad port", map[string]string{"JWT_SECRET": testSecret, "PORT": "70000"}},
		{"zero expected time", map[string]string{"JWT_SECRET": testSecret, "EXPECTED_SECONDS_PER_QUESTION": "0"}},
		{"bad narration", map[string]string{"JWT_SECRET": testSecret, "NARRATION": "loud"}},
		{"duplicate skills", map[string]string{"JWT_SECRET": testSecret, "COGNITIVE_SKILLS": "memory,memory"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5433 user=u password=p dbname=n sslmode=disable", d.DSN())
}
