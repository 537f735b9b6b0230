package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Environment.BaseURL)
	assert.Equal(t, "/api/login", cfg.Workflow.LoginPath)
	assert.Equal(t, "/jobs", cfg.Workflow.JobsPath)
	assert.Equal(t, "/jobs/{id}/status", cfg.Workflow.JobStatusPath)
	assert.Equal(t, 1, cfg.Workflow.Repair.MaxAttempts)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, "logs", cfg.Logging.Dir)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
environment:
  base_url: http://api.internal:9000
workflow:
  login_path: /auth/token
  repair:
    max_attempts: 3
http:
  timeout_seconds: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", cfg.Environment.BaseURL)
	assert.Equal(t, "/auth/token", cfg.Workflow.LoginPath)
	assert.Equal(t, 3, cfg.Workflow.Repair.MaxAttempts)
	assert.Equal(t, 10, cfg.HTTP.TimeoutSeconds)
	// Unset values still get defaults
	assert.Equal(t, "/jobs", cfg.Workflow.JobsPath)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://override:8080")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://override:8080", cfg.Environment.BaseURL)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
