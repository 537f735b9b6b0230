package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Environment Environment    `yaml:"environment"`
	Workflow    WorkflowConfig `yaml:"workflow"`
	HTTP        HTTPConfig     `yaml:"http"`
	Logging     LoggingConfig  `yaml:"logging"`
}

// Environment holds the target API location.
type Environment struct {
	BaseURL string `yaml:"base_url"`
}

// WorkflowConfig holds the endpoints the workflow drives and the repair
// behavior of the per-call retry loop.
type WorkflowConfig struct {
	LoginPath     string       `yaml:"login_path"`
	LoginMethod   string       `yaml:"login_method"`
	JobsPath      string       `yaml:"jobs_path"`
	JobStatusPath string       `yaml:"job_status_path"` // contains a {id} placeholder
	Repair        RepairConfig `yaml:"repair"`
}

// RepairConfig bounds the missing-field repair loop.
type RepairConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// LoadConfig reads the YAML config at path. A missing file is not an error:
// the tool is interactive and runs fine on defaults against localhost.
func LoadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Override base URL from environment variable if set
	if base := os.Getenv("API_BASE_URL"); base != "" {
		config.Environment.BaseURL = base
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Environment.BaseURL == "" {
		c.Environment.BaseURL = "http://localhost:8000"
	}
	if c.Workflow.LoginPath == "" {
		c.Workflow.LoginPath = "/api/login"
	}
	if c.Workflow.JobsPath == "" {
		c.Workflow.JobsPath = "/jobs"
	}
	if c.Workflow.JobStatusPath == "" {
		c.Workflow.JobStatusPath = "/jobs/{id}/status"
	}
	if c.Workflow.Repair.MaxAttempts == 0 {
		c.Workflow.Repair.MaxAttempts = 1
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = 30
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
}
