package llm

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the configuration for the text-generation collaborator.
type Config struct {
	// Provider specifies which provider to use (e.g., "openai")
	Provider string `json:"provider"`

	// APIKey is the API key for the provider
	APIKey string `json:"api_key"`

	// Model specifies which model to use (e.g., "gpt-4")
	Model string `json:"model"`

	// BaseURL is optional; set it to point at any OpenAI-compatible
	// endpoint, such as a local Ollama gateway
	BaseURL string `json:"base_url"`

	// Temperature controls the randomness of the output (0.0 to 1.0)
	Temperature float64 `json:"temperature"`

	// MaxTokens limits the length of the generated response
	MaxTokens int `json:"max_tokens"`
}

// NewDefaultConfig returns a default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		Model:       "gpt-4",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

// LoadConfig loads the text-generation configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read LLM config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse LLM config: %w", err)
	}

	if config.Provider == "" {
		return nil, fmt.Errorf("LLM provider is required")
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	// Allow the key from the environment so it stays out of the file
	if config.APIKey == "" {
		config.APIKey = os.Getenv("LLM_API_KEY")
	}

	return &config, nil
}
