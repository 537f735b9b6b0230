package llm

import (
	"fmt"

	"smart-api-client/internal/logger"
)

// NewClient creates a text client for the configured provider.
func NewClient(config *Config, logger *logger.Logger) (*Client, error) {
	switch config.Provider {
	case "openai":
		return NewClientWithProvider(NewOpenAIProvider(config), logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
