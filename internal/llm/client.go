package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"smart-api-client/internal/logger"
	"smart-api-client/internal/types"
)

// Client implements TextClient on top of a Provider, building the domain
// prompts and logging every interaction.
type Client struct {
	provider Provider
	logger   *logger.Logger
}

// NewClientWithProvider wires a client to an already-constructed provider.
func NewClientWithProvider(provider Provider, logger *logger.Logger) *Client {
	return &Client{provider: provider, logger: logger}
}

// Generate implements the TextClient interface.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := c.provider.Complete(ctx, prompt)
	c.logger.LogLLMInteraction("Generate", prompt, response, err)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	return response, nil
}

// GuideFieldEntry implements the TextClient interface.
func (c *Client) GuideFieldEntry(ctx context.Context, fields []types.Field) (string, error) {
	var schema strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&schema, "- %s (%s)\n", f.Name, f.Type)
	}

	prompt := fmt.Sprintf(`Given the following API request schema:

%s
Act as an interactive API assistant. Guide the user step by step by asking for each required field in a conversational way.
Ask clear and concise questions for each field type (e.g., if it's an integer, specify that).`,
		schema.String())

	response, err := c.provider.Complete(ctx, prompt)
	c.logger.LogLLMInteraction("GuideFieldEntry", fields, response, err)
	if err != nil {
		return "", fmt.Errorf("failed to generate field guidance: %w", err)
	}
	return response, nil
}

// ExplainResponse implements the TextClient interface.
func (c *Client) ExplainResponse(ctx context.Context, body []byte) (string, error) {
	prompt := fmt.Sprintf("Explain this API response in simple terms: %s", body)

	response, err := c.provider.Complete(ctx, prompt)
	c.logger.LogLLMInteraction("ExplainResponse", string(body), response, err)
	if err != nil {
		return "", fmt.Errorf("failed to explain response: %w", err)
	}
	return response, nil
}

// ExtractMissingFields implements the TextClient interface.
func (c *Client) ExtractMissingFields(ctx context.Context, body []byte) ([]string, error) {
	prompt := fmt.Sprintf(`Given the following API response:

%s

Extract the list of missing fields that are required by the API. Return only the list of field names as a JSON array of strings, formatted exactly like this: ["field1", "field2", "field3"].
Do not include any additional text or explanations.`, body)

	response, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		c.logger.LogLLMInteraction("ExtractMissingFields", string(body), nil, err)
		return nil, fmt.Errorf("failed to extract missing fields: %w", err)
	}

	fields, err := parseFieldList(response)
	c.logger.LogLLMInteraction("ExtractMissingFields", string(body), fields, err)
	if err != nil {
		return nil, fmt.Errorf("failed to parse field list: %w", err)
	}
	return fields, nil
}

// parseFieldList parses the generator's reply as a literal JSON array of
// strings. The reply is never evaluated as anything richer; a reply that is
// not exactly an array of strings is a parse error.
func parseFieldList(response string) ([]string, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var fields []string
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("response is not a JSON string array: %w", err)
	}
	return fields, nil
}
