package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"smart-api-client/internal/llm"
	"smart-api-client/internal/types"
)

// InputSource supplies one value per prompt. Abstracted so tests can script
// answers instead of blocking on a terminal.
type InputSource interface {
	Ask(prompt string) (string, error)
}

// ConsoleInput prompts on the terminal with a one-field form.
type ConsoleInput struct{}

// Ask implements the InputSource interface.
func (ConsoleInput) Ask(prompt string) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(prompt).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("input prompt failed: %w", err)
	}
	return value, nil
}

// Collector turns required fields into concrete values by prompting the user,
// with conversational guidance phrased by the text generator.
type Collector struct {
	text  llm.TextClient
	input InputSource
}

// New creates a collector.
func New(text llm.TextClient, input InputSource) *Collector {
	return &Collector{text: text, input: input}
}

// Collect obtains one value per field, in the order given. The generated
// guidance is advisory only: the prompt loop runs even when generation fails
// or returns nothing usable. Values are passed through as captured; the
// remote API is the authority on types.
func (c *Collector) Collect(ctx context.Context, fields []types.Field) (*types.Payload, error) {
	payload := types.NewPayload()
	if len(fields) == 0 {
		return payload, nil
	}

	if guidance, err := c.text.GuideFieldEntry(ctx, fields); err == nil && strings.TrimSpace(guidance) != "" {
		fmt.Println(guidance)
	}

	for _, field := range fields {
		value, err := c.input.Ask(fmt.Sprintf("%s (%s)", field.Name, field.Type))
		if err != nil {
			return nil, fmt.Errorf("failed to collect %s: %w", field.Name, err)
		}
		payload.Set(field.Name, value)
	}

	return payload, nil
}

// CollectHeaders obtains one value per required header.
func (c *Collector) CollectHeaders(ctx context.Context, headers []types.Field) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	values := make(map[string]string, len(headers))
	for _, header := range headers {
		value, err := c.input.Ask(fmt.Sprintf("%s (%s)", header.Name, header.Type))
		if err != nil {
			return nil, fmt.Errorf("failed to collect header %s: %w", header.Name, err)
		}
		values[header.Name] = value
	}

	return values, nil
}

// Ask prompts once with the given text, for repair and selection prompts that
// do not come from a resolved schema.
func (c *Collector) Ask(prompt string) (string, error) {
	return c.input.Ask(prompt)
}
