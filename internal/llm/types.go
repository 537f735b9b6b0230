package llm

import (
	"context"

	"smart-api-client/internal/types"
)

// TextClient is the text-generation collaborator. Its output is advisory
// everywhere except ExtractMissingFields, and even there a malformed reply is
// an error the caller degrades on, never a crash.
type TextClient interface {
	// Generate performs one raw prompt/completion round trip.
	Generate(ctx context.Context, prompt string) (string, error)

	// GuideFieldEntry phrases conversational guidance for collecting the
	// given required fields.
	GuideFieldEntry(ctx context.Context, fields []types.Field) (string, error)

	// ExplainResponse explains an API response body in plain language.
	ExplainResponse(ctx context.Context, body []byte) (string, error)

	// ExtractMissingFields asks the generator to name the required fields a
	// failure response says are missing. The reply must be a literal JSON
	// array of strings; anything else is an error.
	ExtractMissingFields(ctx context.Context, body []byte) ([]string, error)
}

// Provider performs the raw completion call for a specific backend.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
