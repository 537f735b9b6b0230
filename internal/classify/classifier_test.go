package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-api-client/internal/types"
)

// fakeText scripts the generator's missing-field extraction.
type fakeText struct {
	fields []string
	err    error
	calls  int
}

func (f *fakeText) Generate(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (f *fakeText) GuideFieldEntry(ctx context.Context, fields []types.Field) (string, error) {
	return "", nil
}

func (f *fakeText) ExplainResponse(ctx context.Context, body []byte) (string, error) {
	return "", nil
}

func (f *fakeText) ExtractMissingFields(ctx context.Context, body []byte) ([]string, error) {
	f.calls++
	return f.fields, f.err
}

func TestIndicatesMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"missing entry", `{"detail":[{"type":"value_error.missing","loc":["body","username"]}]}`, true},
		{"other error type", `{"detail":[{"type":"type_error.integer","loc":["body","age"]}]}`, false},
		{"no detail key", `{"error":"boom"}`, false},
		{"detail not a list", `{"detail":"unauthorized"}`, false},
		{"empty body", ``, false},
		{"success body", `{"access_token":"abc"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndicatesMissingFields([]byte(tt.body)))
		})
	}
}

func TestClassifyStructuredPath(t *testing.T) {
	text := &fakeText{}
	c := New(text)

	body := `{"detail":[
		{"type":"value_error.missing","loc":["body","username"]},
		{"type":"type_error.integer","loc":["body","age"]},
		{"type":"missing","loc":["body","password"]}
	]}`

	got := c.Classify(context.Background(), []byte(body))

	assert.Equal(t, []string{"username", "password"}, got)
	assert.Zero(t, text.calls, "structured walk must not consult the generator")
}

func TestClassifySingleField(t *testing.T) {
	c := New(&fakeText{})

	body := `{"detail":[{"type":"value_error.missing","loc":["body","username"]}]}`
	assert.Equal(t, []string{"username"}, c.Classify(context.Background(), []byte(body)))
}

func TestClassifyFallsBackToGenerator(t *testing.T) {
	text := &fakeText{fields: []string{"username", "password"}}
	c := New(text)

	got := c.Classify(context.Background(), []byte(`{"error":"username and password are required"}`))

	assert.Equal(t, []string{"username", "password"}, got)
	assert.Equal(t, 1, text.calls)
}

func TestClassifyFallbackFailureDegradesToEmpty(t *testing.T) {
	text := &fakeText{err: fmt.Errorf("response is not a JSON string array")}
	c := New(text)

	got := c.Classify(context.Background(), []byte(`{"error":"boom"}`))

	assert.Empty(t, got)
}

func TestClassifyFallbackDropsEmptyNames(t *testing.T) {
	text := &fakeText{fields: []string{"", "token", ""}}
	c := New(text)

	got := c.Classify(context.Background(), []byte(`{"error":"boom"}`))

	assert.Equal(t, []string{"token"}, got)
}

func TestClassifyIgnoresEntriesWithoutLocation(t *testing.T) {
	text := &fakeText{}
	c := New(text)

	body := `{"detail":[{"type":"value_error.missing","loc":[]},{"type":"value_error.missing","loc":["body","password"]}]}`
	assert.Equal(t, []string{"password"}, c.Classify(context.Background(), []byte(body)))
}
