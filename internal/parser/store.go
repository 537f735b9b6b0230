package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// SpecStore fetches and holds the OpenAPI document for the target API. The
// document is read-only for the lifetime of a run.
type SpecStore struct {
	baseURL string
	client  *http.Client
	doc     *openapi3.T
}

// NewSpecStore creates a store for the API at baseURL.
func NewSpecStore(baseURL string, timeout time.Duration) *SpecStore {
	return &SpecStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Load fetches the OpenAPI document, probing the standard documentation URLs
// in order and keeping the first one that parses.
func (s *SpecStore) Load(ctx context.Context) error {
	urls := []string{
		fmt.Sprintf("%s/openapi.json", s.baseURL),
		fmt.Sprintf("%s/swagger/v1/swagger.json", s.baseURL),
		fmt.Sprintf("%s/swagger.json", s.baseURL),
		fmt.Sprintf("%s/api/openapi.json", s.baseURL),
	}

	var lastErr error
	for _, url := range urls {
		doc, err := s.fetchDoc(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		s.doc = doc
		fmt.Printf("Loaded OpenAPI document from %s\n", url)
		return nil
	}

	return fmt.Errorf("failed to fetch OpenAPI document from any known URL: %w", lastErr)
}

// Document returns the loaded OpenAPI document, or nil before Load succeeds.
func (s *SpecStore) Document() *openapi3.T {
	return s.doc
}

func (s *SpecStore) fetchDoc(ctx context.Context, url string) (*openapi3.T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI doc: %w", err)
	}

	return doc, nil
}
