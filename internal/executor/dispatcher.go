package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smart-api-client/internal/types"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// supportedMethods is the set of methods the dispatcher will send.
var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// UnsupportedMethodError reports a request with a method outside the
// supported set.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported HTTP method: %q", e.Method)
}

// ResponseDecodeError reports a response body that could not be decoded as
// JSON.
type ResponseDecodeError struct {
	Body []byte
	Err  error
}

func (e *ResponseDecodeError) Error() string {
	return fmt.Sprintf("failed to decode response body: %v", e.Err)
}

func (e *ResponseDecodeError) Unwrap() error {
	return e.Err
}

// Request is one resolved call for the dispatcher to send.
type Request struct {
	Method      string
	URL         string
	Payload     *types.Payload
	Headers     map[string]string
	ContentType string
}

// Result is the decoded outcome of a dispatched request.
type Result struct {
	StatusCode int
	Raw        []byte
	Data       interface{}
}

// Dispatcher builds and sends one HTTP request at a time.
type Dispatcher struct {
	client *http.Client
}

// NewDispatcher creates a dispatcher whose requests time out after timeout.
func NewDispatcher(timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Dispatch sends the request and returns the decoded response.
//
// The method is case-normalized. GET requests carry the payload as query
// parameters, never as a body. Form payloads serialize as literal key=value
// pairs joined by & with no percent-encoding, so values containing reserved
// characters will not survive the wire intact. The Content-Type header is set
// only when a body is actually sent.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if !supportedMethods[method] {
		return nil, &UnsupportedMethodError{Method: req.Method}
	}

	url := req.URL
	hasPayload := req.Payload != nil && req.Payload.Len() > 0

	var body io.Reader
	contentType := ""
	if hasPayload {
		if method == http.MethodGet {
			url = fmt.Sprintf("%s?%s", url, joinPairs(req.Payload))
		} else if req.ContentType == ContentTypeForm {
			contentType = ContentTypeForm
			body = strings.NewReader(joinPairs(req.Payload))
		} else {
			bodyBytes, err := json.Marshal(req.Payload.Map())
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			contentType = ContentTypeJSON
			body = bytes.NewReader(bodyBytes)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	result := &Result{StatusCode: resp.StatusCode, Raw: raw}
	if len(bytes.TrimSpace(raw)) == 0 {
		// 204-style responses decode to an empty object
		result.Data = map[string]interface{}{}
		return result, nil
	}
	if err := json.Unmarshal(raw, &result.Data); err != nil {
		return nil, &ResponseDecodeError{Body: raw, Err: err}
	}

	return result, nil
}

// joinPairs serializes the payload as key=value pairs joined by &, in
// insertion order, with no percent-encoding.
func joinPairs(payload *types.Payload) string {
	pairs := make([]string, 0, payload.Len())
	for _, key := range payload.Keys() {
		value, _ := payload.Get(key)
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, value))
	}
	return strings.Join(pairs, "&")
}
