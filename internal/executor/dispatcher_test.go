package executor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-api-client/internal/types"
)

type capturedRequest struct {
	Method      string
	URI         string
	ContentType string
	Body        string
}

func newCaptureServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.Method = r.Method
		captured.URI = r.URL.RequestURI()
		captured.ContentType = r.Header.Get("Content-Type")
		captured.Body = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func payloadOf(pairs ...string) *types.Payload {
	p := types.NewPayload()
	for i := 0; i+1 < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}
	return p
}

func TestDispatchFormBodyIsLiteral(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusOK, `{"ok":true}`)
	d := NewDispatcher(5 * time.Second)

	res, err := d.Dispatch(context.Background(), Request{
		Method:      "post",
		URL:         server.URL + "/api/login",
		Payload:     payloadOf("a", "1", "b", "2"),
		ContentType: ContentTypeForm,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "a=1&b=2", captured.Body)
	assert.Equal(t, ContentTypeForm, captured.ContentType)
}

func TestDispatchJSONBody(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusOK, `{"ok":true}`)
	d := NewDispatcher(5 * time.Second)

	_, err := d.Dispatch(context.Background(), Request{
		Method:  "PUT",
		URL:     server.URL + "/jobs/1/status",
		Payload: payloadOf("status", "done"),
	})

	require.NoError(t, err)
	assert.Equal(t, ContentTypeJSON, captured.ContentType)
	assert.JSONEq(t, `{"status":"done"}`, captured.Body)
}

func TestDispatchGetSendsQueryParams(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusOK, `[]`)
	d := NewDispatcher(5 * time.Second)

	_, err := d.Dispatch(context.Background(), Request{
		Method:  "GET",
		URL:     server.URL + "/jobs",
		Payload: payloadOf("a", "1", "b", "2"),
	})

	require.NoError(t, err)
	assert.Equal(t, "/jobs?a=1&b=2", captured.URI)
	assert.Empty(t, captured.Body)
	assert.Empty(t, captured.ContentType, "GET must not send a body or Content-Type")
}

func TestDispatchNoPayloadNoContentType(t *testing.T) {
	server, captured := newCaptureServer(t, http.StatusOK, `{}`)
	d := NewDispatcher(5 * time.Second)

	_, err := d.Dispatch(context.Background(), Request{
		Method:  "POST",
		URL:     server.URL + "/ping",
		Headers: map[string]string{"Authorization": "Bearer tok"},
	})

	require.NoError(t, err)
	assert.Empty(t, captured.ContentType)
	assert.Empty(t, captured.Body)
}

func TestDispatchUnsupportedMethod(t *testing.T) {
	d := NewDispatcher(5 * time.Second)

	_, err := d.Dispatch(context.Background(), Request{Method: "TRACE", URL: "http://localhost/x"})

	var methodErr *UnsupportedMethodError
	require.ErrorAs(t, err, &methodErr)
	assert.Equal(t, "TRACE", methodErr.Method)
}

func TestDispatchDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(server.Close)
	d := NewDispatcher(5 * time.Second)

	_, err := d.Dispatch(context.Background(), Request{Method: "GET", URL: server.URL})

	var decodeErr *ResponseDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, string(decodeErr.Body), "not json")
}

func TestDispatchEmptyBodyDecodesToEmptyObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)
	d := NewDispatcher(5 * time.Second)

	res, err := d.Dispatch(context.Background(), Request{Method: "DELETE", URL: server.URL})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, map[string]interface{}{}, res.Data)
}

func TestDispatchTransportError(t *testing.T) {
	d := NewDispatcher(time.Second)

	_, err := d.Dispatch(context.Background(), Request{Method: "GET", URL: "http://127.0.0.1:1/unreachable"})

	require.Error(t, err)
	var methodErr *UnsupportedMethodError
	assert.False(t, errors.As(err, &methodErr))
}
