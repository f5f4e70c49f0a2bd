package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken is a fixed-token TokenSource for tests
type staticToken string

func (s staticToken) Token() string { return string(s) }

// recordingNotifier captures notifications for assertions
type recordingNotifier struct {
	levels   []string
	messages []string
}

func (r *recordingNotifier) record(level, message string) {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) Info(title, message string)    { r.record("info", message) }
func (r *recordingNotifier) Success(title, message string) { r.record("success", message) }
func (r *recordingNotifier) Warning(title, message string) { r.record("warning", message) }
func (r *recordingNotifier) Error(title, message string)   { r.record("error", message) }

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(staticToken("tok-123"))

	require.NoError(t, client.Get(context.Background(), "/api/v0/auth/me", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientSkipsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(staticToken(""))

	require.NoError(t, client.Get(context.Background(), "/api/v0/health", nil))
	assert.Empty(t, gotAuth)
}

func TestClientUnauthorizedInvokesHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	client := NewClient(server.URL, WithNotifier(notifier))

	handled := false
	client.SetUnauthorizedHandler(func() { handled = true })

	err := client.Get(context.Background(), "/api/v0/auth/me", nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)

	assert.True(t, handled)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Unauthorized. Please login again.", notifier.messages[0])
	assert.Equal(t, "error", notifier.levels[0])
}

func TestClientErrorNotificationTable(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"forbidden", http.StatusForbidden, `{}`, "Forbidden. You do not have permission."},
		{"not found", http.StatusNotFound, `{}`, "Resource not found."},
		{"server error", http.StatusInternalServerError, `{}`, "Server error. Please try again later."},
		{"other status uses detail", http.StatusUnprocessableEntity, `{"detail":"question is required"}`, "question is required"},
		{"other status without detail", http.StatusTeapot, `{}`, "request failed with status 418"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.status)
			}))
			defer server.Close()

			notifier := &recordingNotifier{}
			client := NewClient(server.URL, WithNotifier(notifier))

			err := client.Get(context.Background(), "/api/v0/query", nil)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)

			require.Len(t, notifier.messages, 1)
			assert.Equal(t, tt.message, notifier.messages[0])
		})
	}
}

func TestClientNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	notifier := &recordingNotifier{}
	client := NewClient(server.URL, WithNotifier(notifier))

	err := client.Get(context.Background(), "/api/v0/health", nil)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.Error(t, apiErr.Unwrap())

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Network error. Please check your connection.", notifier.messages[0])
}

func TestClientDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var out AuthResponse
	require.NoError(t, client.Post(context.Background(), "/api/v0/auth/refresh", nil, &out))
	assert.Equal(t, "abc", out.AccessToken)
	assert.Equal(t, "bearer", out.TokenType)
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "nope", errorDetail([]byte(`{"detail":"nope"}`)))
	assert.Equal(t, "also nope", errorDetail([]byte(`{"message":"also nope"}`)))
	assert.Equal(t, "a", errorDetail([]byte(`{"detail":"a","message":"b"}`)))
	assert.Empty(t, errorDetail([]byte(`not json`)))
}
