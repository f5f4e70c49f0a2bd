package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
)

// newAuthFixture wires an auth store against a test backend, with the
// store itself feeding the client's bearer token.
func newAuthFixture(t *testing.T, handler http.Handler) (*AuthStore, *events.Bus) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL)
	bus := events.NewBus()
	t.Cleanup(bus.Shutdown)

	store := NewAuthStore(api.NewAuthAPI(client), bus, nil)
	client.SetTokenSource(store)
	return store, bus
}

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "secret" {
			http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "T", "token_type": "bearer"})
	})
	mux.HandleFunc("/api/v0/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T" {
			http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": "ada@example.com", "username": "ada"})
	})
	return mux
}

func TestAuthStoreLogin(t *testing.T) {
	store, bus := newAuthFixture(t, authBackend(t))

	sessionCh, unsubscribe := bus.Session.Subscribe()
	defer unsubscribe()

	require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret"))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "T", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "ada", store.User().Username)

	event := <-sessionCh
	assert.Equal(t, events.SessionLoggedIn, event.Type)
	assert.Equal(t, "ada@example.com", event.Payload.Username)
}

func TestAuthStoreLoginFailure(t *testing.T) {
	store, _ := newAuthFixture(t, authBackend(t))

	err := store.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
}

func TestAuthStoreLoginFallbackMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{}`, http.StatusBadRequest)
	})
	store, _ := newAuthFixture(t, handler)

	err := store.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Login failed", apiErr.Message)
}

func TestAuthStoreProfileFailureSelfHeals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "T"})
	})
	mux.HandleFunc("/api/v0/auth/me", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	})
	store, _ := newAuthFixture(t, mux)

	// A failing profile fetch resolves to a clean logged-out state, not an
	// error surfaced to the caller.
	require.NoError(t, store.Login(context.Background(), "ada@example.com", "secret"))

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
}

func TestAuthStoreFetchUserProfileWithoutToken(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	store, _ := newAuthFixture(t, handler)

	require.NoError(t, store.FetchUserProfile(context.Background()))
	assert.False(t, called)
}

func TestAuthStoreRefreshFailureForcesLogout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"expired"}`, http.StatusUnauthorized)
	})
	store, _ := newAuthFixture(t, handler)
	store.SetToken("stale")
	store.SetUser(&api.User{Username: "ada"})

	require.NoError(t, store.RefreshToken(context.Background()))
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
}

func TestAuthStoreLogoutIdempotent(t *testing.T) {
	store, bus := newAuthFixture(t, authBackend(t))
	store.SetToken("T")
	store.SetUser(&api.User{Username: "ada"})

	sessionCh, unsubscribe := bus.Session.Subscribe()
	defer unsubscribe()

	store.Logout()
	assert.False(t, store.IsAuthenticated())

	event := <-sessionCh
	assert.Equal(t, events.SessionLoggedOut, event.Type)

	// A second logout publishes nothing
	store.Logout()
	assert.Empty(t, sessionCh)
}

func TestAuthStoreInitializeWithoutToken(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	store, _ := newAuthFixture(t, handler)

	require.NoError(t, store.Initialize(context.Background()))
	assert.False(t, called)
}

func TestAuthStoreInitializeFetchesMissingProfile(t *testing.T) {
	store, _ := newAuthFixture(t, authBackend(t))
	store.SetToken("T")

	require.NoError(t, store.Initialize(context.Background()))
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "ada", store.User().Username)
}

func TestAuthStoreSnapshotRoundTrip(t *testing.T) {
	store, _ := newAuthFixture(t, authBackend(t))
	store.SetToken("T")
	store.SetUser(&api.User{ID: "1", Username: "ada", Email: "ada@example.com"})

	data, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)

	restored, _ := newAuthFixture(t, authBackend(t))
	require.NoError(t, restored.Restore(data))

	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "T", restored.Token())
	assert.Equal(t, "ada", restored.User().Username)
}
