package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
)

// fakeNotifier records success notifications for assertions
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) push(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
}

func (f *fakeNotifier) Info(title, message string)    { f.push(message) }
func (f *fakeNotifier) Success(title, message string) { f.push(message) }
func (f *fakeNotifier) Warning(title, message string) { f.push(message) }
func (f *fakeNotifier) Error(title, message string)   { f.push(message) }

func newTrainingFixture(t *testing.T, handler http.Handler) (*TrainingStore, *fakeNotifier) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	notifier := &fakeNotifier{}
	store := NewTrainingStore(api.NewTrainingAPI(api.NewClient(server.URL)), notifier, nil)
	return store, notifier
}

func TestTrainingStoreFetchNormalizes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"training_data": [
				{"id": "t-1", "training_data_type": "sql", "question": "q", "content": "SELECT 1"},
				{"training_data_type": "ddl", "ddl": "CREATE TABLE x (id int)"},
				{"id": "t-3", "documentation": "users are people"}
			],
			"count": 3
		}`)
	})
	store, _ := newTrainingFixture(t, handler)

	require.NoError(t, store.Fetch(context.Background()))

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 3, store.Count())

	assert.Equal(t, "SELECT 1", items[0].Content)
	assert.Equal(t, TrainingTypeSQL, items[0].Type)

	// Missing id gets a positional placeholder, content falls back to ddl
	assert.Equal(t, "training-1", items[1].ID)
	assert.Equal(t, TrainingTypeDDL, items[1].Type)
	assert.Equal(t, "CREATE TABLE x (id int)", items[1].Content)

	// Missing type defaults to sql, content falls back to documentation
	assert.Equal(t, TrainingTypeSQL, items[2].Type)
	assert.Equal(t, "users are people", items[2].Content)
}

func TestTrainingStoreFetchCountFallsBackToLength(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"training_data": [{"id": "a"}, {"id": "b"}]}`)
	})
	store, _ := newTrainingFixture(t, handler)

	require.NoError(t, store.Fetch(context.Background()))
	assert.Equal(t, 2, store.Count())
	assert.Len(t, store.Items(), store.Count())
}

func TestTrainingStoreFetchFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"unavailable"}`, http.StatusInternalServerError)
	})
	store, notifier := newTrainingFixture(t, handler)

	err := store.Fetch(context.Background())
	require.Error(t, err)

	assert.NotEmpty(t, store.Error())
	assert.False(t, store.IsLoading())
	// The store adds no notification of its own on a failed list
	assert.Empty(t, notifier.messages)
}

func TestTrainingStoreAddRefetches(t *testing.T) {
	var mu sync.Mutex
	added := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/training", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPost {
			var req api.TrainRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "SELECT 2", req.SQL)
			added = true
			fmt.Fprint(w, `{"status": "ok"}`)
			return
		}
		if added {
			fmt.Fprint(w, `{"training_data": [{"id": "t-1", "sql": "SELECT 2"}], "count": 1}`)
			return
		}
		fmt.Fprint(w, `{"training_data": [], "count": 0}`)
	})
	store, notifier := newTrainingFixture(t, mux)

	require.NoError(t, store.Add(context.Background(), api.TrainRequest{Question: "q", SQL: "SELECT 2"}))

	// The authoritative list comes from the reload, not a local insert
	assert.Equal(t, 1, store.Count())
	assert.Len(t, store.Items(), 1)
	require.NotEmpty(t, notifier.messages)
	assert.Equal(t, "Training data added successfully", notifier.messages[0])
}

func TestTrainingStoreRemoveFiltersLocally(t *testing.T) {
	listCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/training", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		fmt.Fprint(w, `{"training_data": [{"id": "a"}, {"id": "b"}], "count": 2}`)
	})
	mux.HandleFunc("/api/v0/training/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok", "message": "gone"}`)
	})
	store, notifier := newTrainingFixture(t, mux)

	require.NoError(t, store.Fetch(context.Background()))
	require.Equal(t, 1, listCalls)

	require.NoError(t, store.Remove(context.Background(), "a"))

	// Optimistic removal: no reload, cache and count adjusted locally
	assert.Equal(t, 1, listCalls)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, 1, store.Count())
	assert.Contains(t, notifier.messages, "gone")
}

func TestTrainingStoreRemoveAbsentIDKeepsCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/training", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"training_data": [{"id": "a"}], "count": 1}`)
	})
	mux.HandleFunc("/api/v0/training/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "ok"}`)
	})
	store, _ := newTrainingFixture(t, mux)

	require.NoError(t, store.Fetch(context.Background()))
	require.NoError(t, store.Remove(context.Background(), "missing"))

	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 1, store.Count())
}

func TestTrainingStoreRemoveFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/training", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"training_data": [{"id": "a"}], "count": 1}`)
	})
	mux.HandleFunc("/api/v0/training/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"nope"}`, http.StatusForbidden)
	})
	store, _ := newTrainingFixture(t, mux)

	require.NoError(t, store.Fetch(context.Background()))
	require.Error(t, store.Remove(context.Background(), "a"))

	// Failed removals leave the cache untouched
	assert.Len(t, store.Items(), 1)
	assert.Equal(t, 1, store.Count())
	assert.NotEmpty(t, store.Error())
}
