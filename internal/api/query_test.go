package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryResponseDecodesDataFrameShape(t *testing.T) {
	payload := `{
		"id": "q1",
		"question": "How many users?",
		"sql": "SELECT COUNT(*) FROM users",
		"df": {"columns": ["count"], "data": [[42]]},
		"fig": {"type": "bar"}
	}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	assert.Equal(t, "q1", resp.ID)
	assert.Equal(t, "SELECT COUNT(*) FROM users", resp.SQL)
	require.NotNil(t, resp.Results)
	assert.Equal(t, []string{"count"}, resp.Results.Columns)
	assert.Equal(t, 1, resp.Results.RowCount)
	assert.JSONEq(t, `{"type":"bar"}`, string(resp.Chart))
}

func TestQueryResponseDecodesRecordShape(t *testing.T) {
	payload := `{
		"sql": "SELECT name, age FROM users",
		"results": [{"name": "ada", "age": 36}, {"name": "linus", "age": 54}],
		"columns": ["name", "age"],
		"visualization": {"type": "table"}
	}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	require.NotNil(t, resp.Results)
	assert.Equal(t, []string{"name", "age"}, resp.Results.Columns)
	assert.Equal(t, 2, resp.Results.RowCount)
	assert.Equal(t, "ada", resp.Results.Data[0][0])
	assert.JSONEq(t, `{"type":"table"}`, string(resp.Chart))
}

func TestQueryResponseDecodesRecordShapeWithoutColumns(t *testing.T) {
	payload := `{"results": [{"total": 7}]}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	require.NotNil(t, resp.Results)
	assert.Equal(t, []string{"total"}, resp.Results.Columns)
	assert.Equal(t, float64(7), resp.Results.Data[0][0])
}

func TestQueryResponseDecodesNestedDataFrameResults(t *testing.T) {
	payload := `{"results": {"columns": ["n"], "data": [[1], [2]]}}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	require.NotNil(t, resp.Results)
	assert.Equal(t, 2, resp.Results.RowCount)
}

func TestQueryResponseWithoutResults(t *testing.T) {
	payload := `{"sql": "SELECT 1", "error": "execution disabled"}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	assert.Nil(t, resp.Results)
	assert.Nil(t, resp.Chart)
	assert.Equal(t, "execution disabled", resp.Error)
}

func TestQuestionListShapes(t *testing.T) {
	var bare questionList
	require.NoError(t, json.Unmarshal([]byte(`["a", "b"]`), &bare))
	assert.Equal(t, questionList{"a", "b"}, bare)

	var wrapped questionList
	require.NoError(t, json.Unmarshal([]byte(`{"questions": ["c"]}`), &wrapped))
	assert.Equal(t, questionList{"c"}, wrapped)
}

func TestHistoryListShapes(t *testing.T) {
	var bare historyList
	require.NoError(t, json.Unmarshal([]byte(`[{"id": "1", "question": "q"}]`), &bare))
	require.Len(t, bare, 1)
	assert.Equal(t, "q", bare[0].Question)

	var wrapped historyList
	require.NoError(t, json.Unmarshal([]byte(`{"questions": [{"id": "2"}]}`), &wrapped))
	require.Len(t, wrapped, 1)
	assert.Equal(t, "2", wrapped[0].ID)
}

func TestQueryAPISendFillsQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/query", r.URL.Path)
		w.Write([]byte(`{"sql": "SELECT 1"}`))
	}))
	defer server.Close()

	queries := NewQueryAPI(NewClient(server.URL))
	resp, err := queries.Send(context.Background(), "what is one?")
	require.NoError(t, err)

	assert.Equal(t, "what is one?", resp.Question)
	assert.Equal(t, "SELECT 1", resp.SQL)
}

func TestTrainingAPIRemoveEscapesID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	training := NewTrainingAPI(NewClient(server.URL))
	_, err := training.Remove(context.Background(), "id with/slash")
	require.NoError(t, err)

	assert.Equal(t, "/api/v0/training/id%20with%2Fslash", gotPath)
}

func TestHealthResponseToleratesVannaStatus(t *testing.T) {
	var legacy HealthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"status": "ok", "vanna_status": "connected"}`), &legacy))
	assert.Equal(t, "connected", legacy.Database)

	var current HealthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"status": "ok", "database": "postgres"}`), &current))
	assert.Equal(t, "postgres", current.Database)
}
