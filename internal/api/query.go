package api

import (
	"context"
	"encoding/json"
)

// ResultSet is tabular data reshaped into column headers plus row-major
// cells, regardless of which shape the backend produced it in.
type ResultSet struct {
	Columns  []string `json:"columns"`
	Data     [][]any  `json:"data"`
	RowCount int      `json:"rowCount"`
}

// QueryResponse is the normalized result of a query call. Chart is the
// backend's chart payload passed through opaquely.
type QueryResponse struct {
	ID       string
	Question string
	SQL      string
	Results  *ResultSet
	Chart    json.RawMessage
	Error    string
}

// queryEnvelope mirrors the wire response. The backend names fields
// inconsistently across versions (df/results, fig/visualization), so both
// spellings are accepted.
type queryEnvelope struct {
	ID            string          `json:"id"`
	Question      string          `json:"question"`
	SQL           string          `json:"sql"`
	DF            *dataFrame      `json:"df"`
	Results       json.RawMessage `json:"results"`
	Columns       []string        `json:"columns"`
	Fig           json.RawMessage `json:"fig"`
	Visualization json.RawMessage `json:"visualization"`
	Error         string          `json:"error"`
}

// dataFrame is the column-major tabular shape ({columns, data})
type dataFrame struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// UnmarshalJSON normalizes either wire shape into a QueryResponse
func (q *QueryResponse) UnmarshalJSON(data []byte) error {
	var env queryEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*q = QueryResponse{
		ID:       env.ID,
		Question: env.Question,
		SQL:      env.SQL,
		Error:    env.Error,
	}

	switch {
	case env.DF != nil:
		q.Results = &ResultSet{
			Columns:  env.DF.Columns,
			Data:     env.DF.Data,
			RowCount: len(env.DF.Data),
		}
	case len(env.Results) > 0:
		rs, err := resultsFromRecords(env.Results, env.Columns)
		if err != nil {
			return err
		}
		q.Results = rs
	}

	if len(env.Fig) > 0 {
		q.Chart = env.Fig
	} else if len(env.Visualization) > 0 {
		q.Chart = env.Visualization
	}
	return nil
}

// resultsFromRecords converts an array of row objects into a ResultSet.
// Column order follows the explicit columns list when given, otherwise the
// first row's key set.
func resultsFromRecords(raw json.RawMessage, columns []string) (*ResultSet, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		// Already in {columns, data} form
		var df dataFrame
		if err2 := json.Unmarshal(raw, &df); err2 == nil {
			return &ResultSet{Columns: df.Columns, Data: df.Data, RowCount: len(df.Data)}, nil
		}
		return nil, err
	}

	if len(columns) == 0 && len(records) > 0 {
		for key := range records[0] {
			columns = append(columns, key)
		}
	}

	rows := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = record[col]
		}
		rows = append(rows, row)
	}

	return &ResultSet{Columns: columns, Data: rows, RowCount: len(records)}, nil
}

// HistoryItem is one entry of the backend's question log
type HistoryItem struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	SQL       string `json:"sql"`
	Timestamp int64  `json:"timestamp"`
}

// historyList accepts both a bare array and a {questions: [...]} wrapper
type historyList []HistoryItem

// UnmarshalJSON implements the dual-shape decoding
func (h *historyList) UnmarshalJSON(data []byte) error {
	var items []HistoryItem
	if err := json.Unmarshal(data, &items); err == nil {
		*h = items
		return nil
	}

	var wrapped struct {
		Questions []HistoryItem `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*h = wrapped.Questions
	return nil
}

// questionList accepts both a bare string array and a {questions: [...]}
// wrapper
type questionList []string

// UnmarshalJSON implements the dual-shape decoding
func (q *questionList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*q = items
		return nil
	}

	var wrapped struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*q = wrapped.Questions
	return nil
}

// QueryAPI groups the query endpoints
type QueryAPI struct {
	client *Client
}

// NewQueryAPI creates the query endpoint group
func NewQueryAPI(client *Client) *QueryAPI {
	return &QueryAPI{client: client}
}

// Send posts a natural language question and returns the generated SQL
// plus results
func (q *QueryAPI) Send(ctx context.Context, question string) (*QueryResponse, error) {
	var out QueryResponse
	if err := q.client.Post(ctx, "/api/v0/query", map[string]string{"question": question}, &out); err != nil {
		return nil, err
	}
	if out.Question == "" {
		out.Question = question
	}
	return &out, nil
}

// GenerateQuestions fetches suggested starter questions
func (q *QueryAPI) GenerateQuestions(ctx context.Context) ([]string, error) {
	var out questionList
	if err := q.client.Get(ctx, "/api/v0/generate_questions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// History fetches the backend's question log
func (q *QueryAPI) History(ctx context.Context) ([]HistoryItem, error) {
	var out historyList
	if err := q.client.Get(ctx, "/api/v0/get_question_history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateFollowups fetches follow-up suggestions for an answered question
func (q *QueryAPI) GenerateFollowups(ctx context.Context, question, sql string) ([]string, error) {
	body := map[string]string{
		"question": question,
		"sql":      sql,
	}
	var out questionList
	if err := q.client.Post(ctx, "/api/v0/generate_followup_questions", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Load fetches a single query record by id
func (q *QueryAPI) Load(ctx context.Context, id string) (*QueryResponse, error) {
	var out QueryResponse
	if err := q.client.Post(ctx, "/api/v0/load_question", map[string]string{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
