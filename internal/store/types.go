package store

import (
	"encoding/json"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
)

// Query is one asked question with its generated SQL and results. Records
// are immutable once created; updates replace them wholesale.
type Query struct {
	ID        string          `json:"id"`
	Question  string          `json:"question"`
	SQL       string          `json:"sql,omitempty"`
	Results   *api.ResultSet  `json:"results,omitempty"`
	Chart     json.RawMessage `json:"chart,omitempty"`
	Timestamp int64           `json:"timestamp"`
	Error     string          `json:"error,omitempty"`
}

// TrainingDataType classifies a training corpus entry
type TrainingDataType string

const (
	TrainingTypeSQL           TrainingDataType = "sql"
	TrainingTypeDDL           TrainingDataType = "ddl"
	TrainingTypeDocumentation TrainingDataType = "documentation"
)

// TrainingItem is the client's view of one training corpus entry. Content
// is always filled, falling back through the legacy per-type fields.
type TrainingItem struct {
	ID       string           `json:"id"`
	Question string           `json:"question,omitempty"`
	Content  string           `json:"content"`
	Type     TrainingDataType `json:"training_data_type"`

	// Legacy fields kept for backward compatibility with older backends
	SQL           string `json:"sql,omitempty"`
	DDL           string `json:"ddl,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}
