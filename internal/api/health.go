package api

import (
	"context"
	"encoding/json"
)

// HealthResponse reports backend readiness. Database carries whichever of
// the backend's database/engine status fields was present.
type HealthResponse struct {
	Status            string `json:"status"`
	Database          string `json:"database"`
	TrainingDataCount int    `json:"training_data_count"`
	Version           string `json:"version"`
}

// UnmarshalJSON tolerates both the database and legacy vanna_status fields
func (h *HealthResponse) UnmarshalJSON(data []byte) error {
	type alias HealthResponse
	var payload struct {
		alias
		VannaStatus string `json:"vanna_status"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	*h = HealthResponse(payload.alias)
	if h.Database == "" {
		h.Database = payload.VannaStatus
	}
	return nil
}

// Health checks backend readiness
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.Get(ctx, "/api/v0/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
