package api

import (
	"context"
	"net/url"
)

// TrainingDataItem is one backend training corpus entry. The legacy
// per-type fields are kept alongside content because older backends fill
// those instead.
type TrainingDataItem struct {
	ID               string `json:"id"`
	TrainingDataType string `json:"training_data_type"`
	Question         string `json:"question,omitempty"`
	Content          string `json:"content,omitempty"`
	SQL              string `json:"sql,omitempty"`
	DDL              string `json:"ddl,omitempty"`
	Documentation    string `json:"documentation,omitempty"`
}

// TrainRequest adds one training entry: a DDL statement, a documentation
// block, or a question/SQL pair.
type TrainRequest struct {
	DDL           string `json:"ddl,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	Question      string `json:"question,omitempty"`
	SQL           string `json:"sql,omitempty"`
}

// TrainResponse is the status payload returned by training mutations
type TrainResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TrainingListResponse is the backend's training corpus listing
type TrainingListResponse struct {
	TrainingData []TrainingDataItem `json:"training_data"`
	Count        int                `json:"count"`
}

// TrainingAPI groups the training data endpoints
type TrainingAPI struct {
	client *Client
}

// NewTrainingAPI creates the training endpoint group
func NewTrainingAPI(client *Client) *TrainingAPI {
	return &TrainingAPI{client: client}
}

// List fetches all training data
func (t *TrainingAPI) List(ctx context.Context) (*TrainingListResponse, error) {
	var out TrainingListResponse
	if err := t.client.Get(ctx, "/api/v0/training", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add posts a new training entry
func (t *TrainingAPI) Add(ctx context.Context, req TrainRequest) (*TrainResponse, error) {
	var out TrainResponse
	if err := t.client.Post(ctx, "/api/v0/training", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Remove deletes a training entry by id
func (t *TrainingAPI) Remove(ctx context.Context, id string) (*TrainResponse, error) {
	var out TrainResponse
	if err := t.client.Delete(ctx, "/api/v0/training/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
