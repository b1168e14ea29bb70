package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// JobClient is a thin HTTP client for the render service's job endpoints
type JobClient struct {
	baseURL string
	client  *http.Client
}

// NewJobClient creates a new job client
func NewJobClient(baseURL string) *JobClient {
	return &JobClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// JobStatus is the JSON response from the status endpoint
type JobStatus struct {
	ID        string    `json:"job_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Error     string    `json:"error,omitempty"`
	VideoURL  *string   `json:"video_url"`
}

// GetJob fetches the current status of a job
func (c *JobClient) GetJob(id string) (*JobStatus, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/job/%s", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get job status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var status JobStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &status, nil
}
