// Package jobs owns job identity, the status state machine, durable
// status persistence and the background render pipeline.
package jobs

import "time"

// Status tracks a job through its fixed lifecycle:
// pending -> processing -> completed | failed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is the durable record for one render request. Once a job reaches a
// terminal status only deletion touches it.
type Job struct {
	ID          string    `json:"job_id"`
	Status      Status    `json:"status"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Error       string    `json:"error,omitempty"`
	VideoPath   string    `json:"video_path,omitempty"`
	ArtifactKey string    `json:"artifact_key,omitempty"`
	ArtifactURL string    `json:"artifact_url,omitempty"`
}
