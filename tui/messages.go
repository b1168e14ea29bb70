package tui

import "time"

// Messages for the tea program (polling-based)

// StatusUpdateMsg is sent when we receive a job status from the service
type StatusUpdateMsg struct {
	Status *JobStatus
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
