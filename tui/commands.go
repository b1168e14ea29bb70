package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollStatus creates a command to poll the job status endpoint
func pollStatus(client *JobClient, jobID string) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetJob(jobID)
		return StatusUpdateMsg{
			Status: status,
			Err:    err,
		}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
