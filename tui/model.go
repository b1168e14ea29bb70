package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the watcher state (thin polling client)
type Model struct {
	Client *JobClient
	JobID  string

	// Local UI state (synced from the service)
	Status *JobStatus
	Err    error
	Done   bool

	// Connection status
	Connected bool
}

// NewModel creates a new watcher model
func NewModel(serviceURL, jobID string) Model {
	return Model{
		Client: NewJobClient(serviceURL),
		JobID:  jobID,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		pollStatus(m.Client, m.JobID),
		tickCmd(),
	)
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected {
		return ErrorStyle.Render("❌ Not connected to render service")
	}
	if m.Status == nil {
		return StatusStyle.Render("⏳ Waiting for first status...")
	}

	switch m.Status.Status {
	case "pending":
		return StatusStyle.Render("🕐 Queued, waiting for a render slot...")
	case "processing":
		return StatusStyle.Render("🎬 Rendering video...")
	case "completed":
		return HighlightStyle.Render("✅ COMPLETE")
	case "failed":
		return ErrorStyle.Render(fmt.Sprintf("❌ Failed: %s", m.Status.Error))
	default:
		return StatusStyle.Render(m.Status.Status)
	}
}
