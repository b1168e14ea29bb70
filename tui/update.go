package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case TickMsg:
		if m.Done {
			return m, nil
		}
		return m, tea.Batch(pollStatus(m.Client, m.JobID), tickCmd())
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	return m, nil
}

// handleStatusUpdate processes a polled job status
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}

	m.Connected = true
	m.Err = nil
	m.Status = msg.Status

	if msg.Status.Status == "completed" || msg.Status.Status == "failed" {
		m.Done = true
	}
	return m, nil
}
