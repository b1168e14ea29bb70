package tui

import (
	"fmt"
	"strings"
)

const progressBarWidth = 30

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🎞️  ReelForge Job Watcher"))
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render("Job: " + m.JobID))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Progress bar
	if m.Status != nil {
		b.WriteString(renderProgressBar(m.Status.Progress))
		b.WriteString("\n\n")
	}

	// Result
	if m.Status != nil && m.Status.Status == "completed" && m.Status.VideoURL != nil {
		result := HighlightStyle.Render("Video ready") + "\n\n" +
			fmt.Sprintf("Download: %s", *m.Status.VideoURL)
		b.WriteString(BoxStyle.Render(result))
		b.WriteString("\n\n")
	}

	// Help text
	if m.Done {
		b.WriteString(HighlightStyle.Render("Press 'q' or Ctrl+C to exit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

// renderProgressBar draws a fixed-width bar for 0..100 progress
func renderProgressBar(progress int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	filled := progress * progressBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return StatusStyle.Render(bar) + InfoStyle.Render(fmt.Sprintf(" %d%%", progress))
}
