package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"reelforge/tui"
)

func main() {
	jobID := flag.String("job", "", "job id to watch (required)")
	serviceURL := flag.String("url", "", "render service base URL")
	flag.Parse()

	_ = godotenv.Load()

	if *jobID == "" {
		fmt.Fprintln(os.Stderr, "usage: watch -job <job-id> [-url http://localhost:8000]")
		os.Exit(2)
	}

	url := *serviceURL
	if url == "" {
		url = os.Getenv("RENDER_SERVICE_URL")
	}
	if url == "" {
		url = "http://localhost:8000"
	}

	program := tea.NewProgram(tui.NewModel(url, *jobID))
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
