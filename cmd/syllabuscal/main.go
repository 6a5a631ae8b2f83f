package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/htran/syllabuscal/internal/app"
	"github.com/htran/syllabuscal/internal/model"
	"github.com/htran/syllabuscal/internal/store"
)

func main() {
	configPath := flag.String(
		"config", model.DefaultConfigPath(), "Path to config file",
	)
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Deadlines live for the session only; the store is wiped on exit.
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	p := tea.NewProgram(
		app.New(s, cfg, *configPath),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
