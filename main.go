package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"swimtracker/internal/config"
	"swimtracker/internal/importer"
	"swimtracker/internal/service"
	"swimtracker/internal/store"
	"swimtracker/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	importPath := flag.String("import", "", "import a JSON session log and exit")
	flag.Parse()

	// Load configuration; a missing file falls back to defaults
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if *importPath != "" {
		result, err := importer.ImportFile(db, *importPath)
		if err != nil {
			return fmt.Errorf("importing %s: %w", *importPath, err)
		}
		fmt.Printf("Imported %d sessions (%d skipped).\n", result.Imported, result.Skipped)
		return nil
	}

	// Create services
	querySvc := service.NewQueryService(db, cfg)

	// Launch TUI
	app := tui.NewApp(db, querySvc)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
