package main

import (
	"fmt"
	"os"

	"github.com/lvrach/study-sessions/internal/history"
)

// HistoryCmd shows or clears the log of generated files.
type HistoryCmd struct {
	Clear bool `help:"Clear all history."`
}

func (cmd *HistoryCmd) Run(app *App) error {
	if cmd.Clear {
		return cmd.clear(app)
	}
	return cmd.list(app)
}

func (cmd *HistoryCmd) clear(app *App) error {
	if err := history.Clear(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear history: %w", err)
	}
	return printStatus(app.JSON, "History cleared.")
}

func (cmd *HistoryCmd) list(app *App) error {
	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	// Reverse so most recent entries appear first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if app.JSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("[%s] %-8s %-8s %s\n", e.Timestamp, e.Kind, e.Course, e.File)
	}
	return nil
}
