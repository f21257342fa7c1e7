package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lvrach/study-sessions/internal/schedule"
)

var byDayCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// ByDayCmd lists the configured sessions grouped by date. It never touches
// timezones, so it keeps working when the timezone database is missing.
type ByDayCmd struct{}

type byDayJSON struct {
	Date     string   `json:"date"`
	Sessions []string `json:"sessions"`
}

func (cmd *ByDayCmd) Run(app *App) error {
	cfg, err := app.config()
	if err != nil {
		return err
	}

	days := schedule.ByDay(cfg.Sessions)

	if app.JSON {
		out := make([]byDayJSON, len(days))
		for i, d := range days {
			out[i] = byDayJSON{Date: d.Date, Sessions: d.Sessions}
		}
		return printJSON(out)
	}

	if len(days) == 0 {
		fmt.Println("No sessions scheduled.")
		return nil
	}

	for _, d := range days {
		fmt.Println(d.String())
	}
	fmt.Println(byDayCountStyle.Render(
		fmt.Sprintf("%d session(s) on %d day(s)", len(cfg.Sessions), len(days))))
	return nil
}
