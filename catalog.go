package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// CatalogCmd lists the courses the catalog knows about.
type CatalogCmd struct{}

type catalogJSON struct {
	Key        string `json:"key"`
	FullName   string `json:"full_name"`
	Enrollment string `json:"enrollment"`
	Activity   string `json:"activity"`
}

func (cmd *CatalogCmd) Run(app *App) error {
	cfg, err := app.config()
	if err != nil {
		return err
	}
	cat, err := app.catalog(cfg)
	if err != nil {
		return err
	}

	if app.JSON {
		out := make([]catalogJSON, len(cat.Courses))
		for i, c := range cat.Courses {
			out[i] = catalogJSON{Key: c.Key, FullName: c.FullName, Enrollment: c.Enrollment, Activity: c.Activity}
		}
		return printJSON(out)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(inspectDimStyle).
		Headers("KEY", "COURSE", "ENROLLMENT")
	for _, c := range cat.Courses {
		t.Row(c.Key, c.FullName, c.Enrollment)
	}
	fmt.Println(t)
	return nil
}
