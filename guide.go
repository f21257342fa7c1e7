package main

import (
	_ "embed"
	"fmt"
)

//go:embed study-sessions.guide.md
var guideContent string

// GuideCmd prints the config and schedule format guide to stdout.
type GuideCmd struct {
	Render bool `help:"Render the guide for the terminal instead of printing Markdown."`
}

func (cmd *GuideCmd) Run(app *App) error {
	if cmd.Render && !app.JSON {
		fmt.Print(renderDocument(guideContent, terminalWidth()))
		return nil
	}
	fmt.Print(guideContent)
	return nil
}
