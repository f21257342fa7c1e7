package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const defaultPreviewWidth = 80

// PreviewCmd renders one session document without writing it.
type PreviewCmd struct {
	Index int `arg:"" optional:"" default:"1" help:"Session number in schedule order (1-based)."`
	SessionInput

	Raw bool `help:"Print the Markdown source instead of rendering it."`
}

type previewJSON struct {
	File     string `json:"file"`
	Course   string `json:"course"`
	Date     string `json:"date"`
	When     string `json:"when"`
	Document string `json:"document"`
}

func (cmd *PreviewCmd) Run(app *App) error {
	cfg, err := app.config()
	if err != nil {
		return err
	}

	adhoc, err := cmd.SessionInput.Resolve()
	if err != nil {
		return err
	}
	sessions, cat, err := app.sessions(cfg, adhoc)
	if err != nil {
		return err
	}
	if cmd.Index < 1 || cmd.Index > len(sessions) {
		return newCLIError(ExitInvalidInput, "invalid_index",
			fmt.Sprintf("Session %d does not exist; there are %d scheduled.", cmd.Index, len(sessions)))
	}
	s := sessions[cmd.Index-1]

	renderer, err := app.renderer(cfg, cat)
	if err != nil {
		return err
	}
	body, err := renderer.Render(s)
	if err != nil {
		return err
	}

	if app.JSON {
		return printJSON(previewJSON{
			File:     s.FileName(),
			Course:   s.Course.FullName,
			Date:     s.Date,
			When:     s.When,
			Document: body,
		})
	}

	if cmd.Raw {
		fmt.Print(body)
		return nil
	}

	fmt.Println(inspectDimStyle.Render(s.FileName()))
	fmt.Print(renderDocument(body, terminalWidth()))
	return nil
}

// terminalWidth returns the stdout width, or a default when not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
	if err != nil || w <= 0 {
		return defaultPreviewWidth
	}
	return w
}
