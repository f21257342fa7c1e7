package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lvrach/study-sessions/internal/config"
	"github.com/lvrach/study-sessions/internal/document"
	"github.com/lvrach/study-sessions/internal/dualzone"
)

// InitCmd writes the config file interactively or from flags.
type InitCmd struct {
	OutputDir string `help:"Directory documents are written to (skips interactive prompts)." name:"output-dir"`
	Organizer string `help:"Host name used in calendar titles."`
	InputZone string `help:"IANA zone schedule times are written in; empty uses the host zone." name:"input-zone"`
}

func (cmd *InitCmd) Run(app *App) error {
	path := app.Config
	if path == "" {
		path = config.Path()
	}

	base := config.Default()
	if cfg, err := app.config(); err == nil {
		base = cfg
	}

	// Non-interactive: output directory passed as a flag.
	if cmd.OutputDir != "" {
		base.OutputDir = config.ExpandHome(cmd.OutputDir)
		if cmd.Organizer != "" {
			base.Organizer = cmd.Organizer
		}
		if cmd.InputZone != "" {
			base.InputZone = cmd.InputZone
		}
		return cmd.save(app, path, base)
	}

	if config.Exists(path) {
		return cmd.handleExisting(app, path, base)
	}
	return cmd.interactive(app, path, base)
}

func (cmd *InitCmd) handleExisting(app *App, path string, base config.Config) error {
	var choice string
	err := runField(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("A config file already exists at %s.", path)).
			Options(
				huh.NewOption("Edit it (sessions are kept)", "edit"),
				huh.NewOption("Start over from defaults", "reset"),
				huh.NewOption("Exit", "exit"),
			).
			Value(&choice),
	)
	if err != nil {
		return err
	}

	switch choice {
	case "edit":
		return cmd.interactive(app, path, base)
	case "reset":
		return cmd.interactive(app, path, config.Default())
	default:
		return nil
	}
}

func (cmd *InitCmd) interactive(app *App, path string, cfg config.Config) error {
	fmt.Println()
	fmt.Println("  Welcome to study-sessions!")
	fmt.Println("  Let's set up where announcements go.")
	fmt.Println()

	outputDir := cfg.OutputDir
	err := runField(
		huh.NewInput().
			Title("Directory for announcement documents:").
			Placeholder("~/notes/study-sessions").
			Validate(validateOutputDir).
			Value(&outputDir),
	)
	if err != nil {
		return err
	}
	cfg.OutputDir = config.ExpandHome(outputDir)

	organizer := cfg.Organizer
	err = runField(
		huh.NewInput().
			Title("Your name, as shown in calendar titles:").
			Placeholder(config.Default().Organizer).
			Value(&organizer),
	)
	if err != nil {
		return err
	}
	if strings.TrimSpace(organizer) != "" {
		cfg.Organizer = strings.TrimSpace(organizer)
	}

	zone := cfg.InputZone
	err = runField(
		huh.NewSelect[string]().
			Title("Which zone do you write session times in?").
			Options(
				huh.NewOption("This computer's zone", ""),
				huh.NewOption("Eastern ("+dualzone.EasternID+")", dualzone.EasternID),
				huh.NewOption("Central (America/Chicago)", "America/Chicago"),
				huh.NewOption("Mountain (America/Denver)", "America/Denver"),
				huh.NewOption("Pacific ("+dualzone.PacificID+")", dualzone.PacificID),
			).
			Value(&zone),
	)
	if err != nil {
		return err
	}
	cfg.InputZone = zone

	withICS := cfg.ICS
	err = runField(
		huh.NewConfirm().
			Title("Also write an .ics calendar file for each session?").
			Affirmative("Yes").
			Negative("No").
			Value(&withICS),
	)
	if err != nil {
		return err
	}
	cfg.ICS = withICS

	return cmd.save(app, path, cfg)
}

func (cmd *InitCmd) save(app *App, path string, cfg config.Config) error {
	if err := document.CheckDir(cfg.OutputDir); err != nil {
		return newCLIError(ExitInvalidInput, "invalid_output_dir", err.Error())
	}
	if err := config.Save(path, cfg); err != nil {
		return newCLIError(ExitInvalidInput, "invalid_config", fmt.Sprintf("Config not saved: %s", err))
	}

	msg := fmt.Sprintf("Config written to %s.", path)
	if app.JSON {
		return printStatus(true, msg)
	}

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).
		Render(`study-sessions generate --session "LS171 01-08 11:00" --dry-run`)
	fmt.Println("\n" + msg)
	fmt.Println("\nTry it: " + hint)
	return nil
}

// runField wraps a single huh field in a form that supports
// Ctrl+C and Ctrl+D for quitting, with bottom margin styling.
func runField(field huh.Field) error {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"))

	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.MarginBottom(1)
	t.Blurred.Base = t.Blurred.Base.MarginBottom(1)

	return huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithKeyMap(km).
		WithTheme(t).
		Run()
}

func validateOutputDir(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("directory cannot be empty")
	}
	return document.CheckDir(config.ExpandHome(s))
}
