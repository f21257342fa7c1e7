package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
)

// Globals holds flags shared across all commands.
type Globals struct {
	JSON     bool   `help:"Output JSON for script consumption." short:"j"`
	Config   string `help:"Path to the config file (default ~/.config/study-sessions/config.yaml)." type:"path" env:"STUDY_SESSIONS_CONFIG"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides log_level)." name:"log-level"`
}

// CLI is the root command structure for study-sessions.
type CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" help:"Write announcement documents for the scheduled sessions."`
	ByDay    ByDayCmd    `cmd:"" name:"by-day" help:"List scheduled sessions grouped by date."`
	When     WhenCmd     `cmd:"" help:"Show the Eastern / Pacific line for a date and time."`
	Preview  PreviewCmd  `cmd:"" help:"Render one session document in the terminal."`
	Inspect  InspectCmd  `cmd:"" help:"Browse scheduled sessions and their documents (interactive)."`
	Catalog  CatalogCmd  `cmd:"" help:"List the courses in the catalog."`
	History  HistoryCmd  `cmd:"" help:"Show or clear the log of generated files."`
	Init     InitCmd     `cmd:"" help:"Create the config file (interactive setup)."`
	Guide    GuideCmd    `cmd:"" help:"Print the config and schedule format guide."`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("study-sessions"),
		kong.Description("Generate study-session announcement documents with Eastern and Pacific times."),
		kong.UsageOnError(),
	)

	app := newApp(&cli.Globals, time.LoadLocation)
	err := ctx.Run(app)
	if err != nil {
		// Ctrl+C / Ctrl+D: exit silently.
		if isUserAbort(err) {
			os.Exit(0)
		}

		cliErr := toCLIError(err)
		printError(os.Stderr, cli.JSON, cliErr)
		os.Exit(cliErr.ExitCode)
	}
}

// isUserAbort returns true for errors caused by the user
// quitting an interactive prompt (Ctrl+C, Ctrl+D).
func isUserAbort(err error) bool {
	if errors.Is(err, huh.ErrUserAborted) {
		return true
	}
	// huh wraps bubbletea errors as "huh: <err>"
	if strings.Contains(err.Error(), "user aborted") {
		return true
	}
	return false
}
