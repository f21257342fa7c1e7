package main

import (
	"errors"
	"fmt"

	"github.com/lvrach/study-sessions/internal/document"
	"github.com/lvrach/study-sessions/internal/history"
	"github.com/lvrach/study-sessions/internal/ics"
	"github.com/lvrach/study-sessions/internal/schedule"
	"github.com/lvrach/study-sessions/internal/session"
)

// File outcomes reported by generate.
const (
	statusWritten = "written"
	statusSkipped = "skipped"
	statusDryRun  = "dry_run"
)

// forumPlaceholder marks where the forum post URL goes once it exists.
const forumPlaceholder = "==forum-url=="

// GenerateCmd writes one announcement document per scheduled session.
type GenerateCmd struct {
	SessionInput

	DryRun bool   `help:"Render documents without writing anything." name:"dry-run"`
	ICS    bool   `help:"Also write an .ics calendar file per session." name:"ics"`
	Out    string `help:"Output directory (overrides output_dir)." type:"path"`
}

type generatedFile struct {
	File   string `json:"file"`
	Kind   string `json:"kind"`
	Course string `json:"course"`
	Status string `json:"status"`
}

type generateResult struct {
	Status string          `json:"status"`
	Dir    string          `json:"dir"`
	Files  []generatedFile `json:"files"`
	ByDay  []string        `json:"by_day"`
}

func (cmd *GenerateCmd) Run(app *App) error {
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

	renderer, err := app.renderer(cfg, cat)
	if err != nil {
		return err
	}

	dir := cfg.OutputDir
	if cmd.Out != "" {
		dir = cmd.Out
	}
	if !cmd.DryRun {
		if err := checkOutputDir(dir); err != nil {
			return err
		}
	}

	if !app.JSON {
		fmt.Printf("Writing to: %q...\n", dir)
	}

	result := generateResult{Status: "ok", Dir: dir, Files: []generatedFile{}}
	withICS := cmd.ICS || cfg.ICS

	for _, s := range sessions {
		body, err := renderer.Render(s)
		if err != nil {
			return err
		}
		f, err := cmd.emit(app, dir, s, history.KindDocument, s.FileName(), body)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, f)

		if !withICS {
			continue
		}
		cal, err := ics.Build(ics.Event{
			Session:    s,
			Organizer:  cfg.Organizer,
			Duration:   cfg.Duration(),
			Stamp:      app.Now(),
			SignupNote: forumPlaceholder,
		})
		if err != nil {
			return sessionError(err)
		}
		f, err = cmd.emit(app, dir, s, history.KindCalendar, ics.FileName(s), cal)
		if err != nil {
			return err
		}
		result.Files = append(result.Files, f)
	}

	entries := make(schedule.Schedule, len(sessions))
	for i, s := range sessions {
		entries[i] = s.Entry
	}
	for _, d := range schedule.ByDay(entries) {
		result.ByDay = append(result.ByDay, d.String())
	}

	if app.JSON {
		return printJSON(result)
	}

	fmt.Println()
	for _, line := range result.ByDay {
		fmt.Println(line)
	}
	return nil
}

// emit writes one file unless it already exists, and records it in history.
func (cmd *GenerateCmd) emit(app *App, dir string, s session.Session, kind, name, body string) (generatedFile, error) {
	f := generatedFile{File: name, Kind: kind, Course: s.Entry.Course}

	if cmd.DryRun {
		f.Status = statusDryRun
		if !app.JSON {
			fmt.Printf("%s -> Dry run, not written\n", name)
		}
		return f, nil
	}

	path, err := document.Write(dir, name, []byte(body))
	switch {
	case errors.Is(err, document.ErrExists):
		f.Status = statusSkipped
		app.Log.Debug().Str("path", path).Msg("skipping existing file")
		if !app.JSON {
			fmt.Printf("%s -> Skipped because it already exists\n", name)
		}
		return f, nil
	case err != nil:
		return f, newCLIError(ExitRuntimeError, "write_failed", err.Error())
	}

	f.Status = statusWritten
	if !app.JSON {
		fmt.Printf("%s -> Success!\n", name)
	}
	if _, err := history.Append(kind, s.Entry.Course, path, s.Start.Time()); err != nil {
		app.Log.Warn().Err(err).Str("path", path).Msg("could not record history")
	}
	return f, nil
}

func checkOutputDir(dir string) error {
	if err := document.CheckDir(dir); err != nil {
		return newCLIError(ExitNotConfigured, "no_output_dir",
			fmt.Sprintf("%s. Create it or set output_dir in the config.", err))
	}
	return nil
}
