package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/lvrach/study-sessions/internal/catalog"
	"github.com/lvrach/study-sessions/internal/config"
	"github.com/lvrach/study-sessions/internal/datetime"
	"github.com/lvrach/study-sessions/internal/document"
	"github.com/lvrach/study-sessions/internal/dualzone"
	"github.com/lvrach/study-sessions/internal/logger"
	"github.com/lvrach/study-sessions/internal/schedule"
	"github.com/lvrach/study-sessions/internal/session"
)

// App is what every command runs against: flags, the loaded config and the
// zones resolved at startup.
type App struct {
	*Globals
	Log       zerolog.Logger
	Formatter *dualzone.Formatter
	Now       func() time.Time
	// Rand picks greetings; nil means a fresh source per renderer.
	Rand *rand.Rand

	cfg    config.Config
	cfgErr error
}

// newApp loads the config and resolves the fixed zones. Neither failure is
// fatal here: commands that need them report the error themselves.
func newApp(globals *Globals, load dualzone.LocationLoader) *App {
	cfg, cfgErr := config.Load(globals.Config)

	level := globals.LogLevel
	if level == "" && cfgErr == nil {
		level = cfg.LogLevel
	}
	log := logger.Default(level, !globals.JSON)

	if cfgErr != nil {
		log.Debug().Err(cfgErr).Msg("config not loaded")
	}

	formatter, err := dualzone.Resolve(load)
	if err != nil {
		log.Error().Err(err).
			Msg("timezone database unavailable: install or update the system tzdata package; commands that show times will fail")
	}

	return &App{
		Globals:   globals,
		Log:       log,
		Formatter: formatter,
		Now:       time.Now,
		cfg:       cfg,
		cfgErr:    cfgErr,
	}
}

// config returns the loaded config or a not-configured error.
func (a *App) config() (config.Config, error) {
	if a.cfgErr != nil {
		return config.Config{}, newCLIError(ExitNotConfigured, "invalid_config", a.cfgErr.Error())
	}
	return a.cfg, nil
}

// requireFormatter fails when the fixed zones could not be loaded.
func (a *App) requireFormatter() error {
	if err := a.Formatter.Err(); err != nil {
		return newCLIError(ExitNotConfigured, "tzdata_unavailable",
			fmt.Sprintf("Cannot show session times: %s. Install or update the system tzdata package.", err))
	}
	return nil
}

// inputZone returns the configured input zone, nil meaning the host zone.
func (a *App) inputZone() (*time.Location, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, newCLIError(ExitNotConfigured, "invalid_config",
			fmt.Sprintf("input_zone %q: %s", cfg.InputZone, err))
	}
	return loc, nil
}

func (a *App) catalog(cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, newCLIError(ExitNotConfigured, "invalid_catalog", err.Error())
	}
	return cat, nil
}

func (a *App) resolver(cat *catalog.Catalog) (*session.Resolver, error) {
	loc, err := a.inputZone()
	if err != nil {
		return nil, err
	}
	if loc == nil {
		a.Log.Debug().Str("zone", a.Now().Location().String()).Msg("tagging schedule times with the host zone")
	}
	return &session.Resolver{
		Parser:    datetime.Parser{Now: a.Now},
		Formatter: a.Formatter,
		Catalog:   cat,
		InputZone: loc,
	}, nil
}

func (a *App) renderer(cfg config.Config, cat *catalog.Catalog) (*document.Renderer, error) {
	return document.NewRenderer(cat, document.Options{
		Organizer: cfg.Organizer,
		Duration:  cfg.Duration(),
		Seats:     cfg.Seats,
		Links:     cfg.Links,
		Rand:      a.Rand,
	})
}

// sessions resolves the configured schedule, or the ad-hoc entries when given.
func (a *App) sessions(cfg config.Config, adhoc []string) ([]session.Session, *catalog.Catalog, error) {
	entries := cfg.Sessions
	if len(adhoc) > 0 {
		entries = make(schedule.Schedule, 0, len(adhoc))
		for _, s := range adhoc {
			e, err := schedule.ParseEntry(s)
			if err != nil {
				return nil, nil, newCLIError(ExitInvalidInput, "invalid_session", err.Error())
			}
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, nil, newCLIError(ExitInvalidInput, "no_sessions",
			"No sessions scheduled. Add sessions to the config file or pass --session \"COURSE MM-DD HH:MM\".")
	}

	if err := a.requireFormatter(); err != nil {
		return nil, nil, err
	}

	cat, err := a.catalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := a.resolver(cat)
	if err != nil {
		return nil, nil, err
	}

	out, err := res.ResolveAll(entries)
	if err != nil {
		return nil, nil, sessionError(err)
	}
	return out, cat, nil
}

// sessionError maps resolution failures onto CLI exit codes.
func sessionError(err error) error {
	switch {
	case errors.Is(err, datetime.ErrInvalidFormat):
		return newCLIError(ExitInvalidInput, "invalid_session", err.Error())
	case errors.Is(err, schedule.ErrNoCourse):
		return newCLIError(ExitInvalidInput, "no_course", err.Error())
	case errors.Is(err, catalog.ErrCourseNotFound):
		return newCLIError(ExitInvalidInput, "unknown_course", err.Error())
	case errors.Is(err, dualzone.ErrTimezoneDatabaseUnavailable):
		return newCLIError(ExitNotConfigured, "tzdata_unavailable", err.Error())
	case errors.Is(err, dualzone.ErrMissingTimezone):
		return newCLIError(ExitRuntimeError, "missing_timezone", err.Error())
	default:
		return err
	}
}
