package main

import (
	"fmt"
	"time"

	"github.com/lvrach/study-sessions/internal/datetime"
	"github.com/lvrach/study-sessions/internal/session"
)

// WhenCmd prints the dual-zone line for one date and time.
type WhenCmd struct {
	Date string `arg:"" help:"Date as MM-DD (current year) or YYYY-MM-DD."`
	Time string `arg:"" help:"Time as HH:MM, 24-hour."`
}

type whenJSON struct {
	Date  string `json:"date"`
	When  string `json:"when"`
	Start string `json:"start"`
}

func (cmd *WhenCmd) Run(app *App) error {
	if err := app.requireFormatter(); err != nil {
		return err
	}

	parser := datetime.Parser{Now: app.Now}

	d, err := parser.ParseDate(cmd.Date)
	if err != nil {
		return newCLIError(ExitInvalidInput, "invalid_date", err.Error())
	}

	var t datetime.WallClockTime
	loc, locErr := app.inputZone()
	if locErr != nil {
		return locErr
	}
	if loc != nil {
		t, err = datetime.ParseTimeIn(cmd.Time, loc)
	} else {
		t, err = parser.ParseTime(cmd.Time)
	}
	if err != nil {
		return newCLIError(ExitInvalidInput, "invalid_time", err.Error())
	}

	inst := datetime.Combine(d, t)
	when, err := app.Formatter.Format(inst)
	if err != nil {
		return sessionError(err)
	}
	date := inst.Time().Format(session.DateLayout)

	if app.JSON {
		return printJSON(whenJSON{
			Date:  date,
			When:  when,
			Start: inst.Time().Format(time.RFC3339),
		})
	}

	fmt.Println(date)
	fmt.Println(when)
	return nil
}
