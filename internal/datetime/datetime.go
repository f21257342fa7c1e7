// Package datetime turns the separate date and time strings of a schedule entry
// into a single zoned Instant.
//
// Times are tagged with the zone the process is running in, not with a fixed
// zone. Schedules are written in the organizer's wall-clock time, and the
// organizer's machine is expected to be set to that zone. Running the tool on a
// host in another zone silently shifts every session. Set input_zone in the
// config (which routes through ParseTimeIn) to pin the zone explicitly.
//
// The ambient zone is the full zone of the clock (normally time.Local), not
// the UTC offset in effect at parse time. A session scheduled across a DST
// change gets the offset valid on its own date.
package datetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for malformed or out-of-range date and time text.
var ErrInvalidFormat = errors.New("invalid format")

const dateLayout = "2006-01-02"

// CalendarDate is a year-month-day without time of day or zone.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// WallClockTime is an hour and minute tagged with the zone it was read in.
type WallClockTime struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Instant is a date plus wall-clock time in a zone. A nil Location means the
// instant is unzoned and cannot be placed on the timeline.
type Instant struct {
	Date     CalendarDate
	Hour     int
	Minute   int
	Location *time.Location
}

// Zoned reports whether the instant carries a timezone.
func (i Instant) Zoned() bool {
	return i.Location != nil
}

// Time returns the instant as a time.Time, or the zero time when unzoned.
func (i Instant) Time() time.Time {
	if i.Location == nil {
		return time.Time{}
	}
	return time.Date(i.Date.Year, i.Date.Month, i.Date.Day, i.Hour, i.Minute, 0, 0, i.Location)
}

// Parser parses schedule text. Now supplies the current time; its Location is
// the ambient zone stamped onto parsed times.
type Parser struct {
	Now func() time.Time
}

var defaultParser = Parser{Now: time.Now}

// ParseDate parses MM-DD (current year) or YYYY-MM-DD.
func ParseDate(text string) (CalendarDate, error) {
	return defaultParser.ParseDate(text)
}

// ParseTime parses HH:MM (24-hour) in the process's local zone.
func ParseTime(text string) (WallClockTime, error) {
	return defaultParser.ParseTime(text)
}

// ParseTimeIn parses HH:MM (24-hour) and tags it with loc.
func ParseTimeIn(text string, loc *time.Location) (WallClockTime, error) {
	hour, minute, err := parseClock(text)
	if err != nil {
		return WallClockTime{}, err
	}
	return WallClockTime{Hour: hour, Minute: minute, Location: loc}, nil
}

// Combine overlays t's hour, minute and zone onto d.
func Combine(d CalendarDate, t WallClockTime) Instant {
	return Instant{Date: d, Hour: t.Hour, Minute: t.Minute, Location: t.Location}
}

// ParseDate parses MM-DD or YYYY-MM-DD. The year of MM-DD is taken from
// p.Now at call time, so the same input can resolve to different years.
func (p Parser) ParseDate(text string) (CalendarDate, error) {
	s := strings.TrimSpace(text)

	var full string
	switch {
	case len(s) == 5 && s[2] == '-':
		full = fmt.Sprintf("%04d-%s", p.Now().Year(), s)
	case len(s) == 10 && s[4] == '-' && s[7] == '-':
		full = s
	default:
		return CalendarDate{}, fmt.Errorf("%w: date %q must be MM-DD or YYYY-MM-DD", ErrInvalidFormat, s)
	}

	t, err := time.Parse(dateLayout, full)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: date %q: %w", ErrInvalidFormat, s, err)
	}
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// ParseTime parses HH:MM and tags it with the zone of p.Now().
func (p Parser) ParseTime(text string) (WallClockTime, error) {
	return ParseTimeIn(text, p.Now().Location())
}

func parseClock(text string) (int, int, error) {
	s := strings.TrimSpace(text)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q must be HH:MM in 24h format", ErrInvalidFormat, s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time %q: hour: %w", ErrInvalidFormat, s, err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time %q: minute: %w", ErrInvalidFormat, s, err)
	}

	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidFormat, hour)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidFormat, minute)
	}
	return hour, minute, nil
}
