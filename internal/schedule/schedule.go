package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NoCourse is the placeholder left in a schedule row when no course was picked.
const NoCourse = "(no course selected)"

// ErrNoCourse is returned for schedule rows without a real course code.
var ErrNoCourse = errors.New("no course selected")

// Entry is one scheduled session as written by the organizer.
type Entry struct {
	Course string `koanf:"course" yaml:"course" validate:"required"`
	Date   string `koanf:"date" yaml:"date" validate:"required"` // MM-DD or YYYY-MM-DD
	Time   string `koanf:"time" yaml:"time" validate:"required"` // HH:MM, 24-hour
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.Course, e.Date, e.Time)
}

// Schedule is the ordered list of sessions to announce.
type Schedule []Entry

// ValidateCourse rejects empty and placeholder course codes.
func ValidateCourse(code string) error {
	code = strings.TrimSpace(code)
	if code == "" || code == NoCourse {
		return fmt.Errorf("%w: looks like a course was not selected (got %q)", ErrNoCourse, code)
	}
	return nil
}

// ParseEntry parses "COURSE DATE TIME", e.g. "LS171 01-08 11:00".
// The course may itself contain spaces ("PY101 / PY109 12-13 16:00"):
// the last two fields are always the date and time.
func ParseEntry(s string) (Entry, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return Entry{}, fmt.Errorf("invalid session %q, expected COURSE DATE TIME (e.g. LS171 01-08 11:00)", s)
	}

	n := len(fields)
	e := Entry{
		Course: strings.Join(fields[:n-2], " "),
		Date:   fields[n-2],
		Time:   fields[n-1],
	}
	if err := ValidateCourse(e.Course); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Day is every session that falls on one date key.
type Day struct {
	Date     string
	Sessions []string // "LS171 at 20:30"
}

// ByDay groups sessions by their date text, dates in ascending string order
// and sessions in schedule order within each day.
func ByDay(s Schedule) []Day {
	index := make(map[string]int)
	var days []Day
	for _, e := range s {
		i, ok := index[e.Date]
		if !ok {
			i = len(days)
			index[e.Date] = i
			days = append(days, Day{Date: e.Date})
		}
		days[i].Sessions = append(days[i].Sessions, e.Course+" at "+e.Time)
	}

	sort.SliceStable(days, func(a, b int) bool { return days[a].Date < days[b].Date })
	return days
}

func (d Day) String() string {
	return d.Date + " -> " + strings.Join(d.Sessions, ", ")
}
