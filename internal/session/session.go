package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvrach/study-sessions/internal/catalog"
	"github.com/lvrach/study-sessions/internal/datetime"
	"github.com/lvrach/study-sessions/internal/dualzone"
	"github.com/lvrach/study-sessions/internal/schedule"
)

const (
	// DateLayout renders the announcement date line, e.g. "Tuesday September 23, 2025".
	DateLayout = "Monday January 02, 2006"
	// fileLayout uses ';' since ':' is not allowed in file names everywhere.
	fileLayout = "15;04 Mon Jan 02"
)

// Session is a schedule entry resolved against the catalog and placed in time.
type Session struct {
	Entry  schedule.Entry
	Course catalog.Course
	Start  datetime.Instant
	When   string // "5:30 pm Eastern / 2:30 pm Pacific"
	Date   string // "Friday January 10, 2025"
}

// Resolver turns schedule entries into sessions.
type Resolver struct {
	Parser    datetime.Parser
	Formatter *dualzone.Formatter
	Catalog   *catalog.Catalog
	// InputZone, when set, replaces the ambient zone for schedule times.
	InputZone *time.Location
}

// Resolve validates e and computes everything needed to render it.
func (r *Resolver) Resolve(e schedule.Entry) (Session, error) {
	if err := schedule.ValidateCourse(e.Course); err != nil {
		return Session{}, err
	}

	course, err := r.Catalog.Lookup(e.Course)
	if err != nil {
		return Session{}, err
	}

	start, err := r.instant(e)
	if err != nil {
		return Session{}, err
	}

	when, err := r.Formatter.Format(start)
	if err != nil {
		return Session{}, fmt.Errorf("format %s: %w", e, err)
	}

	return Session{
		Entry:  e,
		Course: course,
		Start:  start,
		When:   when,
		Date:   start.Time().Format(DateLayout),
	}, nil
}

// ResolveAll resolves every entry, stopping at the first failure.
func (r *Resolver) ResolveAll(s schedule.Schedule) ([]Session, error) {
	out := make([]Session, 0, len(s))
	for _, e := range s {
		sess, err := r.Resolve(e)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

func (r *Resolver) instant(e schedule.Entry) (datetime.Instant, error) {
	d, err := r.Parser.ParseDate(e.Date)
	if err != nil {
		return datetime.Instant{}, err
	}

	var t datetime.WallClockTime
	if r.InputZone != nil {
		t, err = datetime.ParseTimeIn(e.Time, r.InputZone)
	} else {
		t, err = r.Parser.ParseTime(e.Time)
	}
	if err != nil {
		return datetime.Instant{}, err
	}
	return datetime.Combine(d, t), nil
}

// FileName returns the document name, e.g. "20;00 Tue Sep 23 LS171.md".
func (s Session) FileName() string {
	return s.BaseName() + ".md"
}

// BaseName is FileName without the extension. Path separators in the course
// code are replaced so the document always lands directly in the output dir.
func (s Session) BaseName() string {
	course := strings.NewReplacer("/", "-", `\`, "-").Replace(s.Entry.Course)
	return s.Start.Time().Format(fileLayout) + " " + course
}
