// Package ics builds a single-event iCalendar file for a study session, so it
// can be imported into any calendar app alongside the written announcement.
package ics

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/lvrach/study-sessions/internal/session"
)

const productID = "-//study-sessions//Study Session Announcer//EN"

// uidNamespace scopes event UIDs so regenerating a session yields the same UID.
var uidNamespace = uuid.MustParse("6f1d3c1e-4b8a-4f27-9d51-2d0c1c9a8e11")

// ErrUnzoned is returned for sessions whose start has no timezone.
var ErrUnzoned = errors.New("session start has no timezone")

// Event describes the calendar entry for a session.
type Event struct {
	Session   session.Session
	Organizer string
	Duration  time.Duration
	// Stamp is DTSTAMP, the time the file was generated.
	Stamp time.Time
	// SignupNote is appended to the description, typically the forum placeholder.
	SignupNote string
}

// UID returns the stable event identifier for s.
func UID(s session.Session) string {
	key := strings.ToLower(s.Entry.Course) + "|" + s.Start.Time().UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@study-sessions"
}

// FileName returns the .ics name that sits next to the markdown document.
func FileName(s session.Session) string {
	return s.BaseName() + ".ics"
}

// Build serializes ev as an iCalendar document.
func Build(ev Event) (string, error) {
	s := ev.Session
	if !s.Start.Zoned() {
		return "", ErrUnzoned
	}
	start := s.Start.Time()

	cal := ical.NewCalendar()
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)

	e := cal.AddEvent(UID(s))
	e.SetDtStampTime(ev.Stamp)
	e.SetStartAt(start)
	e.SetEndAt(start.Add(ev.Duration))
	e.SetSummary(s.Course.FullName + " with " + ev.Organizer)

	desc := s.Course.Activity + "\n\n" + s.When
	if ev.SignupNote != "" {
		desc += "\n\nSign-ups and more info: " + ev.SignupNote
	}
	e.SetDescription(desc)

	alarm := e.AddAlarm()
	alarm.SetAction(ical.ActionDisplay)
	alarm.SetDescription(s.Entry.Course + " study session starts in 15 minutes")
	alarm.SetTrigger("-PT15M")

	return cal.Serialize(), nil
}
