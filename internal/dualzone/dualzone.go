package dualzone

import (
	"errors"
	"fmt"
	"time"

	"github.com/lvrach/study-sessions/internal/datetime"
)

var (
	// ErrMissingTimezone is returned when an unzoned instant is formatted.
	ErrMissingTimezone = errors.New("instant has no timezone")
	// ErrTimezoneDatabaseUnavailable is returned when a fixed zone could not
	// be loaded from the timezone database at startup.
	ErrTimezoneDatabaseUnavailable = errors.New("timezone database unavailable")
)

// Fixed zone identifiers and their display labels.
const (
	EasternID    = "America/New_York"
	EasternLabel = "Eastern"
	PacificID    = "America/Los_Angeles"
	PacificLabel = "Pacific"
)

// clockLayout renders 17:05 as "5:05 pm".
const clockLayout = "3:04 pm"

// Zone is a resolved location with the label shown after its clock reading.
type Zone struct {
	Label    string
	Location *time.Location
}

// LocationLoader resolves an IANA zone name. time.LoadLocation satisfies it.
type LocationLoader func(name string) (*time.Location, error)

// Formatter renders an instant as wall-clock times in two zones.
// The zero value is not usable; build one with Resolve or New.
type Formatter struct {
	first  Zone
	second Zone
	err    error
}

// New returns a formatter for two already-resolved zones.
func New(first, second Zone) *Formatter {
	return &Formatter{first: first, second: second}
}

// Resolve loads the Eastern and Pacific zones. On failure it still returns a
// formatter, in a degraded state where every Format call fails with the same
// error, alongside an error wrapping ErrTimezoneDatabaseUnavailable.
func Resolve(load LocationLoader) (*Formatter, error) {
	eastern, err := load(EasternID)
	if err != nil {
		return unavailable(EasternID, err)
	}
	pacific, err := load(PacificID)
	if err != nil {
		return unavailable(PacificID, err)
	}
	return New(
		Zone{Label: EasternLabel, Location: eastern},
		Zone{Label: PacificLabel, Location: pacific},
	), nil
}

func unavailable(id string, cause error) (*Formatter, error) {
	err := fmt.Errorf("%w: load %s: %w", ErrTimezoneDatabaseUnavailable, id, cause)
	return &Formatter{err: err}, err
}

// Err reports why the formatter is degraded, or nil when it is usable.
func (f *Formatter) Err() error {
	return f.err
}

// Format renders inst as "5:30 pm Eastern / 2:30 pm Pacific".
func (f *Formatter) Format(inst datetime.Instant) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if !inst.Zoned() {
		return "", ErrMissingTimezone
	}

	t := inst.Time()
	return fmt.Sprintf("%s / %s", render(t, f.first), render(t, f.second)), nil
}

func render(t time.Time, z Zone) string {
	return t.In(z.Location).Format(clockLayout) + " " + z.Label
}
