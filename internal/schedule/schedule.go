package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidInterval is returned when an interval's start is not
	// strictly before its end.
	ErrInvalidInterval = errors.New("schedule interval start must be before end")

	// ErrUnknownWeekday is returned for weekday keys outside the six
	// working days (domingo is never bookable and is rejected too).
	ErrUnknownWeekday = errors.New("unknown weekday")
)

// Weekday is one of the six working days of the week. Sunday has no
// constant on purpose: the platform never offers consultations on it.
type Weekday string

const (
	Segunda Weekday = "segunda"
	Terca   Weekday = "terca"
	Quarta  Weekday = "quarta"
	Quinta  Weekday = "quinta"
	Sexta   Weekday = "sexta"
	Sabado  Weekday = "sabado"
)

// Weekdays lists the working days in calendar order.
var Weekdays = []Weekday{Segunda, Terca, Quarta, Quinta, Sexta, Sabado}

// ParseWeekday converts a string key into a Weekday.
func ParseWeekday(s string) (Weekday, error) {
	switch Weekday(s) {
	case Segunda, Terca, Quarta, Quinta, Sexta, Sabado:
		return Weekday(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// WeekdayOf maps a time.Weekday onto the working-day enumeration.
// The second return is false for Sunday.
func WeekdayOf(d time.Weekday) (Weekday, bool) {
	switch d {
	case time.Monday:
		return Segunda, true
	case time.Tuesday:
		return Terca, true
	case time.Wednesday:
		return Quarta, true
	case time.Thursday:
		return Quinta, true
	case time.Friday:
		return Sexta, true
	case time.Saturday:
		return Sabado, true
	}
	return "", false
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// MarshalJSON encodes the time as a "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a "HH:MM" string.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval is the availability window for one weekday.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Valid reports whether the interval is well formed (start strictly
// before end).
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// WeeklySchedule maps working days to availability windows. A day
// absent from the map means the nutritionist does not attend that day.
type WeeklySchedule map[Weekday]Interval

// Validate checks every entry of the schedule. Keys are guaranteed
// well-typed at construction; intervals still need the start < end check.
func (ws WeeklySchedule) Validate() error {
	for day, interval := range ws {
		if _, err := ParseWeekday(string(day)); err != nil {
			return err
		}
		if !interval.Valid() {
			return fmt.Errorf("%w (%s: %s-%s)", ErrInvalidInterval, day, interval.Start, interval.End)
		}
	}
	return nil
}

// Value serializes the schedule as JSON for storage.
func (ws WeeklySchedule) Value() (driver.Value, error) {
	if ws == nil {
		return nil, nil
	}
	return json.Marshal(ws)
}

// Scan deserializes the schedule from its JSON column.
func (ws *WeeklySchedule) Scan(src interface{}) error {
	if src == nil {
		*ws = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into WeeklySchedule", src)
	}
	if len(data) == 0 {
		*ws = nil
		return nil
	}
	return json.Unmarshal(data, ws)
}
