package schedule

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	for _, day := range Weekdays {
		parsed, err := ParseWeekday(string(day))
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", day, err)
		}
		if parsed != day {
			t.Fatalf("expected %q, got %q", day, parsed)
		}
	}

	for _, bad := range []string{"domingo", "monday", "segunda-feira", ""} {
		if _, err := ParseWeekday(bad); !errors.Is(err, ErrUnknownWeekday) {
			t.Fatalf("ParseWeekday(%q): expected ErrUnknownWeekday, got %v", bad, err)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	cases := map[time.Weekday]Weekday{
		time.Monday:    Segunda,
		time.Tuesday:   Terca,
		time.Wednesday: Quarta,
		time.Thursday:  Quinta,
		time.Friday:    Sexta,
		time.Saturday:  Sabado,
	}
	for goDay, want := range cases {
		got, ok := WeekdayOf(goDay)
		if !ok || got != want {
			t.Fatalf("WeekdayOf(%v): expected %q, got %q (ok=%v)", goDay, want, got, ok)
		}
	}

	if _, ok := WeekdayOf(time.Sunday); ok {
		t.Fatal("sunday must not map to a working day")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("08:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if parsed.Hour != 8 || parsed.Minute != 30 {
		t.Fatalf("expected 08:30, got %v", parsed)
	}
	if parsed.String() != "08:30" {
		t.Fatalf("expected string 08:30, got %q", parsed.String())
	}

	for _, bad := range []string{"25:00", "8h30", "08:61", "late"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Fatalf("ParseTimeOfDay(%q): expected error", bad)
		}
	}
}

func TestValidateRejectsInvertedInterval(t *testing.T) {
	ws := WeeklySchedule{
		Terca: {Start: TimeOfDay{Hour: 12}, End: TimeOfDay{Hour: 8}},
	}
	if err := ws.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}

	// Zero-length windows are invalid too.
	ws = WeeklySchedule{
		Terca: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 8}},
	}
	if err := ws.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for start == end, got %v", err)
	}
}

func TestValidateAcceptsWellFormedSchedule(t *testing.T) {
	ws := WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 12}},
		Sabado:  {Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 13, Minute: 30}},
	}
	if err := ws.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestWeeklyScheduleColumnRoundTrip(t *testing.T) {
	ws := WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 12}},
		Sexta:   {Start: TimeOfDay{Hour: 14, Minute: 15}, End: TimeOfDay{Hour: 18}},
	}

	value, err := ws.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var restored WeeklySchedule
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(restored) != len(ws) {
		t.Fatalf("expected %d entries, got %d", len(ws), len(restored))
	}
	if restored[Sexta].Start.String() != "14:15" {
		t.Fatalf("expected sexta to start at 14:15, got %s", restored[Sexta].Start)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	data, err := json.Marshal(Interval{Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 12, Minute: 30}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"start":"08:00","end":"12:30"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}

	var interval Interval
	if err := json.Unmarshal([]byte(`{"start":"07:45","end":"11:00"}`), &interval); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if interval.Start.Hour != 7 || interval.Start.Minute != 45 {
		t.Fatalf("unexpected start: %v", interval.Start)
	}
}
