package schedule

import (
	"time"
)

// GenerateSlots expands a weekly schedule into the concrete bookable
// start times for one calendar day. It is a pure function: callers
// supply the bookings snapshot and the current time, so the same inputs
// always produce the same output.
//
// Candidate slots start at the day's configured window start and step
// forward by duration. When the last stride would overrun the window,
// it is pulled back so the final consultation ends exactly at the
// window boundary (never rounded past it). A candidate is offered only
// when its wall-clock time is not already booked and it lies strictly
// in the future.
//
// The booked filter compares time-of-day only. Bookings passed in are
// always for the requested date, so this is equivalent to comparing
// full timestamps; it must be revisited before this function is ever
// asked to span multiple dates.
func GenerateSlots(ws WeeklySchedule, date time.Time, duration time.Duration, booked []time.Time, now time.Time, loc *time.Location) []time.Time {
	if duration <= 0 {
		return nil
	}

	day := date.In(loc)
	weekday, ok := WeekdayOf(day.Weekday())
	if !ok {
		// Sunday: never available.
		return nil
	}
	interval, ok := ws[weekday]
	if !ok {
		// Not an error: the nutritionist simply does not attend that day.
		return nil
	}

	windowStart := time.Date(day.Year(), day.Month(), day.Day(), interval.Start.Hour, interval.Start.Minute, 0, 0, loc)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), interval.End.Hour, interval.End.Minute, 0, 0, loc)

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b.In(loc).Format("15:04")] = struct{}{}
	}

	var candidates []time.Time
	for next := windowStart; !next.Add(duration).After(windowEnd); next = next.Add(duration) {
		candidates = append(candidates, next)
	}
	// A trailing partial stride is pulled back so the final
	// consultation ends exactly at the window boundary.
	if final := windowEnd.Add(-duration); !final.Before(windowStart) &&
		(len(candidates) == 0 || final.After(candidates[len(candidates)-1])) {
		candidates = append(candidates, final)
	}

	var slots []time.Time
	for _, candidate := range candidates {
		if _, busy := taken[candidate.Format("15:04")]; busy {
			continue
		}
		if !candidate.After(now) {
			continue
		}
		slots = append(slots, candidate)
	}
	return slots
}
