package schedule

import (
	"testing"
	"time"
)

// 2026-03-02 is a segunda (Monday).
var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func morningSchedule() WeeklySchedule {
	return WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 12}},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func assertSlots(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("slot %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestGenerateSlotsFullDay(t *testing.T) {
	slots := GenerateSlots(morningSchedule(), testDay, time.Hour, nil, at(7, 0), time.UTC)
	assertSlots(t, slots, at(8, 0), at(9, 0), at(10, 0), at(11, 0))
}

func TestGenerateSlotsExcludesPast(t *testing.T) {
	slots := GenerateSlots(morningSchedule(), testDay, time.Hour, nil, at(9, 30), time.UTC)
	assertSlots(t, slots, at(10, 0), at(11, 0))
}

func TestGenerateSlotsExcludesSlotEqualToNow(t *testing.T) {
	// Strictly-in-the-future rule: a slot starting exactly at now is gone.
	slots := GenerateSlots(morningSchedule(), testDay, time.Hour, nil, at(10, 0), time.UTC)
	assertSlots(t, slots, at(11, 0))
}

func TestGenerateSlotsExcludesBooked(t *testing.T) {
	booked := []time.Time{at(10, 0)}
	slots := GenerateSlots(morningSchedule(), testDay, time.Hour, booked, at(7, 0), time.UTC)
	assertSlots(t, slots, at(8, 0), at(9, 0), at(11, 0))
}

func TestGenerateSlotsTruncatesPartialSlot(t *testing.T) {
	ws := WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 10}},
	}
	// 45-minute consultations on a two-hour window: 09:15+45m lands
	// exactly on the boundary and is offered; 10:00 is not.
	slots := GenerateSlots(ws, testDay, 45*time.Minute, nil, at(7, 0), time.UTC)
	assertSlots(t, slots, at(8, 0), at(8, 45), at(9, 15))
}

func TestGenerateSlotsUnconfiguredDay(t *testing.T) {
	tuesday := testDay.AddDate(0, 0, 1)
	slots := GenerateSlots(morningSchedule(), tuesday, time.Hour, nil, at(7, 0), time.UTC)
	if len(slots) != 0 {
		t.Fatalf("expected no slots on an unconfigured day, got %v", slots)
	}
}

func TestGenerateSlotsSunday(t *testing.T) {
	sunday := testDay.AddDate(0, 0, -1)
	ws := WeeklySchedule{}
	for _, day := range Weekdays {
		ws[day] = Interval{Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 18}}
	}
	slots := GenerateSlots(ws, sunday, time.Hour, nil, at(7, 0), time.UTC)
	if len(slots) != 0 {
		t.Fatalf("expected no slots on sunday, got %v", slots)
	}
}

func TestGenerateSlotsNonPositiveDuration(t *testing.T) {
	if slots := GenerateSlots(morningSchedule(), testDay, 0, nil, at(7, 0), time.UTC); len(slots) != 0 {
		t.Fatalf("expected no slots for zero duration, got %v", slots)
	}
}

func TestGenerateSlotsIsPure(t *testing.T) {
	booked := []time.Time{at(9, 0)}
	first := GenerateSlots(morningSchedule(), testDay, time.Hour, booked, at(7, 0), time.UTC)
	second := GenerateSlots(morningSchedule(), testDay, time.Hour, booked, at(7, 0), time.UTC)
	assertSlots(t, second, first...)
}

func TestGenerateSlotsAlignmentInvariants(t *testing.T) {
	ws := WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 17, Minute: 30}},
	}
	duration := 50 * time.Minute
	slots := GenerateSlots(ws, testDay, duration, nil, at(0, 0), time.UTC)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}

	windowStart := at(9, 0)
	windowEnd := at(17, 30)
	for i, slot := range slots {
		if slot.Before(windowStart) {
			t.Fatalf("slot %v starts before the window", slot)
		}
		if slot.Add(duration).After(windowEnd) {
			t.Fatalf("slot %v does not fit inside the window", slot)
		}
		if i > 0 && !slot.After(slots[i-1]) {
			t.Fatalf("slots %v and %v are out of order", slots[i-1], slot)
		}
	}

	// Every slot but the last strides exactly one duration from its
	// predecessor; the last ends exactly at the window boundary.
	for i := 1; i < len(slots)-1; i++ {
		if slots[i].Sub(slots[i-1]) != duration {
			t.Fatalf("slots %v and %v are not one stride apart", slots[i-1], slots[i])
		}
	}
	if last := slots[len(slots)-1]; !last.Add(duration).Equal(windowEnd) {
		t.Fatalf("last slot %v does not end at the window boundary", last)
	}
}

func TestGenerateSlotsExactMultipleHasNoExtraSlot(t *testing.T) {
	ws := WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 10}},
	}
	// The window divides evenly: no additional boundary slot beyond
	// 09:30.
	slots := GenerateSlots(ws, testDay, 30*time.Minute, nil, at(7, 0), time.UTC)
	assertSlots(t, slots, at(8, 0), at(8, 30), at(9, 0), at(9, 30))
}

func TestGenerateSlotsWindowShorterThanDuration(t *testing.T) {
	ws := WeeklySchedule{
		Segunda: {Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 8, Minute: 30}},
	}
	if slots := GenerateSlots(ws, testDay, time.Hour, nil, at(7, 0), time.UTC); len(slots) != 0 {
		t.Fatalf("expected no slots when the window cannot fit one consultation, got %v", slots)
	}
}

func TestGenerateSlotsBookedComparedInZone(t *testing.T) {
	recife := time.FixedZone("-03", -3*60*60)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, recife)
	// Booked timestamp arrives in UTC: 13:00Z is 10:00 local.
	booked := []time.Time{time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)}
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, recife)

	slots := GenerateSlots(morningSchedule(), day, time.Hour, booked, now, recife)
	assertSlots(t, slots,
		time.Date(2026, 3, 2, 8, 0, 0, 0, recife),
		time.Date(2026, 3, 2, 9, 0, 0, 0, recife),
		time.Date(2026, 3, 2, 11, 0, 0, 0, recife),
	)
}
