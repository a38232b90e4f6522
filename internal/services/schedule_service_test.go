package services

import (
	"testing"
	"time"
)

func TestDaySlotsAllDayCoversWholeDay(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	slots := ScheduleService{}.DaySlots(5, true, now)

	// 00:00 through 23:55 stepping 5 minutes.
	if len(slots) != 288 {
		t.Fatalf("expected 288 slots, got %d", len(slots))
	}
	if slots[0] != "2024-01-01 00:00:00" {
		t.Fatalf("first slot = %q", slots[0])
	}
	if slots[len(slots)-1] != "2024-01-01 23:55:00" {
		t.Fatalf("last slot = %q", slots[len(slots)-1])
	}
}

func TestDaySlotsGraceWindow(t *testing.T) {
	// At 00:02:30 the 00:00:00 slot is more than a minute in the past and
	// must be dropped; 00:05:00 is still upcoming.
	now := time.Date(2024, 1, 1, 0, 2, 30, 0, time.Local)

	slots := ScheduleService{}.DaySlots(5, false, now)

	if len(slots) == 0 {
		t.Fatal("expected slots, got none")
	}
	if slots[0] != "2024-01-01 00:05:00" {
		t.Fatalf("first slot = %q, want 2024-01-01 00:05:00", slots[0])
	}
}

func TestDaySlotsKeepsSlotInsideGrace(t *testing.T) {
	// 30 seconds past a slot is inside the one-minute grace window.
	now := time.Date(2024, 1, 1, 10, 0, 30, 0, time.Local)

	slots := ScheduleService{}.DaySlots(5, false, now)

	if slots[0] != "2024-01-01 10:00:00" {
		t.Fatalf("first slot = %q, want 2024-01-01 10:00:00", slots[0])
	}
}

func TestDaySlotsNonPositiveIntervalFallsBack(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	want := ScheduleService{}.DaySlots(5, true, now)
	for _, interval := range []int{0, -3} {
		got := ScheduleService{}.DaySlots(interval, true, now)
		if len(got) != len(want) {
			t.Fatalf("interval %d: got %d slots, want %d", interval, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("interval %d: slot %d = %q, want %q", interval, i, got[i], want[i])
			}
		}
	}
}

func TestDaySlotsOrderedAndDeterministic(t *testing.T) {
	now := time.Date(2024, 6, 15, 8, 31, 0, 0, time.Local)

	a := ScheduleService{}.DaySlots(15, false, now)
	b := ScheduleService{}.DaySlots(15, false, now)

	if len(a) != len(b) {
		t.Fatalf("non-deterministic slot count: %d vs %d", len(a), len(b))
	}
	for i := 1; i < len(a); i++ {
		if a[i] <= a[i-1] {
			t.Fatalf("slots out of order: %q then %q", a[i-1], a[i])
		}
		if a[i] != b[i] {
			t.Fatalf("non-deterministic slot %d: %q vs %q", i, a[i], b[i])
		}
	}
}
