package daykey

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	// 2025-06-07 12:00:00 UTC
	millis := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC).UnixMilli()

	if got := DayKey(millis, time.UTC); got != "2025-06-07" {
		t.Errorf("DayKey = %q, want 2025-06-07", got)
	}
}

func TestDayKeyDeterministic(t *testing.T) {
	millis := time.Date(2025, 6, 7, 23, 59, 59, 0, time.UTC).UnixMilli()

	first := DayKey(millis, time.UTC)
	second := DayKey(millis, time.UTC)
	if first != second {
		t.Errorf("DayKey not deterministic: %q vs %q", first, second)
	}
}

func TestDayKeyTimezone(t *testing.T) {
	// 2025-06-07 23:30 UTC is already June 8th at UTC+8
	millis := time.Date(2025, 6, 7, 23, 30, 0, 0, time.UTC).UnixMilli()

	if got := DayKey(millis, time.UTC); got != "2025-06-07" {
		t.Errorf("UTC DayKey = %q, want 2025-06-07", got)
	}

	east := time.FixedZone("UTC+8", 8*3600)
	if got := DayKey(millis, east); got != "2025-06-08" {
		t.Errorf("UTC+8 DayKey = %q, want 2025-06-08", got)
	}
}

func TestDayKeyMidnightBoundary(t *testing.T) {
	before := time.Date(2025, 6, 7, 23, 59, 59, 0, time.UTC).UnixMilli()
	after := time.Date(2025, 6, 8, 0, 0, 1, 0, time.UTC).UnixMilli()

	if DayKey(before, time.UTC) == DayKey(after, time.UTC) {
		t.Error("instants across midnight should bucket into different days")
	}
}

func TestValid(t *testing.T) {
	good := []string{"2025-06-07", "1999-12-31", "2025-01-01"}
	for _, s := range good {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}

	bad := []string{"", "2025-6-7", "2025/06/07", "20250607", "2025-13-01", "2025-06-32", "not-a-date"}
	for _, s := range bad {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}
