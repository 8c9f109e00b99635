package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	// Test Now() function
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	// Test GetLocation()
	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestDate(t *testing.T) {
	loc := timezone.GetLocation()
	input := time.Date(2024, 3, 15, 17, 45, 12, 99, loc)

	got := timezone.Date(input)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("expected midnight, got %s", got)
	}

	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", got.Location())
	}

	if got.Day() != 15 || got.Month() != time.March || got.Year() != 2024 {
		t.Errorf("expected 2024-03-15, got %s", got.Format(time.DateOnly))
	}
}

func TestParseDate(t *testing.T) {
	got, err := timezone.ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}

	if got.Format(time.DateOnly) != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", got.Format(time.DateOnly))
	}

	if _, err := timezone.ParseDate("29/02/2024"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if today.Location() != time.UTC {
		t.Errorf("expected UTC calendar date, got %s", today.Location())
	}

	if today.Format(time.DateOnly) != timezone.Now().Format(time.DateOnly) {
		t.Errorf("unexpected today value %s", today)
	}
}
