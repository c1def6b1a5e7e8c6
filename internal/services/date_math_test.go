package services

import (
	"testing"
	"time"
)

func TestAddDaysRollsAcrossBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start string
		days  int
		want  string
	}{
		{name: "month end", start: "2024-01-30", days: 3, want: "2024-02-02"},
		{name: "leap day", start: "2024-02-28", days: 1, want: "2024-02-29"},
		{name: "year end", start: "2024-12-30", days: 5, want: "2025-01-04"},
		{name: "negative", start: "2024-03-01", days: -1, want: "2024-02-29"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := ISODate(AddDays(mustParseDay(t, testCase.start), testCase.days))
			if got != testCase.want {
				t.Fatalf("expected %s, got %s", testCase.want, got)
			}
		})
	}
}

func TestDayDifferenceIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// Spans the spring DST switch, where a day has only 23 hours.
	from := time.Date(2024, time.March, 30, 23, 30, 0, 0, berlin)
	to := time.Date(2024, time.April, 1, 0, 15, 0, 0, berlin)
	if got := DayDifference(from, to); got != 2 {
		t.Fatalf("expected 2 calendar days, got %d", got)
	}
	if got := DayDifference(to, from); got != -2 {
		t.Fatalf("expected -2 calendar days, got %d", got)
	}
}

func TestDayDifferenceSpansCenturies(t *testing.T) {
	t.Parallel()

	from := mustParseDay(t, "1500-01-01")
	to := mustParseDay(t, "2024-01-01")

	days := DayDifference(from, to)
	if days != 191387 {
		t.Fatalf("expected 191387 days, got %d", days)
	}
	if got := ISODate(AddDays(from, days)); got != "2024-01-01" {
		t.Fatalf("expected AddDays to land on 2024-01-01, got %s", got)
	}
	if got := DayDifference(to, from); got != -days {
		t.Fatalf("expected %d, got %d", -days, got)
	}
}

func TestTodayAtUsesLocationCalendarDate(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, time.January, 29, 20, 0, 0, 0, time.UTC)
	if got := ISODate(TodayAt(now, tokyo)); got != "2024-01-30" {
		t.Fatalf("expected 2024-01-30 in JST, got %s", got)
	}
	if got := ISODate(TodayAt(now, nil)); got != "2024-01-29" {
		t.Fatalf("expected 2024-01-29 in UTC, got %s", got)
	}
}

func TestParseISODateRoundTrip(t *testing.T) {
	t.Parallel()

	parsed, err := ParseISODate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseISODate returned error: %v", err)
	}
	if ISODate(parsed) != "2024-02-29" {
		t.Fatalf("unexpected round trip: %s", ISODate(parsed))
	}
	if _, err := ParseISODate("2023-02-29"); err == nil {
		t.Fatal("expected invalid date error")
	}
}
