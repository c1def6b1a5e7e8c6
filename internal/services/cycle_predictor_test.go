package services

import (
	"testing"

	"github.com/terraincognita07/luna/internal/models"
)

func TestPredictionsForStandardCycle(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	if got := ISODate(NextPeriodDate(start, 28)); got != "2024-01-29" {
		t.Fatalf("expected next period 2024-01-29, got %s", got)
	}

	window, ok := FertileWindow(start, 28)
	if !ok {
		t.Fatal("expected fertile window for 28-day cycle")
	}
	if ISODate(window.Start) != "2024-01-10" || ISODate(window.End) != "2024-01-16" {
		t.Fatalf("expected window 2024-01-10..2024-01-16, got %s..%s", ISODate(window.Start), ISODate(window.End))
	}
}

func TestFertileWindowSpansSevenDays(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2023-12-20")
	for cycleLength := 15; cycleLength <= 59; cycleLength++ {
		window, ok := FertileWindow(start, cycleLength)
		if !ok {
			t.Fatalf("expected window for cycle length %d", cycleLength)
		}
		if span := DayDifference(window.Start, window.End) + 1; span != 7 {
			t.Fatalf("cycle length %d: expected 7-day window, got %d", cycleLength, span)
		}
		floor := AddDays(AddDays(start, cycleLength-14), -5)
		if window.End.Before(floor) {
			t.Fatalf("cycle length %d: window end %s before %s", cycleLength, ISODate(window.End), ISODate(floor))
		}
	}
}

func TestFertileWindowUnavailableForShortCycles(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-01")
	for _, cycleLength := range []int{0, 7, 14} {
		if window, ok := FertileWindow(start, cycleLength); ok {
			t.Fatalf("expected no window for cycle length %d, got %+v", cycleLength, window)
		}
	}
}

func TestCyclePhaseTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		day  int
		want models.Phase
	}{
		{day: 1, want: models.PhasePeriod},
		{day: 5, want: models.PhasePeriod},
		{day: 6, want: models.PhaseFollicular},
		{day: 12, want: models.PhaseFollicular},
		{day: 13, want: models.PhaseOvulation},
		{day: 14, want: models.PhaseOvulation},
		{day: 15, want: models.PhaseOvulation},
		{day: 16, want: models.PhaseLuteal},
		{day: 20, want: models.PhaseLuteal},
		{day: 40, want: models.PhaseLuteal},
	}

	for _, testCase := range cases {
		if got := CyclePhase(testCase.day, 28); got != testCase.want {
			t.Fatalf("CyclePhase(%d, 28) = %s, want %s", testCase.day, got, testCase.want)
		}
	}
}

func TestCyclePhaseShortCycleSkipsFollicular(t *testing.T) {
	t.Parallel()

	// Ovulation day 7 leaves no follicular days: day 6 already sits on
	// the pre-ovulation boundary.
	if got := CyclePhase(6, 21); got != models.PhaseOvulation {
		t.Fatalf("expected day 6 of 21-day cycle to be ovulation, got %s", got)
	}
	if got := CyclePhase(9, 21); got != models.PhaseLuteal {
		t.Fatalf("expected day 9 of 21-day cycle to be luteal, got %s", got)
	}
}

func TestUpcomingPeriodsUseSameAnchor(t *testing.T) {
	t.Parallel()

	start := mustParseDay(t, "2024-01-31")
	got := UpcomingPeriods(start, 30, 3)
	want := []string{"2024-03-01", "2024-03-31", "2024-04-30"}
	if len(got) != len(want) {
		t.Fatalf("expected %d predictions, got %d", len(want), len(got))
	}
	for i := range want {
		if ISODate(got[i]) != want[i] {
			t.Fatalf("prediction %d: expected %s, got %s", i+1, want[i], ISODate(got[i]))
		}
	}

	if empty := UpcomingPeriods(start, 30, 0); len(empty) != 0 {
		t.Fatalf("expected no predictions for n=0, got %d", len(empty))
	}
}
