package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

func PrintStatus(w io.Writer, status models.CycleStatus) {
	fmt.Fprintf(w, "Phase:            %s\n", status.Phase)
	if status.CycleDay != nil {
		fmt.Fprintf(w, "Cycle day:        %d\n", *status.CycleDay)
	}
	if status.NextPeriodDate != nil {
		fmt.Fprintf(w, "Next period:      %s\n", models.FormatDay(*status.NextPeriodDate))
	}
	if status.DaysUntilNextPeriod != nil {
		days := *status.DaysUntilNextPeriod
		switch {
		case days < 0:
			fmt.Fprintf(w, "Days until next:  %d (overdue)\n", days)
		default:
			fmt.Fprintf(w, "Days until next:  %d\n", days)
		}
	}
}

func PrintInsights(w io.Writer, insights models.Insights) {
	fmt.Fprintf(w, "Average cycle:    %d days (%s)\n", insights.AverageCycleLength, insights.CycleLengthNormality)
	fmt.Fprintf(w, "Average period:   %d days (%s)\n", insights.AveragePeriodLength, insights.PeriodLengthNormality)
	fmt.Fprintf(w, "Regularity:       %s\n", insights.Regularity)
	fmt.Fprintf(w, "Cycle lengths:    %s\n", joinInts(insights.CycleLengths))
	fmt.Fprintf(w, "Period lengths:   %s\n", joinInts(insights.PeriodLengths))
	fmt.Fprintf(w, "Upcoming periods: %s\n", joinDays(insights.UpcomingPeriods))
}

// PrintCalendar draws a Monday-first month grid. Period days are wrapped
// in brackets, fertile days in parentheses and a predicted start gets a
// trailing asterisk.
func PrintCalendar(w io.Writer, month time.Time, days []models.CalendarDay) {
	fmt.Fprintf(w, "%s %d\n", month.Month(), month.Year())
	fmt.Fprintln(w, "  Mo    Tu    We    Th    Fr    Sa    Su")

	if len(days) == 0 {
		return
	}
	offset := (int(days[0].Date.Weekday()) + 6) % 7
	cells := make([]string, 0, offset+len(days))
	for index := 0; index < offset; index++ {
		cells = append(cells, "      ")
	}
	for _, day := range days {
		cells = append(cells, calendarCell(day))
	}

	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells[start:end], ""), " "))
	}
}

func calendarCell(day models.CalendarDay) string {
	label := fmt.Sprintf("%2d", day.Date.Day())
	switch {
	case day.IsPeriod:
		label = "[" + label + "]"
	case day.IsFertile:
		label = "(" + label + ")"
	default:
		label = " " + label + " "
	}
	if day.IsPredictedStart {
		label += "*"
	} else {
		label += " "
	}
	return label + " "
}

func PrintPredictions(w io.Writer, upcoming []time.Time, window *models.FertileWindow) {
	fmt.Fprintf(w, "Upcoming periods: %s\n", joinDays(upcoming))
	if window == nil {
		fmt.Fprintln(w, "Fertile window:   unavailable")
		return
	}
	fmt.Fprintf(w, "Fertile window:   %s to %s\n", models.FormatDay(window.Start), models.FormatDay(window.End))
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprintf("%d", value))
	}
	return strings.Join(parts, ", ")
}

func joinDays(values []time.Time) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, models.FormatDay(value))
	}
	return strings.Join(parts, ", ")
}
