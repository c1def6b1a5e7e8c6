package services

import (
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

func MonthBounds(month time.Time) (time.Time, time.Time) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// BuildCalendarMarks marks every day of month. Closed logs mark their whole
// span, an open log marks only its start day. Fertile days never override
// period days.
func BuildCalendarMarks(data models.CycleData, month time.Time, preferences models.UserPreferences) []models.CalendarDay {
	monthStart, monthEnd := MonthBounds(month)

	periodDays := make(map[string]bool)
	for _, entry := range data.PeriodLogs {
		end := entry.StartDate
		if entry.EndDate != nil {
			end = *entry.EndDate
		}
		from := CalendarDate(entry.StartDate)
		if from.Before(monthStart) {
			from = monthStart
		}
		to := CalendarDate(end)
		if to.After(monthEnd) {
			to = monthEnd
		}
		for day := from; !day.After(to); day = AddDays(day, 1) {
			periodDays[ISODate(day)] = true
		}
	}

	var window models.FertileWindow
	hasWindow := false
	var predictedStart time.Time
	if latest, ok := data.LatestLog(); ok {
		if preferences.ShowFertileWindow {
			window, hasWindow = FertileWindow(latest.StartDate, data.AverageCycleLength)
		}
		if preferences.ShowPredictions {
			predictedStart = NextPeriodDate(latest.StartDate, data.AverageCycleLength)
		}
	}

	days := make([]models.CalendarDay, 0, 31)
	for day := monthStart; !day.After(monthEnd); day = AddDays(day, 1) {
		isPeriod := periodDays[ISODate(day)]
		days = append(days, models.CalendarDay{
			Date:             day,
			IsPeriod:         isPeriod,
			IsFertile:        hasWindow && !isPeriod && window.Contains(day),
			IsPredictedStart: !predictedStart.IsZero() && sameCalendarDay(day, predictedStart),
		})
	}
	return days
}
