package services

import (
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

// CalendarDate drops the time-of-day of value and returns the same
// calendar date at UTC midnight.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// TodayAt returns the calendar date of now in location, normalized to UTC
// midnight so it compares cleanly with stored dates.
func TodayAt(now time.Time, location *time.Location) time.Time {
	return CalendarDate(DateAtLocation(now, location))
}

func AddDays(date time.Time, days int) time.Time {
	return CalendarDate(date).AddDate(0, 0, days)
}

const secondsPerDay = 24 * 60 * 60

// DayDifference counts calendar days from from to to. It works on Unix day
// numbers because time.Duration saturates after about 292 years.
func DayDifference(from time.Time, to time.Time) int {
	return int((CalendarDate(to).Unix() - CalendarDate(from).Unix()) / secondsPerDay)
}

func ISODate(date time.Time) string {
	return models.FormatDay(CalendarDate(date))
}

func ParseISODate(raw string) (time.Time, error) {
	return models.ParseDay(raw)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return ISODate(a) == ISODate(b)
}
