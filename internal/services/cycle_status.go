package services

import (
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

// CurrentCycleStatus derives today's position in the cycle from the latest
// log. It reads data without modifying it.
func CurrentCycleStatus(data models.CycleData, today time.Time) models.CycleStatus {
	latest, ok := data.LatestLog()
	if !ok {
		return models.CycleStatus{Phase: models.PhaseInsufficientData}
	}

	daysSinceStart := DayDifference(latest.StartDate, today)
	cycleDay := daysSinceStart + 1

	if latest.IsOpen() && daysSinceStart < data.AveragePeriodLength {
		daysUntil := 0
		return models.CycleStatus{
			Phase:               models.PhasePeriod,
			CycleDay:            &cycleDay,
			DaysUntilNextPeriod: &daysUntil,
		}
	}

	nextPeriod := NextPeriodDate(latest.StartDate, data.AverageCycleLength)
	daysUntil := DayDifference(today, nextPeriod)
	return models.CycleStatus{
		Phase:               CyclePhase(cycleDay, data.AverageCycleLength),
		CycleDay:            &cycleDay,
		DaysUntilNextPeriod: &daysUntil,
		NextPeriodDate:      &nextPeriod,
	}
}
