package services

import (
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

const (
	lutealPhaseDays            = 14
	periodPhaseDays            = 5
	fertileDaysBeforeOvulation = 5
	fertileDaysAfterOvulation  = 1
	defaultUpcomingPeriods     = 3
)

func NextPeriodDate(lastStart time.Time, cycleLength int) time.Time {
	return AddDays(lastStart, cycleLength)
}

func OvulationDay(cycleLength int) int {
	return cycleLength - lutealPhaseDays
}

// FertileWindow reports false when the cycle is too short to place
// ovulation after the period start.
func FertileWindow(lastStart time.Time, cycleLength int) (models.FertileWindow, bool) {
	ovulationDay := OvulationDay(cycleLength)
	if ovulationDay <= 0 {
		return models.FertileWindow{}, false
	}

	ovulationDate := AddDays(lastStart, ovulationDay)
	return models.FertileWindow{
		Start: AddDays(ovulationDate, -fertileDaysBeforeOvulation),
		End:   AddDays(ovulationDate, fertileDaysAfterOvulation),
	}, true
}

// CyclePhase classifies a 1-indexed cycle day. The day before ovulation
// belongs to the ovulation phase, not the follicular one.
func CyclePhase(cycleDay int, cycleLength int) models.Phase {
	if cycleDay <= periodPhaseDays {
		return models.PhasePeriod
	}

	ovulationDay := OvulationDay(cycleLength)
	if cycleDay < ovulationDay-1 {
		return models.PhaseFollicular
	}
	if cycleDay >= ovulationDay-1 && cycleDay <= ovulationDay+1 {
		return models.PhaseOvulation
	}
	return models.PhaseLuteal
}

func UpcomingPeriods(lastStart time.Time, cycleLength int, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	predictions := make([]time.Time, 0, count)
	for i := 1; i <= count; i++ {
		predictions = append(predictions, AddDays(lastStart, cycleLength*i))
	}
	return predictions
}
