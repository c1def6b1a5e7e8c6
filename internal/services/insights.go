package services

import (
	"errors"

	"github.com/terraincognita07/luna/internal/models"
)

var ErrInsufficientData = errors.New("not enough data")

const minLogsForInsights = 2

func BuildInsights(data models.CycleData, upcomingCount int) (models.Insights, error) {
	if len(data.PeriodLogs) < minLogsForInsights {
		return models.Insights{}, ErrInsufficientData
	}
	if upcomingCount <= 0 {
		upcomingCount = defaultUpcomingPeriods
	}

	cycleLengths := CycleLengths(data.PeriodLogs)
	latest, _ := data.LatestLog()

	return models.Insights{
		AverageCycleLength:    data.AverageCycleLength,
		AveragePeriodLength:   data.AveragePeriodLength,
		CycleLengthNormality:  Normality(IsCycleLengthNormal(data.AverageCycleLength)),
		PeriodLengthNormality: Normality(IsPeriodLengthNormal(data.AveragePeriodLength)),
		Regularity:            Regularity(cycleLengths),
		CycleLengths:          cycleLengths,
		PeriodLengths:         PeriodLengths(data.PeriodLogs),
		UpcomingPeriods:       UpcomingPeriods(latest.StartDate, data.AverageCycleLength, upcomingCount),
	}, nil
}
