package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/luna/internal/models"
)

// Samples outside these bounds are treated as logging mistakes.
const (
	maxCycleLengthSample  = 60
	maxPeriodLengthSample = 15

	minNormalCycleLength  = 21
	maxNormalCycleLength  = 35
	minNormalPeriodLength = 2
	maxNormalPeriodLength = 8

	irregularDeviationDays = 7
)

func sortedByStart(logs []models.PeriodLog) []models.PeriodLog {
	sorted := make([]models.PeriodLog, 0, len(logs))
	sorted = append(sorted, logs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

func CycleLengths(logs []models.PeriodLog) []int {
	sorted := sortedByStart(logs)
	lengths := make([]int, 0, len(sorted))
	for i := 1; i < len(sorted); i++ {
		gap := DayDifference(sorted[i-1].StartDate, sorted[i].StartDate)
		if gap <= 0 || gap >= maxCycleLengthSample {
			continue
		}
		lengths = append(lengths, gap)
	}
	return lengths
}

func PeriodLengths(logs []models.PeriodLog) []int {
	lengths := make([]int, 0, len(logs))
	for _, entry := range logs {
		if entry.EndDate == nil {
			continue
		}
		length := DayDifference(entry.StartDate, *entry.EndDate) + 1
		if length <= 0 || length >= maxPeriodLengthSample {
			continue
		}
		lengths = append(lengths, length)
	}
	return lengths
}

// AverageCycleLength keeps previous when no gap survives outlier rejection.
func AverageCycleLength(logs []models.PeriodLog, previous int) int {
	return roundedMeanOr(CycleLengths(logs), previous)
}

func AveragePeriodLength(logs []models.PeriodLog, previous int) int {
	return roundedMeanOr(PeriodLengths(logs), previous)
}

func IsCycleLengthNormal(length int) bool {
	return length >= minNormalCycleLength && length <= maxNormalCycleLength
}

func IsPeriodLengthNormal(length int) bool {
	return length >= minNormalPeriodLength && length <= maxNormalPeriodLength
}

func IsIrregularCycle(lengths []int) bool {
	if len(lengths) < 2 {
		return false
	}
	mean := averageInts(lengths)
	for _, length := range lengths {
		if math.Abs(float64(length)-mean) > irregularDeviationDays {
			return true
		}
	}
	return false
}

func Regularity(lengths []int) string {
	if len(lengths) < 2 {
		return models.RegularityInsufficientData
	}
	if IsIrregularCycle(lengths) {
		return models.RegularityIrregular
	}
	return models.RegularityRegular
}

func Normality(normal bool) string {
	if normal {
		return models.NormalityNormal
	}
	return models.NormalityUnusual
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundedMeanOr(values []int, fallback int) int {
	if len(values) == 0 {
		return fallback
	}
	return int(math.Floor(averageInts(values) + 0.5))
}
