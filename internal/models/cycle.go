package models

import (
	"encoding/json"
	"time"
)

type Phase string

const (
	PhasePeriod           Phase = "Period"
	PhaseFollicular       Phase = "Follicular"
	PhaseOvulation        Phase = "Ovulation"
	PhaseLuteal           Phase = "Luteal"
	PhaseInsufficientData Phase = "Not enough data"
)

const (
	RegularityRegular          = "Regular"
	RegularityIrregular        = "Irregular"
	RegularityInsufficientData = "Not enough data"

	NormalityNormal  = "Normal"
	NormalityUnusual = "Unusual"
)

// FertileWindow is an inclusive date range.
type FertileWindow struct {
	Start time.Time
	End   time.Time
}

func (window FertileWindow) Contains(day time.Time) bool {
	return !day.Before(window.Start) && !day.After(window.End)
}

func (window FertileWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{
		Start: FormatDay(window.Start),
		End:   FormatDay(window.End),
	})
}

type CycleStatus struct {
	Phase               Phase
	CycleDay            *int
	DaysUntilNextPeriod *int
	NextPeriodDate      *time.Time
}

func (status CycleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phase               Phase   `json:"currentPhase"`
		CycleDay            *int    `json:"cycleDay"`
		DaysUntilNextPeriod *int    `json:"daysUntilNextPeriod"`
		NextPeriodDate      *string `json:"nextPeriodDate"`
	}{
		Phase:               status.Phase,
		CycleDay:            status.CycleDay,
		DaysUntilNextPeriod: status.DaysUntilNextPeriod,
		NextPeriodDate:      formatOptionalDay(status.NextPeriodDate),
	})
}

type Insights struct {
	AverageCycleLength    int
	AveragePeriodLength   int
	CycleLengthNormality  string
	PeriodLengthNormality string
	Regularity            string
	CycleLengths          []int
	PeriodLengths         []int
	UpcomingPeriods       []time.Time
}

func (insights Insights) MarshalJSON() ([]byte, error) {
	upcoming := make([]string, 0, len(insights.UpcomingPeriods))
	for _, day := range insights.UpcomingPeriods {
		upcoming = append(upcoming, FormatDay(day))
	}
	return json.Marshal(struct {
		AverageCycleLength    int      `json:"averageCycleLength"`
		AveragePeriodLength   int      `json:"averagePeriodLength"`
		CycleLengthNormality  string   `json:"cycleLengthNormality"`
		PeriodLengthNormality string   `json:"periodLengthNormality"`
		Regularity            string   `json:"regularity"`
		CycleLengths          []int    `json:"cycleLengths"`
		PeriodLengths         []int    `json:"periodLengths"`
		UpcomingPeriods       []string `json:"upcomingPeriods"`
	}{
		AverageCycleLength:    insights.AverageCycleLength,
		AveragePeriodLength:   insights.AveragePeriodLength,
		CycleLengthNormality:  insights.CycleLengthNormality,
		PeriodLengthNormality: insights.PeriodLengthNormality,
		Regularity:            insights.Regularity,
		CycleLengths:          insights.CycleLengths,
		PeriodLengths:         insights.PeriodLengths,
		UpcomingPeriods:       upcoming,
	})
}

type CalendarDay struct {
	Date             time.Time
	IsPeriod         bool
	IsFertile        bool
	IsPredictedStart bool
}

func (day CalendarDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date             string `json:"date"`
		IsPeriod         bool   `json:"isPeriod"`
		IsFertile        bool   `json:"isFertile"`
		IsPredictedStart bool   `json:"isPredictedStart"`
	}{
		Date:             FormatDay(day.Date),
		IsPeriod:         day.IsPeriod,
		IsFertile:        day.IsFertile,
		IsPredictedStart: day.IsPredictedStart,
	})
}
