package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

var (
	ErrNoOpenPeriod          = errors.New("no open period to end")
	ErrPeriodAlreadyOpen     = errors.New("a period is already open")
	ErrPeriodStartOutOfOrder = errors.New("period start must be after the latest logged start")
	ErrPeriodEndBeforeStart  = errors.New("period end before start")
	ErrInvalidFlow           = errors.New("invalid flow")
	ErrInvalidSymptom        = errors.New("invalid symptom")
	ErrOpenPeriodNotLatest   = errors.New("only the latest period may be open")
)

// PeriodEvent is a user action. A nil EndDate starts a new period, a
// non-nil one closes the currently open period.
type PeriodEvent struct {
	StartDate time.Time
	EndDate   *time.Time
	Flow      string
	Symptoms  []string
}

func (event PeriodEvent) IsEnd() bool {
	return event.EndDate != nil
}

func PeriodStartEvent(day time.Time) PeriodEvent {
	return PeriodEvent{StartDate: CalendarDate(day)}
}

func PeriodEndEvent(day time.Time, flow string, symptoms []string) PeriodEvent {
	end := CalendarDate(day)
	return PeriodEvent{EndDate: &end, Flow: flow, Symptoms: symptoms}
}

// RecordPeriodEvent folds event into a copy of data and recomputes the
// averages. On error the returned value is data unchanged.
func RecordPeriodEvent(data models.CycleData, event PeriodEvent) (models.CycleData, error) {
	flow, err := normalizeFlow(event.Flow)
	if err != nil {
		return data, err
	}
	symptoms, err := normalizeSymptoms(event.Symptoms)
	if err != nil {
		return data, err
	}

	updated := data.Clone()
	latest, hasLatest := updated.LatestLog()

	if event.IsEnd() {
		if !hasLatest || !latest.IsOpen() {
			return data, ErrNoOpenPeriod
		}
		end := CalendarDate(*event.EndDate)
		if end.Before(CalendarDate(latest.StartDate)) {
			return data, ErrPeriodEndBeforeStart
		}

		last := &updated.PeriodLogs[len(updated.PeriodLogs)-1]
		last.EndDate = &end
		last.Flow = flow
		last.Symptoms = symptoms
		return RecomputeAverages(updated), nil
	}

	start := CalendarDate(event.StartDate)
	if hasLatest {
		if latest.IsOpen() {
			return data, ErrPeriodAlreadyOpen
		}
		if !start.After(CalendarDate(latest.StartDate)) {
			return data, ErrPeriodStartOutOfOrder
		}
	}

	updated.PeriodLogs = append(updated.PeriodLogs, models.PeriodLog{
		StartDate: start,
		Flow:      flow,
		Symptoms:  symptoms,
	})
	return RecomputeAverages(updated), nil
}

// RecomputeAverages refreshes the cached averages from history, keeping
// the current values when history offers no usable samples.
func RecomputeAverages(data models.CycleData) models.CycleData {
	if data.AverageCycleLength <= 0 {
		data.AverageCycleLength = models.DefaultCycleLength
	}
	if data.AveragePeriodLength <= 0 {
		data.AveragePeriodLength = models.DefaultPeriodLength
	}
	data.AverageCycleLength = AverageCycleLength(data.PeriodLogs, data.AverageCycleLength)
	data.AveragePeriodLength = AveragePeriodLength(data.PeriodLogs, data.AveragePeriodLength)
	return data
}

// ValidateCycleData checks a loaded or imported history: ascending starts,
// only the latest log open, ends on or after starts, known flows and
// known symptoms.
func ValidateCycleData(data models.CycleData) error {
	_, err := NormalizeCycleData(data)
	return err
}

// NormalizeCycleData validates data and returns a copy whose symptom lists
// are duplicate-free.
func NormalizeCycleData(data models.CycleData) (models.CycleData, error) {
	normalized := data.Clone()
	for index, entry := range normalized.PeriodLogs {
		if index > 0 && !entry.StartDate.After(normalized.PeriodLogs[index-1].StartDate) {
			return models.CycleData{}, ErrPeriodStartOutOfOrder
		}
		if entry.IsOpen() {
			if index != len(normalized.PeriodLogs)-1 {
				return models.CycleData{}, ErrOpenPeriodNotLatest
			}
		} else if entry.EndDate.Before(entry.StartDate) {
			return models.CycleData{}, ErrPeriodEndBeforeStart
		}
		if entry.Flow != "" && !models.IsValidFlow(entry.Flow) {
			return models.CycleData{}, ErrInvalidFlow
		}
		symptoms, err := normalizeSymptoms(entry.Symptoms)
		if err != nil {
			return models.CycleData{}, err
		}
		normalized.PeriodLogs[index].Symptoms = symptoms
	}
	return normalized, nil
}

func normalizeFlow(flow string) (string, error) {
	if flow == "" {
		return models.FlowMedium, nil
	}
	if !models.IsValidFlow(flow) {
		return "", ErrInvalidFlow
	}
	return flow, nil
}

// normalizeSymptoms drops duplicates; symptoms are a set.
func normalizeSymptoms(symptoms []string) ([]string, error) {
	normalized := make([]string, 0, len(symptoms))
	seen := make(map[string]struct{}, len(symptoms))
	for _, symptom := range symptoms {
		if !models.IsBuiltinSymptom(symptom) {
			return nil, ErrInvalidSymptom
		}
		if _, exists := seen[symptom]; exists {
			continue
		}
		seen[symptom] = struct{}{}
		normalized = append(normalized, symptom)
	}
	return normalized, nil
}
