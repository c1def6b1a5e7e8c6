package models

import (
	"encoding/json"
	"time"
)

const (
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

func IsValidFlow(flow string) bool {
	switch flow {
	case FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

// PeriodLog is one menstruation event. A nil EndDate means the period is
// still ongoing.
type PeriodLog struct {
	StartDate time.Time
	EndDate   *time.Time
	Flow      string
	Symptoms  []string
}

func (log PeriodLog) IsOpen() bool {
	return log.EndDate == nil
}

type periodLogWire struct {
	StartDate string   `json:"startDate" yaml:"startDate"`
	EndDate   *string  `json:"endDate" yaml:"endDate"`
	Flow      string   `json:"flow" yaml:"flow"`
	Symptoms  []string `json:"symptoms" yaml:"symptoms"`
}

func (log PeriodLog) toWire() periodLogWire {
	symptoms := log.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return periodLogWire{
		StartDate: FormatDay(log.StartDate),
		EndDate:   formatOptionalDay(log.EndDate),
		Flow:      log.Flow,
		Symptoms:  symptoms,
	}
}

func (log *PeriodLog) fromWire(wire periodLogWire) error {
	start, err := ParseDay(wire.StartDate)
	if err != nil {
		return err
	}
	end, err := parseOptionalDay(wire.EndDate)
	if err != nil {
		return err
	}
	symptoms := wire.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	*log = PeriodLog{
		StartDate: start,
		EndDate:   end,
		Flow:      wire.Flow,
		Symptoms:  symptoms,
	}
	return nil
}

func (log PeriodLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(log.toWire())
}

func (log *PeriodLog) UnmarshalJSON(data []byte) error {
	var wire periodLogWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	return log.fromWire(wire)
}

func (log PeriodLog) MarshalYAML() (any, error) {
	return log.toWire(), nil
}

func (log *PeriodLog) UnmarshalYAML(unmarshal func(any) error) error {
	var wire periodLogWire
	if err := unmarshal(&wire); err != nil {
		return err
	}
	return log.fromWire(wire)
}

// CycleData is the persisted history together with its cached averages.
type CycleData struct {
	PeriodLogs          []PeriodLog `json:"periodLogs" yaml:"periodLogs"`
	AverageCycleLength  int         `json:"averageCycleLength" yaml:"averageCycleLength"`
	AveragePeriodLength int         `json:"averagePeriodLength" yaml:"averagePeriodLength"`
}

func NewCycleData() CycleData {
	return CycleData{
		PeriodLogs:          []PeriodLog{},
		AverageCycleLength:  DefaultCycleLength,
		AveragePeriodLength: DefaultPeriodLength,
	}
}

func (data CycleData) LatestLog() (PeriodLog, bool) {
	if len(data.PeriodLogs) == 0 {
		return PeriodLog{}, false
	}
	return data.PeriodLogs[len(data.PeriodLogs)-1], true
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original history.
func (data CycleData) Clone() CycleData {
	logs := make([]PeriodLog, 0, len(data.PeriodLogs))
	for _, entry := range data.PeriodLogs {
		copied := entry
		if entry.EndDate != nil {
			end := *entry.EndDate
			copied.EndDate = &end
		}
		copied.Symptoms = append([]string{}, entry.Symptoms...)
		logs = append(logs, copied)
	}
	data.PeriodLogs = logs
	return data
}
