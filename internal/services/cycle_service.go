package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/luna/internal/models"
)

var (
	ErrCycleDataLoadFailed = errors.New("load cycle data failed")
	ErrCycleDataSaveFailed = errors.New("save cycle data failed")
	ErrCycleDataCorrupt    = errors.New("stored cycle data is corrupt")
)

// CycleService runs the load-mutate-save cycle around the pure cycle
// functions. Writes are serialized so two concurrent log actions cannot
// overwrite each other's history.
type CycleService struct {
	store KeyValueStore
	mu    sync.Mutex
}

func NewCycleService(store KeyValueStore) *CycleService {
	return &CycleService{store: store}
}

func (service *CycleService) LoadCycleData() (models.CycleData, error) {
	data := models.NewCycleData()
	found, err := loadJSON(service.store, models.KeyCycleData, &data)
	if err != nil {
		return models.CycleData{}, fmt.Errorf("%w: %w", ErrCycleDataLoadFailed, err)
	}
	if !found {
		return models.NewCycleData(), nil
	}
	normalized, err := NormalizeCycleData(data)
	if err != nil {
		return models.CycleData{}, fmt.Errorf("%w: %w", ErrCycleDataCorrupt, err)
	}
	return RecomputeAverages(normalized), nil
}

func (service *CycleService) SaveCycleData(data models.CycleData) error {
	if err := saveJSON(service.store, models.KeyCycleData, data); err != nil {
		return fmt.Errorf("%w: %w", ErrCycleDataSaveFailed, err)
	}
	return nil
}

// RecordEvent applies event to the stored history. Rejected events leave
// the store untouched and return the fold error.
func (service *CycleService) RecordEvent(event PeriodEvent) (models.CycleData, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	current, err := service.LoadCycleData()
	if err != nil {
		return models.CycleData{}, err
	}
	updated, err := RecordPeriodEvent(current, event)
	if err != nil {
		return current, err
	}
	if err := service.SaveCycleData(updated); err != nil {
		return current, err
	}
	return updated, nil
}

func (service *CycleService) LogPeriodStart(day time.Time) (models.CycleData, error) {
	return service.RecordEvent(PeriodStartEvent(day))
}

func (service *CycleService) LogPeriodEnd(day time.Time, flow string, symptoms []string) (models.CycleData, error) {
	return service.RecordEvent(PeriodEndEvent(day, flow, symptoms))
}

func (service *CycleService) Status(today time.Time) (models.CycleStatus, error) {
	data, err := service.LoadCycleData()
	if err != nil {
		return models.CycleStatus{}, err
	}
	return CurrentCycleStatus(data, today), nil
}

func (service *CycleService) Insights(upcomingCount int) (models.Insights, error) {
	data, err := service.LoadCycleData()
	if err != nil {
		return models.Insights{}, err
	}
	return BuildInsights(data, upcomingCount)
}

// Predictions returns the upcoming period starts and the fertile window of
// the current cycle. Without any log there is nothing to predict from.
func (service *CycleService) Predictions(upcomingCount int) ([]time.Time, *models.FertileWindow, error) {
	data, err := service.LoadCycleData()
	if err != nil {
		return nil, nil, err
	}
	latest, ok := data.LatestLog()
	if !ok {
		return nil, nil, ErrInsufficientData
	}
	if upcomingCount <= 0 {
		upcomingCount = defaultUpcomingPeriods
	}

	upcoming := UpcomingPeriods(latest.StartDate, data.AverageCycleLength, upcomingCount)
	window, ok := FertileWindow(latest.StartDate, data.AverageCycleLength)
	if !ok {
		return upcoming, nil, nil
	}
	return upcoming, &window, nil
}

func (service *CycleService) Calendar(month time.Time, preferences models.UserPreferences) ([]models.CalendarDay, error) {
	data, err := service.LoadCycleData()
	if err != nil {
		return nil, err
	}
	return BuildCalendarMarks(data, month, preferences), nil
}
