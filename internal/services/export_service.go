package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/luna/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	ExportFormatJSON = "json"
	ExportFormatYAML = "yaml"
	ExportFormatCSV  = "csv"
)

var (
	ErrExportFormatUnsupported = errors.New("export format unsupported")
	ErrExportBuildFailed       = errors.New("build export failed")
	ErrImportInvalid           = errors.New("import payload invalid")
	ErrImportFailed            = errors.New("import failed")
	ErrClearDataFailed         = errors.New("clear data failed")
)

var ExportCSVHeaders = []string{
	"Start date",
	"End date",
	"Period length",
	"Flow",
	"Symptoms",
}

var clearableKeys = []string{
	models.KeyCycleData,
	models.KeyReminderSettings,
	models.KeyUserPreferences,
	models.KeyHasCompletedOnboarding,
}

// ExportService reads and replaces every blob at once. It takes the cycle
// and settings locks, in that order, so imports and clears cannot
// interleave with a log or toggle action.
type ExportService struct {
	store    KeyValueStore
	cycles   *CycleService
	settings *SettingsService
	newID    func() string
}

func NewExportService(store KeyValueStore, cycles *CycleService, settings *SettingsService) *ExportService {
	return &ExportService{
		store:    store,
		cycles:   cycles,
		settings: settings,
		newID:    uuid.NewString,
	}
}

func (service *ExportService) lockAll() func() {
	service.cycles.mu.Lock()
	service.settings.mu.Lock()
	return func() {
		service.settings.mu.Unlock()
		service.cycles.mu.Unlock()
	}
}

func (service *ExportService) BuildBundle(now time.Time) (models.ExportBundle, error) {
	unlock := service.lockAll()
	defer unlock()

	bundle := models.ExportBundle{
		ExportID:   service.newID(),
		ExportDate: now.UTC(),
	}

	var cycleData models.CycleData
	found, err := loadJSON(service.store, models.KeyCycleData, &cycleData)
	if err != nil {
		return models.ExportBundle{}, fmt.Errorf("%w: %w", ErrExportBuildFailed, err)
	}
	if found {
		bundle.CycleData = &cycleData
	}

	var reminders models.ReminderSettings
	found, err = loadJSON(service.store, models.KeyReminderSettings, &reminders)
	if err != nil {
		return models.ExportBundle{}, fmt.Errorf("%w: %w", ErrExportBuildFailed, err)
	}
	if found {
		bundle.ReminderSettings = &reminders
	}

	var preferences models.UserPreferences
	found, err = loadJSON(service.store, models.KeyUserPreferences, &preferences)
	if err != nil {
		return models.ExportBundle{}, fmt.Errorf("%w: %w", ErrExportBuildFailed, err)
	}
	if found {
		bundle.UserPreferences = &preferences
	}

	return bundle, nil
}

func (service *ExportService) Render(bundle models.ExportBundle, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", ExportFormatJSON:
		return json.MarshalIndent(bundle, "", "  ")
	case ExportFormatYAML:
		return yaml.Marshal(bundle)
	case ExportFormatCSV:
		return renderPeriodLogsCSV(bundle.CycleData)
	default:
		return nil, ErrExportFormatUnsupported
	}
}

func ExportContentType(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case ExportFormatYAML:
		return "application/yaml"
	case ExportFormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

// DecodeBundle reads a JSON or YAML export.
func DecodeBundle(payload []byte, format string) (models.ExportBundle, error) {
	var bundle models.ExportBundle
	var err error
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", ExportFormatJSON:
		err = json.Unmarshal(payload, &bundle)
	case ExportFormatYAML:
		err = yaml.Unmarshal(payload, &bundle)
	default:
		return models.ExportBundle{}, ErrExportFormatUnsupported
	}
	if err != nil {
		return models.ExportBundle{}, fmt.Errorf("%w: %w", ErrImportInvalid, err)
	}
	return bundle, nil
}

// ImportBundle validates every present blob, then writes all of them or
// none. Cached averages are recomputed rather than trusted.
func (service *ExportService) ImportBundle(bundle models.ExportBundle) error {
	writes := make(map[string]any, 3)

	if bundle.CycleData != nil {
		data, err := NormalizeCycleData(*bundle.CycleData)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrImportInvalid, err)
		}
		writes[models.KeyCycleData] = RecomputeAverages(data)
	}
	if bundle.ReminderSettings != nil {
		if err := ValidateReminderSettings(*bundle.ReminderSettings); err != nil {
			return fmt.Errorf("%w: %w", ErrImportInvalid, err)
		}
		writes[models.KeyReminderSettings] = *bundle.ReminderSettings
	}
	if bundle.UserPreferences != nil {
		if !IsValidTheme(bundle.UserPreferences.Theme) {
			return fmt.Errorf("%w: %w", ErrImportInvalid, ErrSettingsThemeInvalid)
		}
		writes[models.KeyUserPreferences] = *bundle.UserPreferences
	}

	if len(writes) == 0 {
		return nil
	}

	unlock := service.lockAll()
	defer unlock()
	if err := saveAllJSON(service.store, writes); err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	return nil
}

// ClearAllData removes every user blob. The access passphrase survives so
// a cleared instance stays protected.
func (service *ExportService) ClearAllData() error {
	unlock := service.lockAll()
	defer unlock()

	if err := service.store.RemoveAll(clearableKeys...); err != nil {
		return fmt.Errorf("%w: %w", ErrClearDataFailed, err)
	}
	return nil
}

func renderPeriodLogsCSV(data *models.CycleData) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return nil, err
	}

	if data != nil {
		for _, entry := range data.PeriodLogs {
			endDate := ""
			length := ""
			if entry.EndDate != nil {
				endDate = ISODate(*entry.EndDate)
				length = strconv.Itoa(DayDifference(entry.StartDate, *entry.EndDate) + 1)
			}
			row := []string{
				ISODate(entry.StartDate),
				endDate,
				length,
				entry.Flow,
				strings.Join(entry.Symptoms, ";"),
			}
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
