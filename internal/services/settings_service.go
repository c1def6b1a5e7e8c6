package services

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/terraincognita07/luna/internal/models"
)

var (
	ErrSettingsLoadFailed             = errors.New("load settings failed")
	ErrSettingsSaveFailed             = errors.New("save settings failed")
	ErrSettingsThemeInvalid           = errors.New("settings theme invalid")
	ErrSettingsReminderDaysOutOfRange = errors.New("settings reminder days out of range")
	ErrSettingsMedicationTimeInvalid  = errors.New("settings medication time invalid")
	ErrSettingsUnknownToggle          = errors.New("settings toggle unknown")
)

const (
	minPeriodReminderDays = 1
	maxPeriodReminderDays = 7
)

var medicationTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// SettingsService guards each read-modify-write of the settings blobs with
// mu so concurrent toggles of different fields both land.
type SettingsService struct {
	store KeyValueStore
	mu    sync.Mutex
}

func NewSettingsService(store KeyValueStore) *SettingsService {
	return &SettingsService{store: store}
}

func (service *SettingsService) LoadReminderSettings() (models.ReminderSettings, error) {
	settings := models.DefaultReminderSettings()
	if _, err := loadJSON(service.store, models.KeyReminderSettings, &settings); err != nil {
		return models.ReminderSettings{}, fmt.Errorf("%w: %w", ErrSettingsLoadFailed, err)
	}
	if settings.MedicationTimes == nil {
		settings.MedicationTimes = []string{}
	}
	return settings, nil
}

func (service *SettingsService) SaveReminderSettings(settings models.ReminderSettings) (models.ReminderSettings, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.storeReminderSettings(settings)
}

func (service *SettingsService) storeReminderSettings(settings models.ReminderSettings) (models.ReminderSettings, error) {
	if err := ValidateReminderSettings(settings); err != nil {
		return models.ReminderSettings{}, err
	}
	if settings.MedicationTimes == nil {
		settings.MedicationTimes = []string{}
	}
	if err := saveJSON(service.store, models.KeyReminderSettings, settings); err != nil {
		return models.ReminderSettings{}, fmt.Errorf("%w: %w", ErrSettingsSaveFailed, err)
	}
	return settings, nil
}

func (service *SettingsService) ToggleReminder(field string) (models.ReminderSettings, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	settings, err := service.LoadReminderSettings()
	if err != nil {
		return models.ReminderSettings{}, err
	}
	switch field {
	case "periodReminder":
		settings.PeriodReminder = !settings.PeriodReminder
	case "ovulationReminder":
		settings.OvulationReminder = !settings.OvulationReminder
	case "medicationReminder":
		settings.MedicationReminder = !settings.MedicationReminder
	default:
		return models.ReminderSettings{}, ErrSettingsUnknownToggle
	}
	return service.storeReminderSettings(settings)
}

func (service *SettingsService) LoadPreferences() (models.UserPreferences, error) {
	preferences := models.DefaultUserPreferences()
	if _, err := loadJSON(service.store, models.KeyUserPreferences, &preferences); err != nil {
		return models.UserPreferences{}, fmt.Errorf("%w: %w", ErrSettingsLoadFailed, err)
	}
	return preferences, nil
}

func (service *SettingsService) SavePreferences(preferences models.UserPreferences) (models.UserPreferences, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.storePreferences(preferences)
}

func (service *SettingsService) storePreferences(preferences models.UserPreferences) (models.UserPreferences, error) {
	if !IsValidTheme(preferences.Theme) {
		return models.UserPreferences{}, ErrSettingsThemeInvalid
	}
	if err := saveJSON(service.store, models.KeyUserPreferences, preferences); err != nil {
		return models.UserPreferences{}, fmt.Errorf("%w: %w", ErrSettingsSaveFailed, err)
	}
	return preferences, nil
}

// TogglePreference flips a boolean preference by its JSON name. Theme is
// not a toggle.
func (service *SettingsService) TogglePreference(field string) (models.UserPreferences, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	preferences, err := service.LoadPreferences()
	if err != nil {
		return models.UserPreferences{}, err
	}
	switch field {
	case "useLocalStorageOnly":
		preferences.UseLocalStorageOnly = !preferences.UseLocalStorageOnly
	case "showFertileWindow":
		preferences.ShowFertileWindow = !preferences.ShowFertileWindow
	case "showPredictions":
		preferences.ShowPredictions = !preferences.ShowPredictions
	default:
		return models.UserPreferences{}, ErrSettingsUnknownToggle
	}
	return service.storePreferences(preferences)
}

func ValidateReminderSettings(settings models.ReminderSettings) error {
	if settings.PeriodReminderDays < minPeriodReminderDays || settings.PeriodReminderDays > maxPeriodReminderDays {
		return ErrSettingsReminderDaysOutOfRange
	}
	for _, value := range settings.MedicationTimes {
		if !medicationTimePattern.MatchString(value) {
			return ErrSettingsMedicationTimeInvalid
		}
	}
	return nil
}

func IsValidTheme(theme string) bool {
	switch theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
		return true
	default:
		return false
	}
}
