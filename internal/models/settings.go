package models

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Storage keys of the blobs the app keeps in the key-value store.
const (
	KeyCycleData              = "cycleData"
	KeyReminderSettings       = "reminderSettings"
	KeyUserPreferences        = "userPreferences"
	KeyHasCompletedOnboarding = "hasCompletedOnboarding"
	KeyAccessPassphraseHash   = "accessPassphraseHash"
)

type ReminderSettings struct {
	PeriodReminder     bool     `json:"periodReminder" yaml:"periodReminder"`
	PeriodReminderDays int      `json:"periodReminderDays" yaml:"periodReminderDays"`
	OvulationReminder  bool     `json:"ovulationReminder" yaml:"ovulationReminder"`
	MedicationReminder bool     `json:"medicationReminder" yaml:"medicationReminder"`
	MedicationTimes    []string `json:"medicationTimes" yaml:"medicationTimes"`
}

func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		PeriodReminder:     true,
		PeriodReminderDays: 2,
		OvulationReminder:  true,
		MedicationReminder: false,
		MedicationTimes:    []string{},
	}
}

type UserPreferences struct {
	Theme               string `json:"theme" yaml:"theme"`
	UseLocalStorageOnly bool   `json:"useLocalStorageOnly" yaml:"useLocalStorageOnly"`
	ShowFertileWindow   bool   `json:"showFertileWindow" yaml:"showFertileWindow"`
	ShowPredictions     bool   `json:"showPredictions" yaml:"showPredictions"`
}

func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		Theme:               ThemeLight,
		UseLocalStorageOnly: true,
		ShowFertileWindow:   true,
		ShowPredictions:     true,
	}
}
