package models

import "time"

// ExportBundle is a snapshot of every blob the app stores. Absent blobs
// export as null.
type ExportBundle struct {
	ExportID         string            `json:"exportId" yaml:"exportId"`
	ExportDate       time.Time         `json:"exportDate" yaml:"exportDate"`
	CycleData        *CycleData        `json:"cycleData" yaml:"cycleData"`
	ReminderSettings *ReminderSettings `json:"reminderSettings" yaml:"reminderSettings"`
	UserPreferences  *UserPreferences  `json:"userPreferences" yaml:"userPreferences"`
}
