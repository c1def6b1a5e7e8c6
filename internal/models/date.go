package models

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid calendar date")

// ParseDay reads a calendar date as UTC midnight. Full RFC 3339 timestamps
// are accepted and truncated to their written date part, which is how older
// exports stored dates.
func ParseDay(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if len(value) > len(DateLayout) && value[len(DateLayout)] == 'T' {
		if _, err := time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}, ErrInvalidDate
		}
		value = value[:len(DateLayout)]
	}
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatDay(value time.Time) string {
	return value.Format(DateLayout)
}

func formatOptionalDay(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := FormatDay(*value)
	return &formatted
}

func parseOptionalDay(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := ParseDay(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
