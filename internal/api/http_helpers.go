package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/luna/internal/models"
	"github.com/terraincognita07/luna/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps a service error onto a status code. Rejected history
// events conflict with the stored state. An invalid import is bad input
// whatever the underlying cause.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrImportInvalid):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNoOpenPeriod),
		errors.Is(err, services.ErrPeriodAlreadyOpen),
		errors.Is(err, services.ErrPeriodStartOutOfOrder),
		errors.Is(err, services.ErrPeriodEndBeforeStart):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidFlow),
		errors.Is(err, services.ErrInvalidSymptom),
		errors.Is(err, services.ErrSettingsThemeInvalid),
		errors.Is(err, services.ErrSettingsReminderDaysOutOfRange),
		errors.Is(err, services.ErrSettingsMedicationTimeInvalid),
		errors.Is(err, services.ErrSettingsUnknownToggle),
		errors.Is(err, services.ErrExportFormatUnsupported):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientData):
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// dayQuery reads an optional YYYY-MM-DD query value, falling back to
// fallback when it is absent.
func dayQuery(c *fiber.Ctx, key string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	return models.ParseDay(raw)
}

func countQuery(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 || count > maxUpcomingCount {
		return 0, fmt.Errorf("%s must be between 1 and %d", key, maxUpcomingCount)
	}
	return count, nil
}

func monthQuery(c *fiber.Ctx, key string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Date(fallback.Year(), fallback.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.ParseInLocation("2006-01", raw, time.UTC)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("luna-export-%s.%s", now.Format("2006-01-02"), extension)
}
