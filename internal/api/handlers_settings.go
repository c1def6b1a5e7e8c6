package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/luna/internal/models"
)

func (handler *Handler) GetReminderSettings(c *fiber.Ctx) error {
	settings, err := handler.settings.LoadReminderSettings()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateReminderSettings(c *fiber.Ctx) error {
	var settings models.ReminderSettings
	if err := c.BodyParser(&settings); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	saved, err := handler.settings.SaveReminderSettings(settings)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(saved)
}

func (handler *Handler) ToggleReminder(c *fiber.Ctx) error {
	settings, err := handler.settings.ToggleReminder(c.Params("field"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) GetPreferences(c *fiber.Ctx) error {
	preferences, err := handler.settings.LoadPreferences()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(preferences)
}

func (handler *Handler) UpdatePreferences(c *fiber.Ctx) error {
	var preferences models.UserPreferences
	if err := c.BodyParser(&preferences); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	saved, err := handler.settings.SavePreferences(preferences)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(saved)
}

func (handler *Handler) TogglePreference(c *fiber.Ctx) error {
	preferences, err := handler.settings.TogglePreference(c.Params("field"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(preferences)
}
