package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/luna/internal/models"
)

func (handler *Handler) GetCycleData(c *fiber.Ctx) error {
	data, err := handler.cycles.LoadCycleData()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(data)
}

func (handler *Handler) GetCycleStatus(c *fiber.Ctx) error {
	today, err := dayQuery(c, "today", handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}

	status, err := handler.cycles.Status(today)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(status)
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	count, err := countQuery(c, "count")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	insights, err := handler.cycles.Insights(count)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(insights)
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	count, err := countQuery(c, "count")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	upcoming, window, err := handler.cycles.Predictions(count)
	if err != nil {
		return serviceError(c, err)
	}

	dates := make([]string, 0, len(upcoming))
	for _, day := range upcoming {
		dates = append(dates, models.FormatDay(day))
	}
	return c.JSON(fiber.Map{
		"upcomingPeriods": dates,
		"fertileWindow":   window,
	})
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	month, err := monthQuery(c, "month", handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month, expected YYYY-MM")
	}

	preferences, err := handler.settings.LoadPreferences()
	if err != nil {
		return serviceError(c, err)
	}
	days, err := handler.cycles.Calendar(month, preferences)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"month": month.Format("2006-01"),
		"days":  days,
	})
}

func (handler *Handler) LogPeriodStart(c *fiber.Ctx) error {
	var request periodStartRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	day, err := models.ParseDay(request.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid startDate")
	}

	data, err := handler.cycles.LogPeriodStart(day)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(data)
}

func (handler *Handler) LogPeriodEnd(c *fiber.Ctx) error {
	var request periodEndRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	day, err := models.ParseDay(request.EndDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid endDate")
	}

	data, err := handler.cycles.LogPeriodEnd(day, request.Flow, request.Symptoms)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(data)
}

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	return c.JSON(models.DefaultBuiltinSymptoms())
}
