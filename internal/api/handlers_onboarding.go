package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetOnboarding(c *fiber.Ctx) error {
	completed, err := handler.onboarding.IsCompleted()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"hasCompletedOnboarding": completed})
}

func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	if err := handler.onboarding.Complete(); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"hasCompletedOnboarding": true})
}
