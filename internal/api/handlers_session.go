package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/luna/internal/services"
)

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.sessionLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts")
	}

	var request sessionRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.access.VerifyPassphrase(request.Passphrase)
	switch {
	case errors.Is(err, services.ErrPassphraseMissing):
		return apiError(c, fiber.StatusBadRequest, "passphrase is required")
	case errors.Is(err, services.ErrPassphraseNotConfigured):
		return apiError(c, fiber.StatusConflict, "no passphrase configured")
	case errors.Is(err, services.ErrPassphraseInvalid):
		handler.sessionLimiter.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid passphrase")
	case err != nil:
		return apiError(c, fiber.StatusInternalServerError, "failed to verify passphrase")
	}
	handler.sessionLimiter.reset(limiterKey)

	token, err := handler.buildToken(sessionTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

func (handler *Handler) DeleteSession(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}
