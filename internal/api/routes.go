package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Post("/session", handler.CreateSession)
	api.Delete("/session", handler.DeleteSession)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("", handler.GetCycleData)
	cycle.Get("/status", handler.GetCycleStatus)
	cycle.Get("/insights", handler.GetInsights)
	cycle.Get("/calendar", handler.GetCalendar)
	cycle.Get("/predictions", handler.GetPredictions)
	cycle.Post("/start", handler.LogPeriodStart)
	cycle.Post("/end", handler.LogPeriodEnd)

	api.Get("/symptoms", handler.AuthRequired, handler.GetSymptoms)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Get("/reminders", handler.GetReminderSettings)
	settings.Put("/reminders", handler.UpdateReminderSettings)
	settings.Post("/reminders/toggle/:field", handler.ToggleReminder)
	settings.Get("/preferences", handler.GetPreferences)
	settings.Put("/preferences", handler.UpdatePreferences)
	settings.Post("/preferences/toggle/:field", handler.TogglePreference)

	onboarding := api.Group("/onboarding", handler.AuthRequired)
	onboarding.Get("", handler.GetOnboarding)
	onboarding.Post("/complete", handler.CompleteOnboarding)

	api.Get("/export", handler.AuthRequired, handler.Export)
	api.Post("/import", handler.AuthRequired, handler.Import)
	api.Delete("/data", handler.AuthRequired, handler.ClearAllData)
}
