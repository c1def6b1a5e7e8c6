package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/luna/internal/services"
)

func NewHandler(store services.KeyValueStore, secretKey string, location *time.Location, cookieSecure bool) (*Handler, error) {
	if secretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	cycles := services.NewCycleService(store)
	settings := services.NewSettingsService(store)
	return &Handler{
		secretKey:      []byte(secretKey),
		location:       location,
		cookieSecure:   cookieSecure,
		now:            time.Now,
		cycles:         cycles,
		settings:       settings,
		onboarding:     services.NewOnboardingService(store),
		exports:        services.NewExportService(store, cycles, settings),
		access:         services.NewAccessService(store),
		sessionLimiter: newAttemptLimiter(sessionAttemptLimit, sessionAttemptWindow),
	}, nil
}

func (handler *Handler) today() time.Time {
	return services.TodayAt(handler.now(), handler.location)
}
