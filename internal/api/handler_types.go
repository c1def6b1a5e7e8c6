package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/luna/internal/services"
)

type Handler struct {
	secretKey      []byte
	location       *time.Location
	cookieSecure   bool
	now            func() time.Time
	cycles         *services.CycleService
	settings       *services.SettingsService
	onboarding     *services.OnboardingService
	exports        *services.ExportService
	access         *services.AccessService
	sessionLimiter *attemptLimiter
}

const (
	authCookieName  = "luna_auth"
	sessionTokenTTL = 7 * 24 * time.Hour

	sessionAttemptLimit  = 8
	sessionAttemptWindow = 15 * time.Minute

	maxUpcomingCount = 12
)

type authClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type sessionRequest struct {
	Passphrase string `json:"passphrase"`
}

type periodStartRequest struct {
	StartDate string `json:"startDate"`
}

type periodEndRequest struct {
	EndDate  string   `json:"endDate"`
	Flow     string   `json:"flow"`
	Symptoms []string `json:"symptoms"`
}
