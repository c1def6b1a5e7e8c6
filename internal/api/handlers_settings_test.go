package api

import (
	"net/http"
	"testing"
)

func TestReminderSettingsEndpoints(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)

	defaults := doRequest(t, app, http.MethodGet, "/api/settings/reminders", "", nil)
	expectStatus(t, defaults, http.StatusOK)
	var reminders struct {
		PeriodReminder     bool     `json:"periodReminder"`
		PeriodReminderDays int      `json:"periodReminderDays"`
		MedicationReminder bool     `json:"medicationReminder"`
		MedicationTimes    []string `json:"medicationTimes"`
	}
	defaults.decode(t, &reminders)
	if !reminders.PeriodReminder || reminders.PeriodReminderDays != 2 || reminders.MedicationTimes == nil {
		t.Fatalf("unexpected default reminders %s", defaults.body)
	}

	expectStatus(t, doRequest(t, app, http.MethodPut, "/api/settings/reminders", `{"periodReminderDays":9}`, nil), http.StatusBadRequest)
	expectStatus(t, doRequest(t, app, http.MethodPut, "/api/settings/reminders", `{"periodReminderDays":3,"medicationTimes":["8am"]}`, nil), http.StatusBadRequest)

	updated := doRequest(t, app, http.MethodPut, "/api/settings/reminders", `{"periodReminder":false,"periodReminderDays":3,"medicationReminder":true,"medicationTimes":["08:00"]}`, nil)
	expectStatus(t, updated, http.StatusOK)

	toggled := doRequest(t, app, http.MethodPost, "/api/settings/reminders/toggle/periodReminder", "", nil)
	expectStatus(t, toggled, http.StatusOK)
	toggled.decode(t, &reminders)
	if !reminders.PeriodReminder || reminders.PeriodReminderDays != 3 || len(reminders.MedicationTimes) != 1 {
		t.Fatalf("expected toggle to keep other reminder values, got %s", toggled.body)
	}
}

func TestPreferenceEndpoints(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)

	expectStatus(t, doRequest(t, app, http.MethodPut, "/api/settings/preferences", `{"theme":"neon"}`, nil), http.StatusBadRequest)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/settings/preferences/toggle/theme", "", nil), http.StatusBadRequest)

	toggled := doRequest(t, app, http.MethodPost, "/api/settings/preferences/toggle/showFertileWindow", "", nil)
	expectStatus(t, toggled, http.StatusOK)
	var preferences struct {
		Theme             string `json:"theme"`
		ShowFertileWindow bool   `json:"showFertileWindow"`
	}
	toggled.decode(t, &preferences)
	if preferences.Theme != "light" || preferences.ShowFertileWindow {
		t.Fatalf("unexpected toggled preferences %s", toggled.body)
	}

	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/cycle/start", `{"startDate":"2024-02-01"}`, nil), http.StatusCreated)
	calendar := doRequest(t, app, http.MethodGet, "/api/cycle/calendar?month=2024-02", "", nil)
	expectStatus(t, calendar, http.StatusOK)
	var month struct {
		Days []struct {
			IsFertile bool `json:"isFertile"`
		} `json:"days"`
	}
	calendar.decode(t, &month)
	for index, day := range month.Days {
		if day.IsFertile {
			t.Fatalf("expected hidden fertile window, day %d is marked fertile", index+1)
		}
	}
}

func TestOnboardingEndpoints(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)

	var state struct {
		HasCompletedOnboarding bool `json:"hasCompletedOnboarding"`
	}
	initial := doRequest(t, app, http.MethodGet, "/api/onboarding", "", nil)
	expectStatus(t, initial, http.StatusOK)
	initial.decode(t, &state)
	if state.HasCompletedOnboarding {
		t.Fatal("expected onboarding to be pending")
	}

	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/onboarding/complete", "", nil), http.StatusOK)

	completed := doRequest(t, app, http.MethodGet, "/api/onboarding", "", nil)
	completed.decode(t, &state)
	if !state.HasCompletedOnboarding {
		t.Fatal("expected onboarding to be completed")
	}
}
