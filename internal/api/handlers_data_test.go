package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/terraincognita07/luna/internal/models"
)

func TestExportFormats(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/cycle/start", `{"startDate":"2024-01-01"}`, nil), http.StatusCreated)

	jsonExport := doRequest(t, app, http.MethodGet, "/api/export", "", nil)
	expectStatus(t, jsonExport, http.StatusOK)
	if !strings.HasPrefix(jsonExport.headers["Content-Type"], "application/json") {
		t.Fatalf("expected json content type, got %q", jsonExport.headers["Content-Type"])
	}
	if disposition := jsonExport.headers["Content-Disposition"]; !strings.Contains(disposition, "luna-export-2024-02-10.json") {
		t.Fatalf("unexpected content disposition %q", disposition)
	}
	var bundle struct {
		ExportID  string `json:"exportId"`
		CycleData struct {
			PeriodLogs []any `json:"periodLogs"`
		} `json:"cycleData"`
	}
	jsonExport.decode(t, &bundle)
	if bundle.ExportID == "" || len(bundle.CycleData.PeriodLogs) != 1 {
		t.Fatalf("unexpected export bundle %s", jsonExport.body)
	}

	yamlExport := doRequest(t, app, http.MethodGet, "/api/export?format=yaml", "", nil)
	expectStatus(t, yamlExport, http.StatusOK)
	if !strings.Contains(string(yamlExport.body), "startDate: \"2024-01-01\"") {
		t.Fatalf("expected yaml period log, got:\n%s", yamlExport.body)
	}

	csvExport := doRequest(t, app, http.MethodGet, "/api/export?format=csv", "", nil)
	expectStatus(t, csvExport, http.StatusOK)
	if !strings.HasPrefix(string(csvExport.body), "Start date,End date") {
		t.Fatalf("expected csv header, got:\n%s", csvExport.body)
	}

	expectStatus(t, doRequest(t, app, http.MethodGet, "/api/export?format=xml", "", nil), http.StatusBadRequest)
}

func TestImportAndClear(t *testing.T) {
	t.Parallel()

	app, handler, store := newTestApp(t)
	if err := handler.access.SetPassphrase("MoonPhase42"); err != nil {
		t.Fatalf("SetPassphrase returned error: %v", err)
	}
	token, err := handler.buildToken(0)
	if err != nil {
		t.Fatalf("buildToken returned error: %v", err)
	}
	auth := map[string]string{"Authorization": "Bearer " + token}

	invalid := `{"cycleData":{"periodLogs":[{"startDate":"2024-02-01","endDate":"2024-01-01"}]}}`
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/import", invalid, auth), http.StatusBadRequest)
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/import", `not json`, auth), http.StatusBadRequest)

	payload := `{"cycleData":{"periodLogs":[{"startDate":"2024-01-01","endDate":"2024-01-04","flow":"light","symptoms":["acne"]}]},` +
		`"userPreferences":{"theme":"dark","showFertileWindow":true,"showPredictions":true}}`
	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/import", payload, auth), http.StatusOK)

	preferences := doRequest(t, app, http.MethodGet, "/api/settings/preferences", "", auth)
	expectStatus(t, preferences, http.StatusOK)
	if !strings.Contains(string(preferences.body), `"theme":"dark"`) {
		t.Fatalf("expected imported dark theme, got %s", preferences.body)
	}

	expectStatus(t, doRequest(t, app, http.MethodDelete, "/api/data", "", nil), http.StatusUnauthorized)
	expectStatus(t, doRequest(t, app, http.MethodDelete, "/api/data", "", auth), http.StatusNoContent)

	if _, ok := store.values[models.KeyCycleData]; ok {
		t.Fatal("expected cycle data to be cleared")
	}
	if _, ok := store.values[models.KeyAccessPassphraseHash]; !ok {
		t.Fatal("expected passphrase hash to survive a data clear")
	}
}

func TestImportYAMLByContentType(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	payload := "cycleData:\n  periodLogs:\n    - startDate: \"2024-01-01\"\n      endDate: null\n"

	expectStatus(t, doRequest(t, app, http.MethodPost, "/api/import", payload, map[string]string{"Content-Type": "application/yaml"}), http.StatusOK)

	cycle := doRequest(t, app, http.MethodGet, "/api/cycle", "", nil)
	expectStatus(t, cycle, http.StatusOK)
	if !strings.Contains(string(cycle.body), `"startDate":"2024-01-01"`) {
		t.Fatalf("expected imported period, got %s", cycle.body)
	}
}
