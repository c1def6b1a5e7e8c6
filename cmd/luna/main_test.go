package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/luna/internal/api"
)

type memoryStore map[string]string

func (store memoryStore) Get(key string) (string, bool, error) {
	value, ok := store[key]
	return value, ok, nil
}

func (store memoryStore) Set(key string, value string) error {
	store[key] = value
	return nil
}

func (store memoryStore) RemoveAll(keys ...string) error {
	for _, key := range keys {
		delete(store, key)
	}
	return nil
}

func runLuna(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var output bytes.Buffer
	root.SetOut(&output)
	root.SetErr(&output)
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	err := root.Execute()
	return output.String(), err
}

func mustRunLuna(t *testing.T, dbPath string, args ...string) string {
	t.Helper()

	output, err := runLuna(t, dbPath, args...)
	if err != nil {
		t.Fatalf("luna %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return output
}

func clearLunaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DB_PATH", "PORT", "SECRET_KEY", "COOKIE_SECURE", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("TZ", "UTC")
}

func TestLogAndStatusCommands(t *testing.T) {
	clearLunaEnv(t)
	dbPath := filepath.Join(t.TempDir(), "luna.db")

	mustRunLuna(t, dbPath, "log", "start", "2024-01-01")
	mustRunLuna(t, dbPath, "log", "end", "2024-01-05", "--flow", "light", "--symptom", "cramps", "--symptom", "fatigue")
	mustRunLuna(t, dbPath, "log", "start", "2024-01-29")

	if _, err := runLuna(t, dbPath, "log", "start", "2024-01-30"); err == nil {
		t.Fatal("expected a second open period to be rejected")
	}
	if _, err := runLuna(t, dbPath, "log", "end", "not-a-date"); err == nil {
		t.Fatal("expected an invalid date to be rejected")
	}

	status := mustRunLuna(t, dbPath, "--today", "2024-01-31", "status")
	if !strings.Contains(status, "Period") || !strings.Contains(status, "Cycle day:        3") {
		t.Fatalf("unexpected status output:\n%s", status)
	}

	insights := mustRunLuna(t, dbPath, "insights")
	if !strings.Contains(insights, "Average cycle:    28 days (Normal)") {
		t.Fatalf("unexpected insights output:\n%s", insights)
	}

	statusJSON := mustRunLuna(t, dbPath, "--today", "2024-01-31", "status", "--json")
	if !strings.Contains(statusJSON, `"currentPhase": "Period"`) {
		t.Fatalf("unexpected status json:\n%s", statusJSON)
	}
}

func TestCalendarAndPredictionCommands(t *testing.T) {
	clearLunaEnv(t)
	dbPath := filepath.Join(t.TempDir(), "luna.db")

	empty := mustRunLuna(t, dbPath, "predictions")
	if !strings.Contains(empty, "Log a period") {
		t.Fatalf("expected hint without history, got:\n%s", empty)
	}

	mustRunLuna(t, dbPath, "log", "start", "2024-04-01")
	calendar := mustRunLuna(t, dbPath, "calendar", "--month", "2024-04")
	if !strings.HasPrefix(calendar, "April 2024") || !strings.Contains(calendar, "[ 1]") || !strings.Contains(calendar, " 29 *") {
		t.Fatalf("unexpected calendar output:\n%s", calendar)
	}

	predictions := mustRunLuna(t, dbPath, "predictions", "--count", "2")
	if !strings.Contains(predictions, "2024-04-29, 2024-05-27") || !strings.Contains(predictions, "2024-04-10 to 2024-04-16") {
		t.Fatalf("unexpected predictions output:\n%s", predictions)
	}
}

func TestExportImportAndClearCommands(t *testing.T) {
	clearLunaEnv(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "source.db")
	target := filepath.Join(dir, "target.db")
	exportPath := filepath.Join(dir, "export.yaml")

	mustRunLuna(t, source, "log", "start", "2024-01-01")
	mustRunLuna(t, source, "export", "--format", "yaml", "--output", exportPath)

	if _, err := os.Stat(exportPath); err != nil {
		t.Fatalf("expected export file: %v", err)
	}

	mustRunLuna(t, target, "import", exportPath)
	exported := mustRunLuna(t, target, "export")
	if !strings.Contains(exported, `"startDate": "2024-01-01"`) {
		t.Fatalf("expected imported period in export:\n%s", exported)
	}

	if _, err := runLuna(t, target, "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	mustRunLuna(t, target, "clear", "--yes")
	status := mustRunLuna(t, target, "status")
	if !strings.Contains(status, "Not enough data") {
		t.Fatalf("expected empty history after clear, got:\n%s", status)
	}
}

func TestServeRequiresSecretKey(t *testing.T) {
	clearLunaEnv(t)

	_, err := runLuna(t, filepath.Join(t.TempDir(), "luna.db"), "serve")
	if err == nil || !strings.Contains(err.Error(), "SECRET_KEY") {
		t.Fatalf("expected SECRET_KEY error, got %v", err)
	}
}

func TestServerAppServesHealth(t *testing.T) {
	t.Parallel()

	handler, err := api.NewHandler(memoryStore{}, "0123456789abcdef0123456789abcdef", time.UTC, false)
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}
	app := newServerApp(handler)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}

func TestImportFormatFromPath(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"backup.yaml": "yaml",
		"backup.YML":  "yaml",
		"backup.json": "json",
		"backup":      "json",
	}
	for path, want := range cases {
		if got := importFormatFromPath(path); got != want {
			t.Fatalf("importFormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
