package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (store *memoryStore) Get(key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *memoryStore) Set(key string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}

func (store *memoryStore) RemoveAll(keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, key := range keys {
		delete(store.values, key)
	}
	return nil
}

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler, *memoryStore) {
	t.Helper()

	store := newMemoryStore()
	handler, err := NewHandler(store, testSecretKey, time.UTC, false)
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, store
}

type testResponse struct {
	status  int
	body    []byte
	headers map[string]string
	cookies map[string]string
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(response.body, target); err != nil {
		t.Fatalf("decode response %q: %v", response.body, err)
	}
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string, headers map[string]string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}

	result := testResponse{
		status:  response.StatusCode,
		body:    payload,
		headers: map[string]string{},
		cookies: map[string]string{},
	}
	for key := range response.Header {
		result.headers[key] = response.Header.Get(key)
	}
	for _, cookie := range response.Cookies() {
		result.cookies[cookie.Name] = cookie.Value
	}
	return result
}

func expectStatus(t *testing.T, response testResponse, want int) {
	t.Helper()
	if response.status != want {
		t.Fatalf("expected status %d, got %d (body %s)", want, response.status, response.body)
	}
}
