package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	api "github.com/tbakken/delelager/internal/http"
	handler "github.com/tbakken/delelager/internal/http/handlers"
	"github.com/tbakken/delelager/internal/http/ratelimit"
	"github.com/tbakken/delelager/internal/repo"
	"github.com/tbakken/delelager/internal/service"
	"github.com/tbakken/delelager/internal/sse"
)

type testEnv struct {
	router http.Handler
	items  *repo.InMemoryItemRepository
	audit  *repo.InMemoryAuditRepository
	hub    *sse.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Generous limits so the limiter never interferes with test traffic.
	ratelimit.Configure(10000, 10000)
	ratelimit.CleanupAllVisitors()

	items := repo.NewInMemoryItemRepository()
	audit := repo.NewInMemoryAuditRepository()
	hub := sse.NewHub(zerolog.Nop())
	svc := service.NewInventoryService(items, audit, repo.NewInMemoryTxRunner(items, audit), hub, zerolog.Nop())

	handler.SetInventoryService(svc)
	handler.SetHub(hub)
	handler.SetLogger(zerolog.Nop())

	return &testEnv{
		router: api.NewRouter(zerolog.Nop()),
		items:  items,
		audit:  audit,
		hub:    hub,
	}
}

func (e *testEnv) request(t *testing.T, method, target, username string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if username != "" {
		req.Header.Set("x-username", username)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return v
}
