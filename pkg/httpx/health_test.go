package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/itemboard/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.HealthHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Body.String(); got != "{\"status\":\"ok\"}\n" {
		t.Errorf("body: got %q", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

type readyBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func serveReady(t *testing.T, checks map[string]httpx.HealthChecker) (int, readyBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.ReadyHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))
	var body readyBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, body
}

func TestReadyHandler_AllHealthy(t *testing.T) {
	code, body := serveReady(t, map[string]httpx.HealthChecker{
		"store": &stubChecker{},
		"redis": &stubChecker{},
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body.Status != "ok" || body.Checks["store"] != "ok" || body.Checks["redis"] != "ok" {
		t.Errorf("unexpected response: %+v", body)
	}
}

func TestReadyHandler_StoreDown(t *testing.T) {
	code, body := serveReady(t, map[string]httpx.HealthChecker{
		"store":     &stubChecker{err: errors.New("conn refused")},
		"event_bus": &stubChecker{},
	})
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if body.Status != "degraded" || body.Checks["store"] != "unreachable" || body.Checks["event_bus"] != "ok" {
		t.Errorf("unexpected response: %+v", body)
	}
}

func TestReadyHandler_SkipsNilCheckers(t *testing.T) {
	code, body := serveReady(t, map[string]httpx.HealthChecker{
		"store": &stubChecker{},
		"redis": nil,
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if _, ok := body.Checks["redis"]; ok {
		t.Errorf("nil checker should not be reported: %+v", body)
	}
}
