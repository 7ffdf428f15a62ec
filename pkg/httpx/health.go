package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const readyTimeout = 2 * time.Second

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (item stores, RedisClient, EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers the liveness probe. It never touches dependencies:
// a process that can serve this request is alive.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ReadyHandler probes every named checker concurrently and answers 503 with
// status "degraded" if any of them fail. Nil checkers are skipped.
func ReadyHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		resp := readyResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for name, c := range checks {
			if c == nil {
				continue
			}
			wg.Add(1)
			go func(name string, c HealthChecker) {
				defer wg.Done()
				result := "ok"
				if err := c.Ping(ctx); err != nil {
					result = "unreachable"
				}
				mu.Lock()
				resp.Checks[name] = result
				if result != "ok" {
					resp.Status = "degraded"
				}
				mu.Unlock()
			}(name, c)
		}
		wg.Wait()

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
