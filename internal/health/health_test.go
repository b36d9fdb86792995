package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubStore struct{ err error }

func (s stubStore) Ping(context.Context) error { return s.err }
func (s stubStore) Backend() string            { return "sqlite" }

type stubRunner bool

func (r stubRunner) Running() bool { return bool(r) }

func TestChecker_ReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		store      Store
		runner     Runner
		wantStatus int
		wantHealth Status
	}{
		{name: "all healthy", store: stubStore{}, runner: stubRunner(true), wantStatus: http.StatusOK, wantHealth: StatusHealthy},
		{name: "store down", store: stubStore{err: errors.New("locked")}, runner: stubRunner(true), wantStatus: http.StatusServiceUnavailable, wantHealth: StatusUnhealthy},
		{name: "scheduler stopped", store: stubStore{}, runner: stubRunner(false), wantStatus: http.StatusServiceUnavailable, wantHealth: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health/ready", NewChecker(tt.store, tt.runner, "test").ReadyHandler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body HealthStatus
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != tt.wantHealth {
				t.Errorf("health = %q, want %q", body.Status, tt.wantHealth)
			}
			if _, ok := body.Checks["store.sqlite"]; !ok {
				t.Errorf("checks = %v, want store.sqlite entry", body.Checks)
			}
		})
	}
}

func TestChecker_LiveHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health/live", NewChecker(nil, nil, "test").LiveHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
