package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-priority-board/internal/observability/metrics"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		t.Fatalf("NewHTTPMetrics() error = %v", err)
	}

	r := gin.New()
	r.Use(Gin(GinConfig{SkipPaths: []string{"/health"}, Module: "test", HTTPMetrics: httpMetrics}))
	r.Use(PanicRecoveryGin())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/ok/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
	r.GET("/boom", func(*gin.Context) { panic("boom") })
	return r
}

func TestGin(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "skipped path", path: "/health", want: http.StatusOK},
		{name: "traced route", path: "/ok/7", want: http.StatusOK},
		{name: "not found", path: "/missing", want: http.StatusNotFound},
		{name: "panic", path: "/boom", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
