package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/KasumiMercury/primind-priority-board/internal/observability/logging"
)

func TestInit_WithoutEndpoint(t *testing.T) {
	res, err := Init(context.Background(), Config{
		ServiceInfo: logging.ServiceInfo{Name: "priority-board", Version: "test"},
		Environment: logging.EnvDev,
		LogLevel:    slog.LevelDebug,
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if res.Logger() == nil {
		t.Fatal("Logger() = nil")
	}
	if err := res.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
