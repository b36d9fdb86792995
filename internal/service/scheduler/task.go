package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-priority-board/internal/observability/metrics"
)

var (
	ErrInvalidInterval = errors.New("task interval must be positive")
	ErrTaskPanicked    = errors.New("task panicked")
)

// Task is a cancellable periodic job. Stop is idempotent and safe on a nil Task.
type Task struct {
	name     string
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Every runs fn on its own goroutine once per interval until ctx ends or Stop
// is called. A failing or panicking cycle is logged and the schedule continues.
func Every(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error, boardMetrics *metrics.BoardMetrics) (*Task, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidInterval)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_ = runCycle(taskCtx, name, fn, boardMetrics)
			case <-taskCtx.Done():
				slog.DebugContext(taskCtx, "scheduler task stopped",
					slog.String("task", name),
				)
				return
			}
		}
	}()

	slog.DebugContext(ctx, "scheduler task started",
		slog.String("task", name),
		slog.Duration("interval", interval),
	)

	return t, nil
}

func (t *Task) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Stop cancels the task and waits for an in-flight cycle to return.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.stopOnce.Do(func() {
		t.cancel()
		<-t.done
	})
}

// runCycle isolates one cycle: a panic becomes an error and never escapes.
func runCycle(ctx context.Context, name string, fn func(context.Context) error, boardMetrics *metrics.BoardMetrics) (err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}

		if boardMetrics != nil {
			boardMetrics.RecordCycleDuration(ctx, name, time.Since(start))
		}

		if err != nil {
			reason := "error"
			if errors.Is(err, ErrTaskPanicked) {
				reason = "panic"
			}
			slog.ErrorContext(ctx, "scheduler task failed",
				slog.String("event", "scheduler.task.fail"),
				slog.String("task", name),
				slog.String("reason", reason),
				slog.String("error", err.Error()),
			)
			if boardMetrics != nil {
				boardMetrics.RecordTaskFailure(ctx, name, reason)
			}
		}
	}()

	return fn(ctx)
}
