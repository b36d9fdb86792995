package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestEvery_KeepsRunningAfterPanic(t *testing.T) {
	var calls atomic.Int32

	task, err := Every(context.Background(), "test", 5*time.Millisecond, func(context.Context) error {
		n := calls.Add(1)
		if n == 1 {
			panic("boom")
		}
		if n == 2 {
			return errors.New("cycle failed")
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Every() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 4 {
		if time.Now().After(deadline) {
			t.Fatalf("task ran %d times before deadline, want at least 4", calls.Load())
		}
		time.Sleep(time.Millisecond)
	}

	task.Stop()
	task.Stop()

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := calls.Load(); got != stopped {
		t.Errorf("task ran after Stop: %d -> %d", stopped, got)
	}
}

func TestEvery_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	task, err := Every(ctx, "test", time.Hour, func(context.Context) error { return nil }, nil)
	if err != nil {
		t.Fatalf("Every() error = %v", err)
	}

	cancel()

	select {
	case <-task.done:
	case <-time.After(time.Second):
		t.Fatal("task did not exit after context cancel")
	}
	task.Stop()
}

func TestEvery_InvalidInterval(t *testing.T) {
	_, err := Every(context.Background(), "test", 0, func(context.Context) error { return nil }, nil)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Every() error = %v, want %v", err, ErrInvalidInterval)
	}
}

func TestTask_StopNil(t *testing.T) {
	var task *Task
	task.Stop()
	if task.Name() != "" {
		t.Errorf("Name() = %q, want empty", task.Name())
	}
}

func TestRunCycle_RecoversPanic(t *testing.T) {
	err := runCycle(context.Background(), "test", func(context.Context) error {
		panic("boom")
	}, nil)

	if !errors.Is(err, ErrTaskPanicked) {
		t.Errorf("runCycle() error = %v, want %v", err, ErrTaskPanicked)
	}
}
