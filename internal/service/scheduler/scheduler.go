package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/metrics"
	"github.com/KasumiMercury/primind-priority-board/internal/observability/tracing"
	"github.com/KasumiMercury/primind-priority-board/internal/service/board"
)

const (
	TaskClockTick       = "clock_tick"
	TaskReminderRecheck = "reminder_recheck"
	TaskDataRefresh     = "data_refresh"

	DefaultClockTick       = 60 * time.Second
	DefaultRecheckInterval = 60 * time.Second
	DefaultRefreshInterval = 5 * time.Second
	DefaultRecheckDebounce = 10 * time.Second
)

type Board interface {
	Reminders(ctx context.Context, now time.Time) []domain.Reminder
	Snapshot(ctx context.Context, now time.Time) board.Snapshot
}

type Config struct {
	ClockTick       time.Duration
	RecheckInterval time.Duration
	RefreshInterval time.Duration
	// RecheckDebounce suppresses a periodic recheck this soon after one that
	// left reminders on screen. Forced rechecks ignore it.
	RecheckDebounce time.Duration
}

func DefaultConfig() Config {
	return Config{
		ClockTick:       DefaultClockTick,
		RecheckInterval: DefaultRecheckInterval,
		RefreshInterval: DefaultRefreshInterval,
		RecheckDebounce: DefaultRecheckDebounce,
	}
}

// Scheduler drives the clock tick, reminder recheck and data refresh tasks
// and keeps the rendering sink in step with the notification set.
type Scheduler struct {
	board    Board
	sink     domain.ReminderSink
	recorder domain.BoardRecorder
	metrics  *metrics.BoardMetrics
	cfg      Config
	clock    func() time.Time

	lifecycleMu sync.Mutex
	running     bool
	tasks       []*Task

	recheckMu   sync.Mutex
	shown       map[string]struct{}
	lastRecheck time.Time

	stateMu sync.RWMutex
	now     time.Time
	latest  board.Snapshot
	hasData bool
}

func New(
	boardEngine Board,
	sink domain.ReminderSink,
	recorder domain.BoardRecorder,
	boardMetrics *metrics.BoardMetrics,
	cfg Config,
) *Scheduler {
	return &Scheduler{
		board:    boardEngine,
		sink:     sink,
		recorder: recorder,
		metrics:  boardMetrics,
		cfg:      cfg,
		clock:    time.Now,
		shown:    make(map[string]struct{}),
	}
}

// Start runs one refresh and one forced recheck, then starts the periodic
// tasks. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.running {
		return nil
	}

	s.tick(ctx)
	if err := s.refresh(ctx); err != nil {
		slog.WarnContext(ctx, "initial data refresh failed", slog.String("error", err.Error()))
	}
	if err := s.recheck(ctx, true); err != nil {
		slog.WarnContext(ctx, "initial reminder recheck failed", slog.String("error", err.Error()))
	}

	specs := []struct {
		name     string
		interval time.Duration
		fn       func(context.Context) error
	}{
		{TaskClockTick, s.cfg.ClockTick, func(ctx context.Context) error { s.tick(ctx); return nil }},
		{TaskReminderRecheck, s.cfg.RecheckInterval, func(ctx context.Context) error { return s.recheck(ctx, false) }},
		{TaskDataRefresh, s.cfg.RefreshInterval, s.refresh},
	}

	tasks := make([]*Task, 0, len(specs))
	for _, spec := range specs {
		task, err := Every(ctx, spec.name, spec.interval, spec.fn, s.metrics)
		if err != nil {
			for _, started := range tasks {
				started.Stop()
			}
			return fmt.Errorf("start scheduler: %w", err)
		}
		tasks = append(tasks, task)
	}

	s.tasks = tasks
	s.running = true

	slog.InfoContext(ctx, "scheduler started",
		slog.Duration("clock_tick", s.cfg.ClockTick),
		slog.Duration("recheck_interval", s.cfg.RecheckInterval),
		slog.Duration("refresh_interval", s.cfg.RefreshInterval),
		slog.Duration("recheck_debounce", s.cfg.RecheckDebounce),
	)

	return nil
}

// Stop halts every task and clears the sink. It never fails: stopping twice
// or stopping a scheduler that never started does nothing.
func (s *Scheduler) Stop(ctx context.Context) {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if !s.running {
		return
	}

	for _, task := range s.tasks {
		task.Stop()
	}
	s.tasks = nil
	s.running = false

	s.recheckMu.Lock()
	clear(s.shown)
	s.lastRecheck = time.Time{}
	s.recheckMu.Unlock()

	if err := s.sink.ClearAllReminders(ctx); err != nil {
		slog.WarnContext(ctx, "failed to clear reminders on stop",
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "scheduler stopped")
}

func (s *Scheduler) Running() bool {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	return s.running
}

// ForceRecheck recomputes reminders immediately, bypassing the debounce.
// It does nothing while the scheduler is stopped.
func (s *Scheduler) ForceRecheck(ctx context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if !s.running {
		return nil
	}
	return s.recheck(ctx, true)
}

// Refresh recomputes the board snapshot immediately.
func (s *Scheduler) Refresh(ctx context.Context) error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if !s.running {
		return nil
	}
	return s.refresh(ctx)
}

// AfterMutation is called once a user action has been applied.
func (s *Scheduler) AfterMutation(ctx context.Context) error {
	return errors.Join(s.Refresh(ctx), s.ForceRecheck(ctx))
}

// Now is the instant of the last clock tick.
func (s *Scheduler) Now() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.now
}

// Latest is the snapshot from the last data refresh.
func (s *Scheduler) Latest() (board.Snapshot, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.latest, s.hasData
}

// Shown lists the reminder ids currently handed to the sink.
func (s *Scheduler) Shown() []string {
	s.recheckMu.Lock()
	defer s.recheckMu.Unlock()
	return slices.Sorted(maps.Keys(s.shown))
}

func (s *Scheduler) tick(_ context.Context) {
	now := s.clock()
	s.stateMu.Lock()
	s.now = now
	s.stateMu.Unlock()
}

func (s *Scheduler) recheck(ctx context.Context, forced bool) error {
	s.recheckMu.Lock()
	defer s.recheckMu.Unlock()

	ctx, span := tracing.StartRecheckSpan(ctx, forced)
	defer span.End()

	now := s.clock()

	if !forced && len(s.shown) > 0 && !s.lastRecheck.IsZero() && now.Sub(s.lastRecheck) < s.cfg.RecheckDebounce {
		if s.metrics != nil {
			s.metrics.RecordRecheckSkipped(ctx)
		}
		tracing.RecordRecheckResult(span, 0, 0, true, nil)
		slog.DebugContext(ctx, "reminder recheck debounced",
			slog.Duration("since_last", now.Sub(s.lastRecheck)),
		)
		return nil
	}

	reminders := s.board.Reminders(ctx, now)
	current := make(map[string]struct{}, len(reminders))
	for _, r := range reminders {
		current[r.ID] = struct{}{}
	}

	var errs []error
	removed := 0
	for _, id := range slices.Sorted(maps.Keys(s.shown)) {
		if _, ok := current[id]; ok {
			continue
		}
		if err := s.sink.RemoveReminder(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("remove reminder %s: %w", id, err))
			continue
		}
		delete(s.shown, id)
		removed++
	}

	rendered := 0
	for _, r := range reminders {
		if err := s.sink.RenderReminder(ctx, r.ID, r.Payload); err != nil {
			errs = append(errs, fmt.Errorf("render reminder %s: %w", r.ID, err))
			continue
		}
		if _, ok := s.shown[r.ID]; !ok && s.metrics != nil {
			s.metrics.RecordReminderRendered(ctx, r.Payload.Category.String())
		}
		s.shown[r.ID] = struct{}{}
		rendered++
	}

	s.lastRecheck = now

	err := errors.Join(errs...)
	tracing.RecordRecheckResult(span, rendered, removed, false, err)

	slog.DebugContext(ctx, "reminder recheck completed",
		slog.Bool("forced", forced),
		slog.Int("rendered_count", rendered),
		slog.Int("removed_count", removed),
	)

	return err
}

func (s *Scheduler) refresh(ctx context.Context) error {
	cycleID := uuid.NewString()
	ctx, span := tracing.StartRefreshSpan(ctx, cycleID)
	defer span.End()

	now := s.clock()
	snapshot := s.board.Snapshot(ctx, now)

	s.stateMu.Lock()
	s.latest = snapshot
	s.hasData = true
	s.stateMu.Unlock()

	var err error
	if s.recorder != nil {
		record := domain.BoardSnapshotRecord{
			CycleID:       cycleID,
			RecordedAt:    now,
			OpenCount:     snapshot.Counts.Open,
			ServedCount:   snapshot.Counts.Served,
			ReminderCount: len(snapshot.Reminders),
			ExpiredCount:  snapshot.ExpiredCount(),
		}
		if recErr := s.recorder.RecordSnapshot(ctx, record); recErr != nil {
			err = fmt.Errorf("record board snapshot: %w", recErr)
		}
	}

	tracing.RecordRefreshResult(span, snapshot.Counts.Open, snapshot.Counts.Served, len(snapshot.Reminders), err)

	slog.DebugContext(ctx, "data refresh completed",
		slog.String("cycle_id", cycleID),
		slog.Int("open_count", snapshot.Counts.Open),
		slog.Int("served_count", snapshot.Counts.Served),
		slog.Int("reminder_count", len(snapshot.Reminders)),
	)

	return err
}
