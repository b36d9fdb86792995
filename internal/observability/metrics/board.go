package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	boardMeterName = "priority.board"
)

type BoardMetrics struct {
	cacheLookups      metric.Int64Counter
	cycleDuration     metric.Float64Histogram
	taskFailures      metric.Int64Counter
	recheckSkipped    metric.Int64Counter
	remindersRendered metric.Int64Counter
	importRows        metric.Int64Counter
	mutations         metric.Int64Counter
}

func NewBoardMetrics() (*BoardMetrics, error) {
	meter := otel.Meter(boardMeterName)

	cacheLookups, err := meter.Int64Counter(
		"board_evaluator_cache_lookups_total",
		metric.WithDescription("Window evaluator cache lookups by cache and result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"board_cycle_duration_seconds",
		metric.WithDescription("Duration of scheduler task cycles"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	taskFailures, err := meter.Int64Counter(
		"board_task_failures_total",
		metric.WithDescription("Scheduler task cycles that returned an error or panicked"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	recheckSkipped, err := meter.Int64Counter(
		"board_recheck_skipped_total",
		metric.WithDescription("Periodic reminder rechecks skipped by the debounce window"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	remindersRendered, err := meter.Int64Counter(
		"board_reminders_rendered_total",
		metric.WithDescription("Reminders handed to the rendering sink"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	importRows, err := meter.Int64Counter(
		"board_import_rows_total",
		metric.WithDescription("Bulk import rows by outcome"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	mutations, err := meter.Int64Counter(
		"board_mutations_total",
		metric.WithDescription("User-triggered mutations by operation and outcome"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, err
	}

	return &BoardMetrics{
		cacheLookups:      cacheLookups,
		cycleDuration:     cycleDuration,
		taskFailures:      taskFailures,
		recheckSkipped:    recheckSkipped,
		remindersRendered: remindersRendered,
		importRows:        importRows,
		mutations:         mutations,
	}, nil
}

func (m *BoardMetrics) RecordCacheLookup(ctx context.Context, cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache", cache),
		attribute.String("result", result),
	))
}

func (m *BoardMetrics) RecordCycleDuration(ctx context.Context, task string, duration time.Duration) {
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("task", task),
	))
}

func (m *BoardMetrics) RecordTaskFailure(ctx context.Context, task, reason string) {
	m.taskFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task", task),
		attribute.String("reason", reason),
	))
}

func (m *BoardMetrics) RecordRecheckSkipped(ctx context.Context) {
	m.recheckSkipped.Add(ctx, 1)
}

func (m *BoardMetrics) RecordReminderRendered(ctx context.Context, category string) {
	m.remindersRendered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
	))
}

func (m *BoardMetrics) RecordImportRows(ctx context.Context, outcome string, count int) {
	if count <= 0 {
		return
	}
	m.importRows.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *BoardMetrics) RecordMutation(ctx context.Context, operation, outcome string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
