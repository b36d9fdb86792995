package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const boardTracerName = "github.com/KasumiMercury/primind-priority-board/internal/service"

func BoardTracer() trace.Tracer {
	return otel.Tracer(boardTracerName)
}

func StartRecheckSpan(ctx context.Context, forced bool) (context.Context, trace.Span) {
	return BoardTracer().Start(ctx, "board.reminder_recheck",
		trace.WithAttributes(
			attribute.Bool("recheck.forced", forced),
		),
	)
}

func StartRefreshSpan(ctx context.Context, cycleID string) (context.Context, trace.Span) {
	return BoardTracer().Start(ctx, "board.data_refresh",
		trace.WithAttributes(
			attribute.String("cycle_id", cycleID),
		),
	)
}

func StartMutationSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return BoardTracer().Start(ctx, "board.mutation."+operation)
}

func StartImportSpan(ctx context.Context, batchID, filename string) (context.Context, trace.Span) {
	return BoardTracer().Start(ctx, "board.import",
		trace.WithAttributes(
			attribute.String("import.batch_id", batchID),
			attribute.String("import.filename", filename),
		),
	)
}

func StartStoreOperationSpan(ctx context.Context, system, operation, key string) (context.Context, trace.Span) {
	return BoardTracer().Start(ctx, "board.store."+operation,
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRecheckResult(span trace.Span, rendered, removed int, skipped bool, err error) {
	span.SetAttributes(
		attribute.Int("recheck.rendered_count", rendered),
		attribute.Int("recheck.removed_count", removed),
		attribute.Bool("recheck.skipped", skipped),
	)
	RecordError(span, err)
}

func RecordRefreshResult(span trace.Span, openCount, servedCount, reminderCount int, err error) {
	span.SetAttributes(
		attribute.Int("refresh.open_count", openCount),
		attribute.Int("refresh.served_count", servedCount),
		attribute.Int("refresh.reminder_count", reminderCount),
	)
	RecordError(span, err)
}

func RecordImportResult(span trace.Span, imported, skipped int, err error) {
	span.SetAttributes(
		attribute.Int("import.imported_count", imported),
		attribute.Int("import.skipped_count", skipped),
	)
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
