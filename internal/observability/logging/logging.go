package logging

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module tags log records with the component that produced them.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Options struct {
	Service     ServiceInfo
	Environment Environment
	Level       slog.Leveler
	Module      Module
}

// NewHandler returns a JSON handler in prod and a text handler elsewhere.
// Records logged with a context carrying a span get trace_id and span_id.
func NewHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var base slog.Handler
	if opts.Environment == EnvProd {
		base = slog.NewJSONHandler(w, handlerOpts)
	} else {
		base = slog.NewTextHandler(w, handlerOpts)
	}

	attrs := []slog.Attr{
		slog.String("service.name", opts.Service.Name),
		slog.String("env", string(opts.Environment)),
	}
	if opts.Service.Version != "" {
		attrs = append(attrs, slog.String("service.version", opts.Service.Version))
	}
	if opts.Service.Revision != "" {
		attrs = append(attrs, slog.String("service.revision", opts.Service.Revision))
	}
	if opts.Module != "" {
		attrs = append(attrs, slog.String("module", string(opts.Module)))
	}

	return &traceHandler{next: base.WithAttrs(attrs)}
}

// WithModule returns a logger whose records carry module.
func WithModule(logger *slog.Logger, module Module) *slog.Logger {
	return logger.With(slog.String("module", string(module)))
}

type traceHandler struct {
	next slog.Handler
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs := traceAttrs(ctx); len(attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(attrs...)
	}
	return h.next.Handle(ctx, record)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{next: h.next.WithGroup(name)}
}

func traceAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	}
}
