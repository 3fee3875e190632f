package client

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Telemetry mirrors transfer lifecycle events, exceptions and metrics to
// the process-wide logger and meter providers.
type Telemetry struct {
	logger   *slog.Logger
	progress metric.Float64Gauge
}

func NewTelemetry(name string) *Telemetry {
	meter := otel.Meter(name)
	progress, _ := meter.Float64Gauge("transfer.progress")

	return &Telemetry{
		logger:   slog.Default().With("component", name),
		progress: progress,
	}
}

func (t *Telemetry) Event(ctx context.Context, name string, props map[string]string) {
	attrs := make([]any, 0, len(props)*2)
	for k, v := range props {
		attrs = append(attrs, k, v)
	}
	t.logger.InfoContext(ctx, name, attrs...)
}

func (t *Telemetry) Exception(ctx context.Context, err error) {
	t.logger.ErrorContext(ctx, "exception", slog.Any("error", err))
}

func (t *Telemetry) Metric(ctx context.Context, name string, value float64, props map[string]string) {
	kvs := make([]attribute.KeyValue, 0, len(props)+1)
	kvs = append(kvs, attribute.String("metric.name", name))
	for k, v := range props {
		kvs = append(kvs, attribute.String(k, v))
	}
	t.progress.Record(ctx, value, metric.WithAttributes(kvs...))
}
