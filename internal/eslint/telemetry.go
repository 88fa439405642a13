package eslint

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("lintgate.eslint")
	meter  = otel.Meter("lintgate.eslint")
)

var (
	runDuration   metric.Float64Histogram
	runTotal      metric.Int64Counter
	errorsFound   metric.Int64Counter
	warningsFound metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runDuration, err = meter.Float64Histogram(
			"eslint_run_duration_seconds",
			metric.WithDescription("Duration of eslint runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runTotal, err = meter.Int64Counter(
			"eslint_runs_total",
			metric.WithDescription("Total number of eslint runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		errorsFound, err = meter.Int64Counter(
			"eslint_errors_found_total",
			metric.WithDescription("Total number of error findings"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		warningsFound, err = meter.Int64Counter(
			"eslint_warnings_found_total",
			metric.WithDescription("Total number of warning findings"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startLintSpan(ctx context.Context, targets int, fix bool) (context.Context, trace.Span) {
	return tracer.Start(ctx, "CLIEngine.Lint",
		trace.WithAttributes(
			attribute.Int("lint.target_count", targets),
			attribute.Bool("lint.fix", fix),
		),
	)
}

func setLintSpanResult(span trace.Span, files, errorCount, warningCount int) {
	span.SetAttributes(
		attribute.Int("lint.file_count", files),
		attribute.Int("lint.error_count", errorCount),
		attribute.Int("lint.warning_count", warningCount),
	)
}

func recordLintMetrics(ctx context.Context, duration time.Duration, errorCount, warningCount int, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Bool("success", success))
	runDuration.Record(ctx, duration.Seconds(), attrs)
	runTotal.Add(ctx, 1, attrs)

	if success {
		errorsFound.Add(ctx, int64(errorCount))
		warningsFound.Add(ctx, int64(warningCount))
	}
}
