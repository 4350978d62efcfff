package solver

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"svw.info/rivercrossing/internal/ports"
)

// Search outcomes, recorded as the "outcome" metric attribute.
const (
	outcomeFound     = "found"
	outcomeNotFound  = "not_found"
	outcomeCancelled = "cancelled"
)

var (
	tracer = otel.Tracer("rivercrossing.solver")
	meter  = otel.Meter("rivercrossing.solver")
)

var (
	searchLatency  metric.Float64Histogram
	searchTotal    metric.Int64Counter
	searchExpanded metric.Int64Histogram
	pathLength     metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments on first use. Safe to call repeatedly.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchLatency, err = meter.Float64Histogram(
			"river_search_duration_seconds",
			metric.WithDescription("Duration of state-space searches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchTotal, err = meter.Int64Counter(
			"river_search_total",
			metric.WithDescription("Total number of state-space searches"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchExpanded, err = meter.Int64Histogram(
			"river_search_expanded_states",
			metric.WithDescription("States expanded per search"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		pathLength, err = meter.Int64Histogram(
			"river_search_path_crossings",
			metric.WithDescription("Crossings in the returned path"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordSearch(ctx context.Context, strategy, variant string, d time.Duration, nodes, crossings int, outcome string) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("variant", variant),
		attribute.String("outcome", outcome),
	)
	searchLatency.Record(ctx, d.Seconds(), attrs)
	searchTotal.Add(ctx, 1, attrs)
	searchExpanded.Record(ctx, int64(nodes), attrs)
	if outcome == outcomeFound {
		pathLength.Record(ctx, int64(crossings), attrs)
	}
}

// recordAbort marks a search stopped by its context on the span and in the
// metrics. The metrics are written even though ctx is already done.
func recordAbort(ctx context.Context, span trace.Span, strategy, variant string, st ports.Stats, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Int("nodes", st.Nodes))
	recordSearch(context.WithoutCancel(ctx), strategy, variant, st.Duration, st.Nodes, 0, outcomeCancelled)
}
