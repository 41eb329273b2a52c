package search

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// telemetry holds the instruments shared by every generation of a Run.
type telemetry struct {
	tracer   trace.Tracer
	compiles metric.Int64Counter
	nodes    metric.Int64Histogram
	scores   metric.Float64Histogram
}

func newTelemetry(o options) (*telemetry, error) {
	meter := o.meters.Meter(instrumentation)
	compiles, err := meter.Int64Counter("lemnos.search.compiles",
		metric.WithDescription("Compilations attempted, by outcome."))
	if err != nil {
		return nil, fmt.Errorf("search: compiles counter: %w", err)
	}
	nodes, err := meter.Int64Histogram("lemnos.search.nodes",
		metric.WithDescription("Node count of compiled IRs."))
	if err != nil {
		return nil, fmt.Errorf("search: nodes histogram: %w", err)
	}
	scores, err := meter.Float64Histogram("lemnos.search.score",
		metric.WithDescription("Evaluator scores of compiled IRs."))
	if err != nil {
		return nil, fmt.Errorf("search: score histogram: %w", err)
	}

	return &telemetry{
		tracer:   o.tracers.Tracer(instrumentation),
		compiles: compiles,
		nodes:    nodes,
		scores:   scores,
	}, nil
}

func (t *telemetry) compiled(ctx context.Context, generation, nodes int) {
	attrs := metric.WithAttributes(attribute.Int("generation", generation), attribute.String("outcome", "ok"))
	t.compiles.Add(ctx, 1, attrs)
	t.nodes.Record(ctx, int64(nodes), metric.WithAttributes(attribute.Int("generation", generation)))
}

func (t *telemetry) failed(ctx context.Context, generation int) {
	t.compiles.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("generation", generation), attribute.String("outcome", "no_architecture")))
}

func (t *telemetry) scored(ctx context.Context, generation int, score float64) {
	t.scores.Record(ctx, score, metric.WithAttributes(attribute.Int("generation", generation)))
}
