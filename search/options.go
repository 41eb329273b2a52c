package search

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentation is the name reported to the meter and tracer providers.
const instrumentation = "github.com/katalvlaran/lemnos/search"

// Option customizes one Run call.
type Option func(*options)

type options struct {
	meters  metric.MeterProvider
	tracers trace.TracerProvider
}

func defaultOptions() options {
	return options{
		meters:  otel.GetMeterProvider(),
		tracers: otel.GetTracerProvider(),
	}
}

// WithMeterProvider records search metrics on mp instead of the global
// provider. Panics on nil.
func WithMeterProvider(mp metric.MeterProvider) Option {
	if mp == nil {
		panic("search: WithMeterProvider(nil)")
	}
	return func(o *options) { o.meters = mp }
}

// WithTracerProvider opens generation spans on tp instead of the global
// provider. Panics on nil.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("search: WithTracerProvider(nil)")
	}
	return func(o *options) { o.tracers = tp }
}
