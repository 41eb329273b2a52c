// Package search runs a population search over the IRs a schema admits.
//
// Each generation compiles Config.Candidates IRs in parallel, bounded by
// Config.Workers, and scores them with an Evaluator (lower is better). The
// best Config.PoolSize candidates seen so far survive. Generation 0 uses
// independent index.Seeded sources; later generations draw through
// index.Breed, which replays the index choices of randomly selected survivors
// with probability Config.Inherit per draw.
//
// Compilations ending in compiler.ErrNoArchitecture are counted, not fatal,
// until more than Config.MaxFailures have accumulated.
//
// Telemetry goes through OpenTelemetry: a span per generation and counters
// for compile outcomes, node counts and scores. Providers default to the
// otel globals and can be replaced with WithMeterProvider and
// WithTracerProvider. Generation summaries are logged at info level with
// goa.design/clue/log when the context carries a logger.
//
// Example:
//
//	ev := search.EvaluatorFunc(func(ctx context.Context, c *search.Candidate) (float64, error) {
//		return float64(c.Graph.Len()), nil
//	})
//	res, err := search.Run(ctx, s, inputs, ev, search.DefaultConfig())
package search
