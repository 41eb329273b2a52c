package search_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/katalvlaran/lemnos/compiler"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/search"
	"github.com/katalvlaran/lemnos/shape"
)

var rowInput = []shape.Shape{shape.Locked(1, 8)}

// repeatSchema is a start node that either repeats itself or moves to a
// terminal 1x1 end node.
func repeatSchema(t testing.TB) *schema.Schema {
	t.Helper()
	start := schema.MustNode(shape.MustBound(shape.Between(1, 10), shape.Between(1, 10)), schema.Add,
		schema.WithName("start"))
	end := schema.MustNode(shape.MustBound(shape.Exact(1), shape.Exact(1)), schema.Add,
		schema.WithTransform(schema.Full{}), schema.WithName("end"))
	require.NoError(t, start.AddGroup(schema.New(start, 0)))
	require.NoError(t, start.AddGroup(schema.New(end, 1)))
	s, err := schema.NewSchema([]*schema.Node{start}, []*schema.Node{end})
	require.NoError(t, err)

	return s
}

// bySize prefers smaller IRs.
var bySize = search.EvaluatorFunc(func(_ context.Context, c *search.Candidate) (float64, error) {
	return float64(c.Graph.Len()), nil
})

func smallConfig() search.Config {
	cfg := search.DefaultConfig()
	cfg.Generations = 3
	cfg.PoolSize = 3
	cfg.Candidates = 5
	cfg.MaxNodes = 12
	cfg.Workers = 2
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, search.DefaultConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*search.Config)
	}{
		{"generations", func(c *search.Config) { c.Generations = 0 }},
		{"pool", func(c *search.Config) { c.PoolSize = 0 }},
		{"candidates", func(c *search.Config) { c.Candidates = -1 }},
		{"selection low", func(c *search.Config) { c.Selection = -0.1 }},
		{"selection high", func(c *search.Config) { c.Selection = 1.5 }},
		{"inherit", func(c *search.Config) { c.Inherit = 2 }},
		{"max nodes", func(c *search.Config) { c.MaxNodes = 0 }},
		{"step limit", func(c *search.Config) { c.StepLimit = -1 }},
		{"failures", func(c *search.Config) { c.MaxFailures = -1 }},
		{"workers", func(c *search.Config) { c.Workers = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := search.DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), search.ErrBadConfig)
		})
	}
}

func TestRun_CallerErrors(t *testing.T) {
	ctx := context.Background()
	s := repeatSchema(t)

	_, err := search.Run(ctx, s, rowInput, nil, smallConfig())
	assert.ErrorIs(t, err, search.ErrNilEvaluator)

	bad := smallConfig()
	bad.Workers = 0
	_, err = search.Run(ctx, s, rowInput, bySize, bad)
	assert.ErrorIs(t, err, search.ErrBadConfig)

	_, err = search.Run(ctx, nil, rowInput, bySize, smallConfig())
	assert.ErrorIs(t, err, compiler.ErrNilSchema)

	_, err = search.Run(ctx, s, nil, bySize, smallConfig())
	assert.ErrorIs(t, err, compiler.ErrInputCount)

	_, err = search.Run(ctx, s, []shape.Shape{shape.Open(8)}, bySize, smallConfig())
	assert.ErrorIs(t, err, compiler.ErrInputNotLocked)
}

func TestRun_PoolIsSortedAndBounded(t *testing.T) {
	cfg := smallConfig()
	res, err := search.Run(context.Background(), repeatSchema(t), rowInput, bySize, cfg)
	require.NoError(t, err)

	require.NotEmpty(t, res.Pool)
	assert.LessOrEqual(t, len(res.Pool), cfg.PoolSize)
	assert.Same(t, res.Pool[0], res.Best)
	for i := 1; i < len(res.Pool); i++ {
		assert.LessOrEqual(t, res.Pool[i-1].Score, res.Pool[i].Score)
	}
	for _, c := range res.Pool {
		require.NoError(t, c.Graph.Validate())
		assert.LessOrEqual(t, c.Graph.Len(), cfg.MaxNodes)
		assert.Equal(t, float64(c.Graph.Len()), c.Score)
	}

	require.Len(t, res.Generations, cfg.Generations)
	for g, st := range res.Generations {
		assert.Equal(t, g, st.Generation)
		assert.Equal(t, cfg.Candidates, st.Compiled+st.Failed)
	}
	// The pool only ever improves.
	for g := 1; g < len(res.Generations); g++ {
		assert.LessOrEqual(t, res.Generations[g].Best, res.Generations[g-1].Best)
	}
}

func TestRun_Deterministic(t *testing.T) {
	s := repeatSchema(t)
	cfg := smallConfig()
	cfg.Workers = 4

	a, err := search.Run(context.Background(), s, rowInput, bySize, cfg)
	require.NoError(t, err)
	b, err := search.Run(context.Background(), s, rowInput, bySize, cfg)
	require.NoError(t, err)

	require.Len(t, b.Pool, len(a.Pool))
	for i := range a.Pool {
		assert.Equal(t, a.Pool[i].ID, b.Pool[i].ID)
		assert.Equal(t, a.Pool[i].Score, b.Pool[i].Score)
		assert.Equal(t, a.Pool[i].Graph.Lineage(), b.Pool[i].Graph.Lineage())
	}
	assert.Equal(t, a.Generations, b.Generations)
}

func TestRun_BreedingRecordsParents(t *testing.T) {
	cfg := smallConfig()
	cfg.Selection = 1

	var calls atomic.Int64
	seen := make(chan *search.Candidate, cfg.Generations*cfg.Candidates)
	ev := search.EvaluatorFunc(func(ctx context.Context, c *search.Candidate) (float64, error) {
		calls.Add(1)
		seen <- c
		return bySize(ctx, c)
	})
	res, err := search.Run(context.Background(), repeatSchema(t), rowInput, ev, cfg)
	require.NoError(t, err)
	close(seen)

	ids := map[uuid.UUID]int{}
	var all []*search.Candidate
	for c := range seen {
		ids[c.ID] = c.Generation
		all = append(all, c)
	}
	assert.Equal(t, int64(len(all)), calls.Load())
	assert.Len(t, ids, len(all), "candidate ids are unique")

	for _, c := range all {
		if c.Generation == 0 {
			assert.Empty(t, c.Parents)
			continue
		}
		assert.NotEmpty(t, c.Parents)
		for _, p := range c.Parents {
			g, ok := ids[p]
			require.True(t, ok, "parent %s was never evaluated", p)
			assert.Less(t, g, c.Generation)
		}
	}
	assert.NotNil(t, res.Best)
}

func TestRun_NaNRanksLast(t *testing.T) {
	cfg := smallConfig()
	cfg.Generations = 1
	cfg.PoolSize = cfg.Candidates

	var n atomic.Int64
	ev := search.EvaluatorFunc(func(_ context.Context, c *search.Candidate) (float64, error) {
		if n.Add(1) == 1 {
			return math.NaN(), nil
		}
		return float64(c.Graph.Len()), nil
	})
	res, err := search.Run(context.Background(), repeatSchema(t), rowInput, ev, cfg)
	require.NoError(t, err)

	last := res.Pool[len(res.Pool)-1]
	assert.True(t, math.IsInf(last.Score, 1))
	assert.False(t, math.IsInf(res.Best.Score, 1))
}

func TestRun_EvaluatorErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	ev := search.EvaluatorFunc(func(context.Context, *search.Candidate) (float64, error) {
		return 0, boom
	})
	_, err := search.Run(context.Background(), repeatSchema(t), rowInput, ev, smallConfig())
	assert.ErrorIs(t, err, boom)
}

func TestRun_Failures(t *testing.T) {
	cfg := smallConfig()
	// Every IR needs at least two nodes.
	cfg.MaxNodes = 1
	cfg.MaxFailures = 0
	_, err := search.Run(context.Background(), repeatSchema(t), rowInput, bySize, cfg)
	assert.ErrorIs(t, err, search.ErrTooManyFailures)

	cfg.MaxFailures = cfg.Generations * cfg.Candidates
	_, err = search.Run(context.Background(), repeatSchema(t), rowInput, bySize, cfg)
	assert.ErrorIs(t, err, search.ErrNoSurvivors)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := search.Run(ctx, repeatSchema(t), rowInput, bySize, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

// countingTracer counts generation spans.
type countingTracer struct {
	noop.Tracer
	spans *atomic.Int64
}

func (c countingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	c.spans.Add(1)
	return c.Tracer.Start(ctx, name, opts...)
}

type countingProvider struct {
	noop.TracerProvider
	spans *atomic.Int64
}

func (p countingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return countingTracer{spans: p.spans}
}

func TestRun_Telemetry(t *testing.T) {
	cfg := smallConfig()
	var spans atomic.Int64
	_, err := search.Run(context.Background(), repeatSchema(t), rowInput, bySize, cfg,
		search.WithMeterProvider(metricnoop.NewMeterProvider()),
		search.WithTracerProvider(countingProvider{spans: &spans}))
	require.NoError(t, err)
	assert.Equal(t, int64(cfg.Generations), spans.Load())

	assert.Panics(t, func() { search.WithMeterProvider(nil) })
	assert.Panics(t, func() { search.WithTracerProvider(nil) })
}
