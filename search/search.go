// SPDX-License-Identifier: MIT
// Package: lemnos/search
//
// search.go — the generation loop: compile, evaluate, cull, breed.

package search

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lemnos/compiler"
	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/ir"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// namespace scopes the name-based candidate IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(instrumentation))

// Evaluator scores a compiled candidate. Lower is better. A NaN score ranks
// last; an error aborts the run.
type Evaluator interface {
	Evaluate(ctx context.Context, c *Candidate) (float64, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(ctx context.Context, c *Candidate) (float64, error)

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, c *Candidate) (float64, error) {
	return f(ctx, c)
}

// Candidate is one compiled IR and its score.
type Candidate struct {
	// ID is derived from the run seed, generation and slot.
	ID         uuid.UUID
	Generation int
	// Seed feeds the candidate's index source.
	Seed  int64
	Graph *ir.Graph
	Score float64
	// Parents lists the pool members whose lineages biased the draws.
	Parents []uuid.UUID
}

// GenerationStats summarizes one generation. Mean and StdDev cover the
// finite scores of the candidates compiled in that generation.
type GenerationStats struct {
	Generation int
	Compiled   int
	Failed     int
	Best       float64
	Mean       float64
	StdDev     float64
}

// Result is the outcome of a Run.
type Result struct {
	// Best is Pool[0].
	Best *Candidate
	// Pool holds the survivors, best first.
	Pool        []*Candidate
	Generations []GenerationStats
	// Failures counts compilations that ended in compiler.ErrNoArchitecture.
	Failures int
}

// Run searches for good IRs of s on inputs. Every generation compiles
// cfg.Candidates IRs concurrently, scores them with ev and keeps the best
// cfg.PoolSize across generations. Generation 0 draws from independent seeded
// sources; later generations breed from a random subset of the pool, each
// member picked with probability cfg.Selection.
//
// With a deterministic evaluator the result depends only on s, inputs and cfg.
//
// Errors:
//   - ErrBadConfig, ErrNilEvaluator, compiler.ErrNilSchema: before any work.
//   - compiler caller errors (input count, open input) on the first compile.
//   - ErrTooManyFailures: failures exceeded cfg.MaxFailures.
//   - ErrNoSurvivors: no candidate ever compiled.
//   - the evaluator's error, or ctx.Err() on cancellation.
func Run(ctx context.Context, s *schema.Schema, inputs []shape.Shape, ev Evaluator, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNilEvaluator
	}
	if s == nil {
		return nil, compiler.ErrNilSchema
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tel, err := newTelemetry(o)
	if err != nil {
		return nil, err
	}

	r := &runner{schema: s, inputs: inputs, ev: ev, cfg: cfg, tel: tel}
	res := &Result{}
	for g := 0; g < cfg.Generations; g++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st, err := r.generation(ctx, g)
		if err != nil {
			return nil, err
		}
		res.Generations = append(res.Generations, st)
		log.Info(ctx, log.KV{K: "msg", V: "generation done"},
			log.KV{K: "generation", V: g},
			log.KV{K: "compiled", V: st.Compiled},
			log.KV{K: "failed", V: st.Failed},
			log.KV{K: "best", V: st.Best},
			log.KV{K: "pool", V: len(r.pool)})
	}
	if len(r.pool) == 0 {
		return nil, ErrNoSurvivors
	}
	res.Pool = r.pool
	res.Best = r.pool[0]
	res.Failures = r.failures

	return res, nil
}

// runner carries the state shared across generations.
type runner struct {
	schema   *schema.Schema
	inputs   []shape.Shape
	ev       Evaluator
	cfg      Config
	tel      *telemetry
	pool     []*Candidate
	failures int
}

// plan is a candidate before compilation.
type plan struct {
	id      uuid.UUID
	seed    int64
	src     index.Source
	parents []uuid.UUID
}

func (r *runner) generation(ctx context.Context, g int) (st GenerationStats, err error) {
	ctx, span := r.tel.tracer.Start(ctx, "search.generation",
		trace.WithAttributes(attribute.Int("generation", g), attribute.Int("pool", len(r.pool))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	plans := r.plans(g)
	out := make([]*Candidate, len(plans))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.cfg.Workers)
	for j, p := range plans {
		eg.Go(func() error {
			c, err := r.candidate(egctx, g, p)
			out[j] = c
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return st, err
	}

	st.Generation = g
	scores := make([]float64, 0, len(out))
	for _, c := range out {
		if c == nil {
			st.Failed++
			continue
		}
		st.Compiled++
		r.pool = append(r.pool, c)
		if !math.IsInf(c.Score, 0) {
			scores = append(scores, c.Score)
		}
	}
	r.failures += st.Failed
	span.SetAttributes(attribute.Int("compiled", st.Compiled), attribute.Int("failed", st.Failed))
	if r.failures > r.cfg.MaxFailures {
		return st, fmt.Errorf("%w: %d > %d", ErrTooManyFailures, r.failures, r.cfg.MaxFailures)
	}

	r.cull()
	st.Best = math.Inf(1)
	if len(r.pool) > 0 {
		st.Best = r.pool[0].Score
	}
	switch len(scores) {
	case 0:
		st.Mean = math.NaN()
	case 1:
		st.Mean = scores[0]
	default:
		st.Mean, st.StdDev = stat.MeanStdDev(scores, nil)
	}

	return st, nil
}

// plans fixes every candidate's source before any goroutine starts, so parent
// selection does not depend on scheduling.
func (r *runner) plans(g int) []plan {
	genSeed := index.DeriveSeed(r.cfg.Seed, uint64(g))
	rng := rand.New(rand.NewPCG(uint64(r.cfg.Seed), uint64(g)))

	plans := make([]plan, r.cfg.Candidates)
	for j := range plans {
		seed := index.DeriveSeed(genSeed, uint64(j))
		p := plan{
			id:   uuid.NewSHA1(namespace, fmt.Appendf(nil, "%d/%d/%d", r.cfg.Seed, g, j)),
			seed: seed,
			src:  index.Seeded{Seed: seed},
		}
		if g > 0 && len(r.pool) > 0 {
			var lineages []index.Lineage
			for _, c := range r.pool {
				if rng.Float64() < r.cfg.Selection {
					lineages = append(lineages, c.Graph.Lineage())
					p.parents = append(p.parents, c.ID)
				}
			}
			p.src = index.Breed{Population: lineages, Inherit: r.cfg.Inherit, Seed: seed}
		}
		plans[j] = p
	}

	return plans
}

// candidate compiles and scores one plan. A nil candidate with a nil error is
// a failed compilation.
func (r *runner) candidate(ctx context.Context, g int, p plan) (*Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	graph, err := compiler.Compile(r.schema, r.inputs, p.src, r.cfg.MaxNodes,
		compiler.WithContext(ctx), compiler.WithStepLimit(r.cfg.StepLimit))
	if errors.Is(err, compiler.ErrNoArchitecture) {
		r.tel.failed(ctx, g)
		log.Debug(ctx, log.KV{K: "msg", V: "compile failed"},
			log.KV{K: "generation", V: g}, log.KV{K: "candidate", V: p.id})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.tel.compiled(ctx, g, graph.Len())

	c := &Candidate{ID: p.id, Generation: g, Seed: p.seed, Graph: graph, Parents: p.parents}
	score, err := r.ev.Evaluate(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("search: evaluate %s: %w", c.ID, err)
	}
	if math.IsNaN(score) {
		score = math.Inf(1)
	}
	c.Score = score
	if !math.IsInf(score, 0) {
		r.tel.scored(ctx, g, score)
	}

	return c, nil
}

// cull keeps the best PoolSize candidates. Ties keep the older candidate.
func (r *runner) cull() {
	slices.SortStableFunc(r.pool, func(a, b *Candidate) int {
		return cmp.Compare(a.Score, b.Score)
	})
	if len(r.pool) > r.cfg.PoolSize {
		clear(r.pool[r.cfg.PoolSize:])
		r.pool = r.pool[:r.cfg.PoolSize]
	}
}
