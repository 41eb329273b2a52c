package compiler

import (
	"fmt"

	"goa.design/clue/log"

	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/ir"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// Compile searches for an IR realizing s on the given inputs. inputs[i] feeds
// s.Starts()[i]. src supplies one draw per materialized node, keyed by the
// node's arena position, so a fixed schema, inputs and source always yield the
// same IR. At most maxNodes nodes are materialized.
//
// The returned graph lists every node after all of its parents.
//
// Errors:
//   - ErrNilSchema, ErrNilSource: missing collaborators.
//   - ErrInputCount: len(inputs) differs from the start count.
//   - ErrInputNotLocked: an input shape is open.
//   - the schema's own validation error if it was mutated after NewSchema.
//   - ErrNoArchitecture: every alternative failed or the budget ran out.
//
// Complexity: exponential in the worst case; each attempt costs O(G·T) for
// G groups of T transitions plus the transform cost.
func Compile(s *schema.Schema, inputs []shape.Shape, src index.Source, maxNodes int, opts ...Option) (*ir.Graph, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if s == nil {
		return nil, ErrNilSchema
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	starts := s.Starts()
	if len(inputs) != len(starts) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputCount, len(inputs), len(starts))
	}
	for i, in := range inputs {
		if !in.IsLocked() {
			return nil, fmt.Errorf("%w: input %d is %s", ErrInputNotLocked, i, in)
		}
	}

	t := &tracker{
		schema:   s,
		src:      src,
		maxNodes: maxNodes,
		cfg:      cfg,
		front:    newFrontier(),
		arena:    ir.New(s, max(min(maxNodes, 1024), 0)),
	}
	for i, start := range starts {
		t.front.push(start, &slot{input: i, seed: inputs[i], priority: schema.MinPriority})
	}

	g, err := t.run()
	if err != nil {
		log.Debug(cfg.ctx,
			log.KV{K: "msg", V: "compile failed"},
			log.KV{K: "steps", V: t.steps},
			log.KV{K: "backtracks", V: t.backtracks},
			log.KV{K: "step_limit_hit", V: t.stopped},
		)
		return nil, err
	}
	log.Debug(cfg.ctx,
		log.KV{K: "msg", V: "compile succeeded"},
		log.KV{K: "nodes", V: g.Len()},
		log.KV{K: "steps", V: t.steps},
		log.KV{K: "backtracks", V: t.backtracks},
	)

	return g, nil
}
