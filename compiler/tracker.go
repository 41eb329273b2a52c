// SPDX-License-Identifier: MIT
// Package: lemnos/compiler
//
// tracker.go — the backtracking build tracker.
//
// Each frame owns one popped slot and the alternatives left for it. The
// frame stack replaces recursion: descending pops the next slot, backtracking
// resumes the newest frame with its next transition group. A frame remembers
//
//	popMark      frontier log length before its slot was popped
//	attemptMark  frontier log length right after the pop
//	arenaMark    arena length before its node was materialized
//
// so retrying a group rolls back to attemptMark and abandoning the frame rolls
// back to popMark, restoring the slot for the frame below.

package compiler

import (
	"goa.design/clue/log"

	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/ir"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// leafGroup marks the single alternative of a node without groups.
const leafGroup = -1

type frame struct {
	node        *schema.Node
	slot        *slot
	mould       shape.Shape
	idx         index.Index
	order       []int
	pos         int
	popMark     int
	attemptMark int
	arenaMark   int
}

type tracker struct {
	schema   *schema.Schema
	src      index.Source
	maxNodes int
	cfg      config

	front  *frontier
	arena  *ir.Graph
	frames []*frame

	steps      int
	backtracks int
	stopped    bool
}

// scanOrder lists group positions outward from pivot: p, p+1, p-1, p+2, ...
// skipping positions outside [0, n).
func scanOrder(pivot, n int) []int {
	out := make([]int, 0, n)
	for i := 0; len(out) < n; {
		if p := pivot + i; p >= 0 && p < n {
			out = append(out, p)
		}
		if i > 0 {
			i = -i
		} else {
			i = -i + 1
		}
	}

	return out
}

// run drives the search until success, exhaustion or the step limit.
func (t *tracker) run() (*ir.Graph, error) {
	for {
		popMark := t.front.mark()
		if node, sl, ok := t.front.popMin(); ok {
			t.frames = append(t.frames, t.open(node, sl, popMark))
		} else if t.endsReached() {
			return t.arena, nil
		}
		// Resume the newest frame until one makes progress.
		for {
			if len(t.frames) == 0 || t.stopped {
				return nil, ErrNoArchitecture
			}
			f := t.frames[len(t.frames)-1]
			if t.advance(f) {
				break
			}
			t.frames = t.frames[:len(t.frames)-1]
			t.front.rollback(f.popMark)
			t.arena.Truncate(f.arenaMark)
			t.backtracked(f)
		}
	}
}

// open builds the frame for a freshly popped slot and draws its index.
func (t *tracker) open(node *schema.Node, sl *slot, popMark int) *frame {
	f := &frame{
		node:        node,
		slot:        sl,
		popMark:     popMark,
		attemptMark: t.front.mark(),
		arenaMark:   t.arena.Len(),
	}
	parents := t.outputs(sl)
	if sl.input >= 0 {
		parents = append([]shape.Shape{sl.seed}, parents...)
	}
	mould, ok := node.MouldShape(parents)
	f.mould = mould
	f.idx = t.src.Next(t.arena.Len(), index.Site{Node: t.schema.Key(node), Mould: mould})
	if !ok {
		return f // no alternatives
	}
	if n := node.GroupCount(); n > 0 {
		f.order = scanOrder(f.idx.Choose(n), n)
	} else {
		f.order = []int{leafGroup}
	}

	return f
}

// advance rolls back the previous attempt of f and tries its remaining
// alternatives in order. It reports whether one succeeded.
func (t *tracker) advance(f *frame) bool {
	t.front.rollback(f.attemptMark)
	t.arena.Truncate(f.arenaMark)
	for f.pos < len(f.order) {
		if t.cfg.stepLimit > 0 && t.steps >= t.cfg.stepLimit {
			t.stopped = true
			return false
		}
		g := f.order[f.pos]
		f.pos++
		t.steps++
		if t.try(f, g) {
			return true
		}
		t.front.rollback(f.attemptMark)
		t.arena.Truncate(f.arenaMark)
	}

	return false
}

// try materializes f's node for group g and records the group's transitions.
func (t *tracker) try(f *frame, g int) bool {
	if t.arena.Len() >= t.maxNodes {
		return false
	}
	if g == leafGroup {
		return t.materialize(f, shape.Shape{}) >= 0
	}
	group := f.node.Group(g)
	conformance, ok := t.conformance(f.node, group)
	if !ok {
		return false
	}
	id := t.materialize(f, conformance)
	if id < 0 {
		return false
	}
	for i := 0; i < group.Len(); i++ {
		if !t.record(group.At(i), id, f.node) {
			return false
		}
	}

	return true
}

// conformance folds the constraints of every slot the group would join.
func (t *tracker) conformance(src *schema.Node, group schema.Group) (shape.Shape, bool) {
	acc := shape.Shape{}
	for i := 0; i < group.Len(); i++ {
		tr := group.At(i)
		if tr.Join == schema.JoinNew {
			continue
		}
		sl := t.front.available(tr.Next, src)
		if sl == nil {
			if tr.Join == schema.JoinExisting {
				return shape.Shape{}, false
			}
			continue
		}
		var ok bool
		if acc, ok = acc.CommonLossless(tr.Next.ConformanceShape(t.outputs(sl))); !ok {
			return shape.Shape{}, false
		}
	}

	return acc, true
}

// materialize resolves the output of f under conformance and appends the
// node. It returns -1 on failure.
func (t *tracker) materialize(f *frame, conformance shape.Shape) ir.NodeID {
	out, ok := f.node.OutputShape(f.mould, conformance, f.idx)
	if !ok {
		return -1
	}
	id, err := t.arena.Add(f.node, f.slot.parents, f.slot.input, f.idx, f.mould, out)
	if err != nil {
		return -1
	}

	return id
}

// record applies one transition from the freshly materialized parent.
func (t *tracker) record(tr schema.Transition, parent ir.NodeID, src *schema.Node) bool {
	if tr.Join != schema.JoinNew {
		if sl := t.front.available(tr.Next, src); sl != nil {
			t.front.join(sl, parent, src, tr.Priority)
			return true
		}
		if tr.Join == schema.JoinExisting {
			return false
		}
	}
	t.front.push(tr.Next, &slot{
		parents:  []ir.NodeID{parent},
		kinds:    []*schema.Node{src},
		input:    -1,
		priority: tr.Priority,
	})

	return true
}

// outputs returns the outputs of the materialized parents of sl.
func (t *tracker) outputs(sl *slot) []shape.Shape {
	out := make([]shape.Shape, 0, len(sl.parents)+1)
	for _, p := range sl.parents {
		n, err := t.arena.Node(p)
		if err != nil {
			continue
		}
		out = append(out, n.Output)
	}

	return out
}

// endsReached reports whether every end node has been materialized.
func (t *tracker) endsReached() bool {
	for _, e := range t.schema.Ends() {
		if t.arena.Instances(e) == 0 {
			return false
		}
	}

	return true
}

func (t *tracker) backtracked(f *frame) {
	t.backtracks++
	if t.cfg.logEvery == 0 || t.backtracks%t.cfg.logEvery != 0 {
		return
	}
	log.Debug(t.cfg.ctx,
		log.KV{K: "msg", V: "compiler backtracking"},
		log.KV{K: "node", V: t.schema.Key(f.node)},
		log.KV{K: "backtracks", V: t.backtracks},
		log.KV{K: "frames", V: len(t.frames)},
		log.KV{K: "steps", V: t.steps},
	)
}
