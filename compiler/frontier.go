package compiler

import (
	"github.com/katalvlaran/lemnos/ir"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// emptyPriority ranks an empty stack after every real slot.
const emptyPriority = schema.MaxPriority + 1

// slot is a partially joined build slot: the parents gathered so far for one
// future instance of a schema node.
type slot struct {
	parents  []ir.NodeID
	kinds    []*schema.Node // schema node of each parent, same order
	input    int            // compile input feeding a start slot, -1 otherwise
	seed     shape.Shape    // input shape of a start slot
	priority int
}

// available reports whether src may still join the slot. Start slots fed by a
// compile input never accept joins, so start instances stay roots.
func (s *slot) available(src *schema.Node) bool {
	if s.input >= 0 {
		return false
	}
	for _, k := range s.kinds {
		if k == src {
			return false
		}
	}

	return true
}

// stack holds the in-flight slots of one schema node; the top is last.
type stack struct {
	node  *schema.Node
	slots []*slot
}

func (s *stack) priority() int {
	if len(s.slots) == 0 {
		return emptyPriority
	}

	return s.slots[len(s.slots)-1].priority
}

type opKind uint8

const (
	opPop opKind = iota
	opPush
	opJoin
	opNewStack
)

// undo records one frontier mutation so it can be reversed.
type undo struct {
	kind     opKind
	stack    *stack
	slot     *slot
	priority int
}

// frontier maps schema nodes to slot stacks. Stacks are kept in discovery
// order, which breaks priority ties. Every mutation is logged.
type frontier struct {
	stacks []*stack
	byNode map[*schema.Node]*stack
	log    []undo
}

func newFrontier() *frontier {
	return &frontier{byNode: make(map[*schema.Node]*stack)}
}

func (f *frontier) stackFor(n *schema.Node) *stack {
	if s, ok := f.byNode[n]; ok {
		return s
	}
	s := &stack{node: n}
	f.stacks = append(f.stacks, s)
	f.byNode[n] = s
	f.log = append(f.log, undo{kind: opNewStack, stack: s})

	return s
}

// push opens a fresh slot on n's stack.
func (f *frontier) push(n *schema.Node, sl *slot) {
	s := f.stackFor(n)
	s.slots = append(s.slots, sl)
	f.log = append(f.log, undo{kind: opPush, stack: s})
}

// popMin removes the top slot of the stack with the lowest top priority.
// It reports false when every stack is empty.
func (f *frontier) popMin() (*schema.Node, *slot, bool) {
	var best *stack
	for _, s := range f.stacks {
		if best == nil || s.priority() < best.priority() {
			best = s
		}
	}
	if best == nil || len(best.slots) == 0 {
		return nil, nil, false
	}
	sl := best.slots[len(best.slots)-1]
	best.slots = best.slots[:len(best.slots)-1]
	f.log = append(f.log, undo{kind: opPop, stack: best, slot: sl})

	return best.node, sl, true
}

// available returns the last slot of target that src has not joined yet.
func (f *frontier) available(target, src *schema.Node) *slot {
	s, ok := f.byNode[target]
	if !ok {
		return nil
	}
	for i := len(s.slots) - 1; i >= 0; i-- {
		if s.slots[i].available(src) {
			return s.slots[i]
		}
	}

	return nil
}

// join adds parent (an instance of src) to sl and lowers its priority.
func (f *frontier) join(sl *slot, parent ir.NodeID, src *schema.Node, priority int) {
	f.log = append(f.log, undo{kind: opJoin, slot: sl, priority: sl.priority})
	sl.parents = append(sl.parents, parent)
	sl.kinds = append(sl.kinds, src)
	sl.priority = min(sl.priority, priority)
}

// mark returns the current undo position.
func (f *frontier) mark() int { return len(f.log) }

// rollback reverses every mutation after mark, newest first.
func (f *frontier) rollback(mark int) {
	for len(f.log) > mark {
		u := f.log[len(f.log)-1]
		f.log = f.log[:len(f.log)-1]
		switch u.kind {
		case opPop:
			u.stack.slots = append(u.stack.slots, u.slot)
		case opPush:
			u.stack.slots = u.stack.slots[:len(u.stack.slots)-1]
		case opJoin:
			u.slot.parents = u.slot.parents[:len(u.slot.parents)-1]
			u.slot.kinds = u.slot.kinds[:len(u.slot.kinds)-1]
			u.slot.priority = u.priority
		case opNewStack:
			delete(f.byNode, u.stack.node)
			f.stacks = f.stacks[:len(f.stacks)-1]
		}
	}
}
