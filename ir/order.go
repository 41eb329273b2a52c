// SPDX-License-Identifier: MIT
// Package: lemnos/ir
//
// order.go — depth-first topological ordering of the arena.
//
// Order computes a linear ordering of node ids such that for every edge
// parent→child the parent appears first. Roots are explored in id order and
// children in the order they were attached, so the result is deterministic.
//
// Complexity:
//
//   - Time:   O(V + E) (each node and edge visited once)
//   - Memory: O(V)     (explicit stack and state slice)

package ir

import "context"

// Visitation states of the depth-first walk.
const (
	White = iota // unvisited
	Gray         // on the DFS stack
	Black        // finished
)

// OrderOption configures optional behavior for Order.
type OrderOption func(*orderOptions)

type orderOptions struct {
	ctx context.Context
}

// WithCancelContext sets the cancellation context. A nil context has no effect.
func WithCancelContext(ctx context.Context) OrderOption {
	return func(o *orderOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// orderer carries the state of one topological walk.
type orderer struct {
	g     *Graph
	ctx   context.Context
	state []uint8
	order []NodeID
	stack []frame
}

// Order returns the node ids in depth-first topological order.
// It returns ErrCycle if a child edge leads back onto the stack and the
// context error if the walk is cancelled.
func (g *Graph) Order(options ...OrderOption) ([]NodeID, error) {
	opts := orderOptions{ctx: context.Background()}
	for _, opt := range options {
		opt(&opts)
	}
	o := &orderer{
		g:     g,
		ctx:   opts.ctx,
		state: make([]uint8, len(g.nodes)),
		order: make([]NodeID, 0, len(g.nodes)),
	}
	// Roots first, then anything a broken parent list left unreached.
	// Both sweeps run backwards so the reversal puts lower ids first.
	roots := g.Roots()
	if err := o.ctx.Err(); err != nil {
		return nil, err
	}
	for i := len(roots) - 1; i >= 0; i-- {
		if err := o.visit(roots[i]); err != nil {
			return nil, err
		}
	}
	for i := len(g.nodes) - 1; i >= 0; i-- {
		if o.state[i] == White {
			if err := o.visit(NodeID(i)); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(o.order)-1; i < j; i, j = i+1, j-1 {
		o.order[i], o.order[j] = o.order[j], o.order[i]
	}

	return o.order, nil
}

// frame is one node on the explicit DFS stack; next indexes the child to
// descend into, counting down from the last.
type frame struct {
	id   NodeID
	next int
}

// visit walks everything reachable from id on an explicit stack, so chain
// length is limited by memory rather than goroutine stack depth.
func (o *orderer) visit(id NodeID) error {
	switch o.state[id] {
	case Gray:
		return ErrCycle
	case Black:
		return nil
	}
	o.state[id] = Gray
	o.stack = append(o.stack[:0], frame{id: id, next: len(o.g.nodes[id].Children) - 1})
	for len(o.stack) > 0 {
		top := &o.stack[len(o.stack)-1]
		if top.next < 0 {
			o.state[top.id] = Black
			o.order = append(o.order, top.id)
			o.stack = o.stack[:len(o.stack)-1]
			continue
		}
		// Children are taken in reverse so that after the final reversal
		// siblings keep attach order.
		child := o.g.nodes[top.id].Children[top.next]
		top.next--
		switch o.state[child] {
		case Gray:
			return ErrCycle
		case Black:
			continue
		}
		select {
		case <-o.ctx.Done():
			return o.ctx.Err()
		default:
		}
		o.state[child] = Gray
		o.stack = append(o.stack, frame{id: child, next: len(o.g.nodes[child].Children) - 1})
	}

	return nil
}
