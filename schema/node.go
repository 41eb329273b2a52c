// SPDX-License-Identifier: MIT
// Package: lemnos/schema
//
// node.go — schema nodes and their functional options.
//
// Contract:
//   • Options are functional (type NodeOption func(*Node)).
//   • Option constructors PANIC on meaningless inputs (nil transform);
//     NewNode returns errors for inconsistent combinations.
//   • NewSchema never writes to a Node: keys live in the Schema, so one
//     Node may belong to several schemas.
//   • AddGroup is the only mutator and must not be called while a
//     compilation is running.

package schema

import (
	"fmt"

	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/shape"
)

// Node is a template state of the schema graph.
type Node struct {
	name           string
	bound          shape.Bound
	merge          MergeMethod
	transform      Transform
	activation     Activation
	regularization Regularization
	groups         []Group
}

// NodeOption customizes a Node before validation.
type NodeOption func(*Node)

// WithName sets a human-readable name. A Schema uses it as the node's key
// when no other node of that schema shares it.
func WithName(name string) NodeOption {
	return func(n *Node) { n.name = name }
}

// WithTransform sets the shape transform. Panics on nil.
func WithTransform(t Transform) NodeOption {
	if t == nil {
		panic("schema: WithTransform(nil)")
	}
	return func(n *Node) { n.transform = t }
}

// WithActivation sets the activation tag.
func WithActivation(a Activation) NodeOption {
	return func(n *Node) { n.activation = a }
}

// WithRegularization sets the regularization tag.
func WithRegularization(r Regularization) NodeOption {
	return func(n *Node) { n.regularization = r }
}

// NewNode declares a node. The bound length is the node's rank.
//
// Errors:
//   - ErrEmptyBound: the bound has no axes.
//   - ErrBadMerge: unknown merge method.
//   - ErrBadTransform: transform parameters do not fit the rank.
//   - ErrBadComponent: invalid activation or regularization.
func NewNode(bound shape.Bound, merge MergeMethod, opts ...NodeOption) (*Node, error) {
	n := &Node{bound: bound, merge: merge, transform: Identity{}}
	for _, opt := range opts {
		opt(n)
	}
	if bound.Len() == 0 {
		return nil, ErrEmptyBound
	}
	if !merge.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadMerge, int(merge))
	}
	if err := validateTransform(n.transform, bound.Len()); err != nil {
		return nil, err
	}
	if n.activation < NoActivation || n.activation > Softmax {
		return nil, fmt.Errorf("%w: activation %d", ErrBadComponent, int(n.activation))
	}
	if err := n.regularization.validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// MustNode is the panicking form of NewNode.
func MustNode(bound shape.Bound, merge MergeMethod, opts ...NodeOption) *Node {
	n, err := NewNode(bound, merge, opts...)
	if err != nil {
		panic(fmt.Sprintf("schema.MustNode: %v", err))
	}

	return n
}

// AddGroup appends a transition group. The group is validated as a whole
// and nothing is appended on error.
func (n *Node) AddGroup(ts ...Transition) error {
	g, err := newGroup(ts)
	if err != nil {
		return err
	}
	n.groups = append(n.groups, g)

	return nil
}

// Name returns the declared name, possibly empty.
func (n *Node) Name() string { return n.name }

// Rank returns the declared number of axes.
func (n *Node) Rank() int { return n.bound.Len() }

// Bound returns the per-axis limits.
func (n *Node) Bound() shape.Bound { return n.bound }

// Merge returns the policy combining the node's parent outputs.
func (n *Node) Merge() MergeMethod { return n.merge }

// Transform returns the shape transform; Identity unless set.
func (n *Node) Transform() Transform { return n.transform }

// Activation returns the activation tag.
func (n *Node) Activation() Activation { return n.activation }

// Regularization returns the regularization tag.
func (n *Node) Regularization() Regularization { return n.regularization }

// Groups returns a copy of the transition groups in declaration order.
func (n *Node) Groups() []Group { return append([]Group(nil), n.groups...) }

// GroupCount returns the number of transition groups.
func (n *Node) GroupCount() int { return len(n.groups) }

// Group returns the i-th transition group.
func (n *Node) Group(i int) Group { return n.groups[i] }

func (n *Node) String() string {
	if n.name != "" {
		return n.name
	}

	return fmt.Sprintf("node(%p)", n)
}

// MouldShape merges parent outputs into this node's input.
func (n *Node) MouldShape(parents []shape.Shape) (shape.Shape, bool) {
	return n.merge.Mould(parents, n.Rank())
}

// ConformanceShape is the constraint siblings impose on a new producer
// feeding this node.
func (n *Node) ConformanceShape(siblings []shape.Shape) shape.Shape {
	return n.merge.Conformance(siblings, n.Rank())
}

// OutputShape derives a locked output from mould and conformance using one
// draw. It fails when the transform cannot satisfy the conformance or the
// result falls outside the bound.
func (n *Node) OutputShape(mould, conformance shape.Shape, p index.Picker) (shape.Shape, bool) {
	out, ok := transformOutput(n.transform, n.bound, mould, conformance, p)
	if !ok || !out.IsLocked() || !n.bound.Contains(out) {
		return shape.Shape{}, false
	}

	return out, true
}

// ValidOutput reports whether out is realizable from mould and lies in bound.
func (n *Node) ValidOutput(mould, out shape.Shape) bool {
	return n.bound.Contains(out) && transformValid(n.transform, n.Rank(), mould, out)
}

// Layer is the code-generation view of one materialized node.
type Layer struct {
	Key            string
	Transform      Transform
	Merge          MergeMethod
	Activation     Activation
	Regularization Regularization
	Input          shape.Shape
	Output         shape.Shape
}

// Describe returns the layer built from mould to out. Key is the node's
// String form; callers holding the Schema replace it with Schema.Key.
func (n *Node) Describe(mould, out shape.Shape) Layer {
	return Layer{
		Key:            n.String(),
		Transform:      n.transform,
		Merge:          n.merge,
		Activation:     n.activation,
		Regularization: n.regularization,
		Input:          mould,
		Output:         out,
	}
}
