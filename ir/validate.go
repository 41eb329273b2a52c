package ir

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/katalvlaran/lemnos/shape"
)

// Validate checks that:
//   - every parent id precedes its child and parent/child lists mirror each other;
//   - the edge relation is acyclic;
//   - every non-root mould equals the merge of its parents' outputs;
//   - every output is locked and realizable from its mould by the schema node.
func (g *Graph) Validate() error {
	for i := range g.nodes {
		n := &g.nodes[i]
		for _, p := range n.Parents {
			if p < 0 || p >= n.ID {
				return fmt.Errorf("%w: parent %d of node %d", ErrBrokenEdge, p, n.ID)
			}
			if !contains(g.nodes[p].Children, n.ID) {
				return fmt.Errorf("%w: node %d missing from children of %d", ErrBrokenEdge, n.ID, p)
			}
		}
		for _, c := range n.Children {
			if c <= n.ID || int(c) >= len(g.nodes) || !contains(g.nodes[c].Parents, n.ID) {
				return fmt.Errorf("%w: child %d of node %d", ErrBrokenEdge, c, n.ID)
			}
		}
	}
	if _, err := topo.Sort(g.directed()); err != nil {
		var u topo.Unorderable
		if errors.As(err, &u) {
			return fmt.Errorf("%w: %d strongly connected components", ErrCycle, len(u))
		}
		return err
	}
	for i := range g.nodes {
		if err := g.checkShapes(&g.nodes[i]); err != nil {
			return err
		}
	}

	return nil
}

func (g *Graph) checkShapes(n *Node) error {
	if !n.Output.IsLocked() {
		return fmt.Errorf("%w: node %s output %s is open", ErrInvalidShape, n.Key(), n.Output)
	}
	if len(n.Parents) > 0 {
		outs := make([]shape.Shape, 0, len(n.Parents))
		for _, p := range n.Parents {
			outs = append(outs, g.nodes[p].Output)
		}
		mould, ok := n.Schema.MouldShape(outs)
		if !ok || !mould.Equal(n.Mould) {
			return fmt.Errorf("%w: node %s mould %s does not merge its parents", ErrInvalidShape, n.Key(), n.Mould)
		}
	}
	if !n.Schema.ValidOutput(n.Mould, n.Output) {
		return fmt.Errorf("%w: node %s cannot map %s to %s", ErrInvalidShape, n.Key(), n.Mould, n.Output)
	}

	return nil
}

func contains(ids []NodeID, id NodeID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}

// directed builds a gonum view of the arena. Node ids are preserved and the
// caller must have checked the edge lists first.
func (g *Graph) directed() *simple.DirectedGraph {
	d := simple.NewDirectedGraph()
	for i := range g.nodes {
		d.AddNode(gnode{n: &g.nodes[i]})
	}
	for i := range g.nodes {
		from := d.Node(int64(i))
		for _, c := range g.nodes[i].Children {
			d.SetEdge(d.NewEdge(from, d.Node(int64(c))))
		}
	}

	return d
}

var _ graph.Node = gnode{}
