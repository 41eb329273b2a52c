package ir

import (
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// gnode adapts an arena node to gonum's graph.Node, dot.Node and
// encoding.Attributer.
type gnode struct {
	n *Node
}

func (g gnode) ID() int64 { return int64(g.n.ID) }

func (g gnode) DOTID() string { return g.n.Key() }

func (g gnode) Attributes() []encoding.Attribute {
	label := g.n.Key() + " " + g.n.Schema.Transform().String() + " " + g.n.Output.String()
	return []encoding.Attribute{
		{Key: "label", Value: label},
		{Key: "shape", Value: "box"},
	}
}

// MarshalDOT renders the arena as a Graphviz digraph named name.
func (g *Graph) MarshalDOT(name string) ([]byte, error) {
	return dot.Marshal(g.directed(), name, "", "\t")
}
