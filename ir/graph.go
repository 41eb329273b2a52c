package ir

import (
	"fmt"

	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// NodeID is the arena position of a node.
type NodeID int

// Node is one materialized schema node.
type Node struct {
	ID NodeID
	// Schema is the template this node instantiates.
	Schema *schema.Node
	// Instance counts earlier nodes of the same schema node, from 0.
	Instance int
	// Input is the compile input feeding a root, -1 otherwise.
	Input    int
	Index    index.Index
	Mould    shape.Shape
	Output   shape.Shape
	Parents  []NodeID
	Children []NodeID

	key string
}

// IsRoot reports whether the node has no parents.
func (n *Node) IsRoot() bool { return len(n.Parents) == 0 }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// SchemaKey returns the key of n.Schema in the arena's schema.
func (n *Node) SchemaKey() string { return n.key }

// Key returns the schema key followed by the instance number, e.g. "conv#2".
func (n *Node) Key() string { return fmt.Sprintf("%s#%d", n.key, n.Instance) }

// Layer returns the code-generation view of n, keyed by SchemaKey.
func (n *Node) Layer() schema.Layer {
	l := n.Schema.Describe(n.Mould, n.Output)
	l.Key = n.key

	return l
}

// Graph is the append-only node arena of one schema.
type Graph struct {
	schema    *schema.Schema
	nodes     []Node
	instances map[*schema.Node]int
}

// New returns an empty arena for nodes of s with room for capacity nodes.
// Panics on a nil schema.
func New(s *schema.Schema, capacity int) *Graph {
	if s == nil {
		panic("ir: New(nil schema)")
	}
	if capacity < 0 {
		capacity = 0
	}

	return &Graph{
		schema:    s,
		nodes:     make([]Node, 0, capacity),
		instances: make(map[*schema.Node]int),
	}
}

// Schema returns the schema the arena instantiates.
func (g *Graph) Schema() *schema.Schema { return g.schema }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Add appends a node built from s with the given parents and returns its id.
// The parents gain the new id as their last child. input is the compile
// input index for roots and ignored otherwise.
//
// Errors:
//   - ErrNilSchemaNode: s is nil.
//   - ErrForeignNode: s is not part of the arena's schema.
//   - ErrBrokenEdge: a parent id is outside the arena or repeated.
func (g *Graph) Add(s *schema.Node, parents []NodeID, input int, idx index.Index, mould, out shape.Shape) (NodeID, error) {
	if s == nil {
		return 0, ErrNilSchemaNode
	}
	key := g.schema.Key(s)
	if key == "" {
		return 0, fmt.Errorf("%w: %s", ErrForeignNode, s)
	}
	id := NodeID(len(g.nodes))
	for i, p := range parents {
		if p < 0 || p >= id {
			return 0, fmt.Errorf("%w: parent %d of node %d", ErrBrokenEdge, p, id)
		}
		for _, q := range parents[:i] {
			if q == p {
				return 0, fmt.Errorf("%w: parent %d repeated", ErrBrokenEdge, p)
			}
		}
	}
	if len(parents) > 0 {
		input = -1
	}
	g.nodes = append(g.nodes, Node{
		ID:       id,
		Schema:   s,
		Instance: g.instances[s],
		Input:    input,
		Index:    idx,
		Mould:    mould,
		Output:   out,
		Parents:  append([]NodeID(nil), parents...),
		key:      key,
	})
	g.instances[s]++
	for _, p := range parents {
		g.nodes[p].Children = append(g.nodes[p].Children, id)
	}

	return id, nil
}

// Truncate drops every node with id >= n. Nodes are removed newest first so
// each removed id is the last child of each of its parents.
func (g *Graph) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	for len(g.nodes) > n {
		last := &g.nodes[len(g.nodes)-1]
		for _, p := range last.Parents {
			ch := g.nodes[p].Children
			g.nodes[p].Children = ch[:len(ch)-1]
		}
		g.instances[last.Schema]--
		g.nodes[len(g.nodes)-1] = Node{}
		g.nodes = g.nodes[:len(g.nodes)-1]
	}
}

// Node returns a pointer to the node with the given id. The pointer is
// invalidated by Add and Truncate.
func (g *Graph) Node(id NodeID) (*Node, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	return &g.nodes[id], nil
}

// Nodes returns a deep copy of every node in arena order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].clone()
	}

	return out
}

func (n Node) clone() Node {
	n.Parents = append([]NodeID(nil), n.Parents...)
	n.Children = append([]NodeID(nil), n.Children...)

	return n
}

// Clone returns an independent copy of the arena.
func (g *Graph) Clone() *Graph {
	c := &Graph{schema: g.schema, nodes: g.Nodes(), instances: make(map[*schema.Node]int, len(g.instances))}
	for k, v := range g.instances {
		c.instances[k] = v
	}

	return c
}

// Roots returns the ids of parentless nodes.
func (g *Graph) Roots() []NodeID {
	var out []NodeID
	for i := range g.nodes {
		if g.nodes[i].IsRoot() {
			out = append(out, NodeID(i))
		}
	}

	return out
}

// Leaves returns the ids of childless nodes.
func (g *Graph) Leaves() []NodeID {
	var out []NodeID
	for i := range g.nodes {
		if g.nodes[i].IsLeaf() {
			out = append(out, NodeID(i))
		}
	}

	return out
}

// Instances returns how many nodes instantiate s.
func (g *Graph) Instances(s *schema.Node) int { return g.instances[s] }

// Lineage returns the draw records in arena order; record i is the draw
// taken for node i.
func (g *Graph) Lineage() index.Lineage {
	out := make(index.Lineage, len(g.nodes))
	for i := range g.nodes {
		n := &g.nodes[i]
		out[i] = index.Record{Node: n.key, Mould: n.Mould, Index: n.Index}
	}

	return out
}

// Layers returns the code-generation view in arena order.
func (g *Graph) Layers() []schema.Layer {
	out := make([]schema.Layer, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].Layer()
	}

	return out
}
