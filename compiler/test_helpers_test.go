package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lemnos/ir"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// repeatSchema is a start node that either repeats itself (group 0) or moves
// to a terminal end node (group 1).
func repeatSchema(t testing.TB) (*schema.Schema, *schema.Node, *schema.Node) {
	t.Helper()
	start := schema.MustNode(shape.MustBound(shape.Between(1, 10), shape.Between(1, 10)), schema.Add,
		schema.WithName("start"))
	end := schema.MustNode(shape.MustBound(shape.Exact(1), shape.Exact(1)), schema.Add,
		schema.WithTransform(schema.Full{}), schema.WithName("end"))
	require.NoError(t, start.AddGroup(schema.New(start, 0)))
	require.NoError(t, start.AddGroup(schema.New(end, 1)))
	s, err := schema.NewSchema([]*schema.Node{start}, []*schema.Node{end})
	require.NoError(t, err)

	return s, start, end
}

// branchSchema fans a stem out to a and b and merges them in m:
//
//	stem -> a -> m -> end
//	stem -> b -(join)-> m
func branchSchema(t testing.TB, merge schema.MergeMethod, join schema.JoinType) (*schema.Schema, map[string]*schema.Node) {
	t.Helper()
	any2 := shape.MustBound(shape.Any(), shape.Any())
	nodes := map[string]*schema.Node{
		"stem": schema.MustNode(any2, schema.Add, schema.WithName("stem")),
		"a":    schema.MustNode(any2, schema.Add, schema.WithName("a")),
		"b":    schema.MustNode(any2, schema.Add, schema.WithName("b")),
		"m":    schema.MustNode(any2, merge, schema.WithName("m")),
		"end": schema.MustNode(shape.MustBound(shape.Exact(1), shape.Exact(1)), schema.Add,
			schema.WithTransform(schema.Full{}), schema.WithName("end")),
	}
	require.NoError(t, nodes["stem"].AddGroup(schema.New(nodes["a"], 0), schema.New(nodes["b"], 1)))
	require.NoError(t, nodes["a"].AddGroup(schema.New(nodes["m"], 2)))
	require.NoError(t, nodes["b"].AddGroup(schema.Transition{Next: nodes["m"], Priority: 2, Join: join}))
	require.NoError(t, nodes["m"].AddGroup(schema.New(nodes["end"], 3)))
	s, err := schema.NewSchema([]*schema.Node{nodes["stem"]}, []*schema.Node{nodes["end"]})
	require.NoError(t, err)

	return s, nodes
}

// convSchema is a small image classifier search space:
//
//	stem -> block* -> (down -> block)* -> head
//	block -> a, b -> join (concat) -> block | head
func convSchema(t testing.TB) *schema.Schema {
	t.Helper()
	spatial := func(lead shape.Axis) shape.Bound { return shape.MustBound(lead, shape.AtLeast(1), shape.AtLeast(1)) }
	same := schema.Conv{Kernel: []int{3}, Padding: []int{1}}

	stemConv := same
	stemConv.Growth = shape.Range{Lower: 1, Upper: 4}
	stem := schema.MustNode(spatial(shape.Between(1, 64)), schema.Add,
		schema.WithTransform(stemConv), schema.WithActivation(schema.ReLU),
		schema.WithRegularization(schema.Regularization{Kind: schema.BatchNorm}), schema.WithName("stem"))
	block := schema.MustNode(spatial(shape.Between(1, 64)), schema.Add,
		schema.WithTransform(same), schema.WithActivation(schema.ReLU), schema.WithName("block"))
	down := schema.MustNode(spatial(shape.Between(1, 64)), schema.Add,
		schema.WithTransform(schema.Conv{Kernel: []int{3}, Stride: []int{2}, Padding: []int{1},
			Growth: shape.Range{Lower: 1, Upper: 2}}),
		schema.WithName("down"))
	a := schema.MustNode(spatial(shape.Between(1, 64)), schema.Add,
		schema.WithTransform(same), schema.WithName("a"))
	b := schema.MustNode(spatial(shape.Between(1, 64)), schema.Add, schema.WithName("b"))
	join := schema.MustNode(spatial(shape.Between(1, 128)), schema.Concat,
		schema.WithRegularization(schema.Regularization{Kind: schema.Dropout, P: 0.1}), schema.WithName("join"))
	head := schema.MustNode(shape.MustBound(shape.Exact(10), shape.Exact(1), shape.Exact(1)), schema.Add,
		schema.WithTransform(schema.Full{}), schema.WithActivation(schema.Softmax), schema.WithName("head"))

	require.NoError(t, stem.AddGroup(schema.New(block, 0)))
	require.NoError(t, block.AddGroup(schema.New(block, 0)))
	require.NoError(t, block.AddGroup(schema.New(down, 0)))
	require.NoError(t, block.AddGroup(schema.New(head, 1)))
	require.NoError(t, block.AddGroup(schema.New(a, 0), schema.New(b, 0)))
	require.NoError(t, down.AddGroup(schema.New(block, 0)))
	require.NoError(t, a.AddGroup(schema.New(join, 0)))
	require.NoError(t, b.AddGroup(schema.Existing(join, 0)))
	require.NoError(t, join.AddGroup(schema.New(block, 0)))
	require.NoError(t, join.AddGroup(schema.New(head, 1)))

	s, err := schema.NewSchema([]*schema.Node{stem}, []*schema.Node{head})
	require.NoError(t, err)

	return s
}

// keys lists the node keys of g in arena order.
func keys(g *ir.Graph) []string {
	out := make([]string, 0, g.Len())
	for _, n := range g.Nodes() {
		out = append(out, n.Key())
	}

	return out
}

// requireWellFormed checks the structural and shape properties of a compiled IR.
func requireWellFormed(t testing.TB, s *schema.Schema, g *ir.Graph) {
	t.Helper()
	require.NoError(t, g.Validate())
	for _, n := range g.Nodes() {
		require.True(t, n.Schema.Bound().Contains(n.Output), "%s output %s outside bound", n.Key(), n.Output)
		require.True(t, n.Schema.ValidOutput(n.Mould, n.Output), "%s", n.Key())
		seen := map[*schema.Node]bool{}
		for _, p := range n.Parents {
			pn, err := g.Node(p)
			require.NoError(t, err)
			require.False(t, seen[pn.Schema], "%s has two parents of type %s", n.Key(), pn.Schema)
			seen[pn.Schema] = true
		}
		if n.IsRoot() {
			require.GreaterOrEqual(t, n.Input, 0, "%s is a root without an input", n.Key())
		}
	}
	for _, e := range s.Ends() {
		require.Positive(t, g.Instances(e), "end %s never built", e)
	}
}
