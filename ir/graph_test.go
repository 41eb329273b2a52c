package ir_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/ir"
	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// diamond returns schema nodes a -> b and an arena 0 -> 1 -> 2 with 0 -> 2.
func diamond(t *testing.T) (a, b *schema.Node, g *ir.Graph) {
	t.Helper()
	any2 := shape.MustBound(shape.Any(), shape.Any())
	a = schema.MustNode(any2, schema.Add, schema.WithName("a"))
	b = schema.MustNode(any2, schema.Add, schema.WithName("b"))
	require.NoError(t, a.AddGroup(schema.New(a, 0), schema.New(b, 1)))
	sch, err := schema.NewSchema([]*schema.Node{a}, []*schema.Node{b})
	require.NoError(t, err)

	s := shape.Locked(1, 8)
	g = ir.New(sch, 4)
	id, err := g.Add(a, nil, 0, index.New(3), s, s)
	require.NoError(t, err)
	require.Equal(t, ir.NodeID(0), id)
	_, err = g.Add(a, []ir.NodeID{0}, 0, index.New(4), s, s)
	require.NoError(t, err)
	_, err = g.Add(b, []ir.NodeID{0, 1}, 0, index.New(5), s, s)
	require.NoError(t, err)

	return a, b, g
}

func TestGraph_Add(t *testing.T) {
	a, b, g := diamond(t)
	require.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.Instances(a))
	assert.Equal(t, 1, g.Instances(b))

	n, err := g.Node(1)
	require.NoError(t, err)
	assert.Equal(t, "a#1", n.Key())
	assert.Equal(t, "a", n.SchemaKey())
	assert.Equal(t, -1, n.Input)
	assert.Equal(t, []ir.NodeID{2}, n.Children)

	root, err := g.Node(0)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Input)
	assert.Equal(t, []ir.NodeID{1, 2}, root.Children)

	assert.Equal(t, []ir.NodeID{0}, g.Roots())
	assert.Equal(t, []ir.NodeID{2}, g.Leaves())

	_, err = g.Node(99)
	assert.ErrorIs(t, err, ir.ErrNodeNotFound)
}

func TestGraph_AddErrors(t *testing.T) {
	a, _, g := diamond(t)
	s := shape.Locked(1, 8)

	_, err := g.Add(nil, nil, 0, 0, s, s)
	assert.ErrorIs(t, err, ir.ErrNilSchemaNode)
	_, err = g.Add(a, []ir.NodeID{7}, 0, 0, s, s)
	assert.ErrorIs(t, err, ir.ErrBrokenEdge)
	_, err = g.Add(a, []ir.NodeID{1, 1}, 0, 0, s, s)
	assert.ErrorIs(t, err, ir.ErrBrokenEdge)
	stray := schema.MustNode(shape.MustBound(shape.Any(), shape.Any()), schema.Add, schema.WithName("stray"))
	_, err = g.Add(stray, nil, 0, 0, s, s)
	assert.ErrorIs(t, err, ir.ErrForeignNode)
	assert.Equal(t, 3, g.Len(), "failed adds leave the arena untouched")
}

func TestGraph_Truncate(t *testing.T) {
	a, b, g := diamond(t)
	g.Truncate(2)

	require.Equal(t, 2, g.Len())
	assert.Equal(t, 0, g.Instances(b))
	assert.Equal(t, 2, g.Instances(a))
	root, _ := g.Node(0)
	assert.Equal(t, []ir.NodeID{1}, root.Children)
	mid, _ := g.Node(1)
	assert.Empty(t, mid.Children)
	require.NoError(t, g.Validate())

	g.Truncate(-1)
	assert.Equal(t, 0, g.Len())
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	_, _, g := diamond(t)
	c := g.Clone()
	g.Truncate(1)

	assert.Equal(t, 3, c.Len())
	root, _ := c.Node(0)
	assert.Equal(t, []ir.NodeID{1, 2}, root.Children)
}

func TestGraph_Order(t *testing.T) {
	_, _, g := diamond(t)
	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, []ir.NodeID{0, 1, 2}, order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Order(ir.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGraph_OrderLongChain(t *testing.T) {
	any2 := shape.MustBound(shape.Any(), shape.Any())
	a := schema.MustNode(any2, schema.Add, schema.WithName("a"))
	end := schema.MustNode(any2, schema.Add, schema.WithName("end"))
	require.NoError(t, a.AddGroup(schema.New(a, 0), schema.New(end, 1)))
	sch, err := schema.NewSchema([]*schema.Node{a}, []*schema.Node{end})
	require.NoError(t, err)

	const n = 200_000
	g := ir.New(sch, n)
	s := shape.Locked(1, 8)
	var parents []ir.NodeID
	for i := 0; i < n; i++ {
		id, err := g.Add(a, parents, 0, 0, s, s)
		require.NoError(t, err)
		parents = []ir.NodeID{id}
	}

	order, err := g.Order()
	require.NoError(t, err)
	require.Len(t, order, n)
	for i, id := range order {
		if ir.NodeID(i) != id {
			t.Fatalf("order[%d] = %d", i, id)
		}
	}
}

func TestGraph_Validate(t *testing.T) {
	_, b, g := diamond(t)
	require.NoError(t, g.Validate())

	_, err := g.Add(b, []ir.NodeID{0}, 0, 0, shape.Locked(2, 8), shape.Locked(2, 8))
	require.NoError(t, err)
	assert.ErrorIs(t, g.Validate(), ir.ErrInvalidShape)
}

func TestGraph_Stats(t *testing.T) {
	_, _, g := diamond(t)
	assert.Equal(t, ir.Stats{Nodes: 3, Edges: 3, Roots: 1, Leaves: 1, Depth: 3, Volume: 24}, g.Stats())
}

func TestGraph_LineageAndLayers(t *testing.T) {
	_, _, g := diamond(t)
	lin := g.Lineage()
	require.Len(t, lin, 3)
	assert.Equal(t, "a", lin[0].Node)
	assert.Equal(t, "b", lin[2].Node)
	assert.Equal(t, 5, lin[2].Index.Value())

	layers := g.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, "b", layers[2].Key)
	assert.Equal(t, "(1, 8)", layers[2].Output.String())
}

func TestGraph_KeysFollowArenaSchema(t *testing.T) {
	any2 := shape.MustBound(shape.Any(), shape.Any())
	x := schema.MustNode(any2, schema.Add, schema.WithName("conv"))
	y := schema.MustNode(any2, schema.Add, schema.WithName("conv"))
	require.NoError(t, x.AddGroup(schema.New(y, 0)))
	dup, err := schema.NewSchema([]*schema.Node{x}, []*schema.Node{y})
	require.NoError(t, err)
	solo, err := schema.NewSchema([]*schema.Node{y}, []*schema.Node{y})
	require.NoError(t, err)

	s := shape.Locked(1, 8)
	g1 := ir.New(dup, 1)
	_, err = g1.Add(y, nil, 0, 0, s, s)
	require.NoError(t, err)
	g2 := ir.New(solo, 1)
	_, err = g2.Add(y, nil, 0, 0, s, s)
	require.NoError(t, err)

	assert.Equal(t, "n1", g1.Lineage()[0].Node)
	assert.Equal(t, "conv", g2.Lineage()[0].Node)
	n, err := g2.Node(0)
	require.NoError(t, err)
	assert.Equal(t, "conv#0", n.Key())
	assert.Equal(t, "conv", g2.Layers()[0].Key)
	assert.Same(t, solo, g2.Clone().Schema())
	assert.Panics(t, func() { ir.New(nil, 0) })
}

func TestGraph_MarshalDOT(t *testing.T) {
	_, _, g := diamond(t)
	out, err := g.MarshalDOT("net")
	require.NoError(t, err)
	assert.Contains(t, string(out), "digraph net")
	assert.Contains(t, string(out), "a#1")
	assert.Contains(t, string(out), "->")
}
