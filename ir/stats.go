package ir

// Stats summarizes an arena.
type Stats struct {
	Nodes  int
	Edges  int
	Roots  int
	Leaves int
	// Depth is the number of nodes on the longest root-to-leaf path.
	Depth int
	// Volume is the summed element count of every output.
	Volume int
}

// Stats computes the summary in one pass; arena order is topological.
func (g *Graph) Stats() Stats {
	st := Stats{Nodes: len(g.nodes)}
	depth := make([]int, len(g.nodes))
	for i := range g.nodes {
		n := &g.nodes[i]
		st.Edges += len(n.Parents)
		st.Volume += n.Output.Product()
		if n.IsRoot() {
			st.Roots++
		}
		if n.IsLeaf() {
			st.Leaves++
		}
		d := 0
		for _, p := range n.Parents {
			d = max(d, depth[p])
		}
		depth[i] = d + 1
		st.Depth = max(st.Depth, depth[i])
	}

	return st
}
