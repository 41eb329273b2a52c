package schema

import "github.com/katalvlaran/lemnos/shape"

// MergeMethod is the closed set of policies combining sibling inputs.
type MergeMethod int

const (
	// Add sums shape-identical inputs.
	Add MergeMethod = iota
	// Concat joins inputs along the leading axis.
	Concat
)

func (m MergeMethod) String() string {
	switch m {
	case Add:
		return "add"
	case Concat:
		return "concat"
	default:
		return "merge(?)"
	}
}

func (m MergeMethod) valid() bool { return m == Add || m == Concat }

// Conformance returns the constraint the already-joined siblings impose on a
// further producer feeding a node of the given rank. No siblings means no constraint.
func (m MergeMethod) Conformance(siblings []shape.Shape, rank int) shape.Shape {
	if len(siblings) == 0 {
		return shape.Shape{}
	}
	first := siblings[0].Squash(rank)
	if m == Concat {
		return first.ToOpen()
	}

	return first
}

// Mould combines parent outputs into the input of a node of the given rank.
// It fails when the parents violate the merge policy.
func (m MergeMethod) Mould(parents []shape.Shape, rank int) (shape.Shape, bool) {
	if len(parents) == 0 {
		return shape.Shape{}, false
	}
	acc := parents[0].Squash(rank)
	if m == Concat {
		if !acc.IsLocked() {
			return shape.Shape{}, false
		}
		lead := acc.Dim(0)
		trailing := acc.ToOpen()
		for _, p := range parents[1:] {
			sq := p.Squash(rank)
			if !sq.IsLocked() || !sq.ToOpen().Equal(trailing) {
				return shape.Shape{}, false
			}
			lead += sq.Dim(0)
		}

		return trailing.ToLocked(lead), true
	}
	for _, p := range parents[1:] {
		var ok bool
		if acc, ok = acc.Common(p.Squash(rank)); !ok {
			return shape.Shape{}, false
		}
	}

	return acc, true
}
