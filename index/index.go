package index

import "github.com/katalvlaran/lemnos/shape"

// MaxIndex is the exclusive upper limit of an Index value.
const MaxIndex = 1<<16 - 1

// Index is an immutable bounded draw in [0, MaxIndex).
type Index uint32

// New normalizes v into [0, MaxIndex).
func New(v int) Index {
	v %= MaxIndex
	if v < 0 {
		v += MaxIndex
	}

	return Index(v)
}

// Value returns the raw draw.
func (i Index) Value() int { return int(i) }

// Choose picks one of n alternatives. n <= 0 yields 0.
func (i Index) Choose(n int) int {
	if n <= 0 {
		return 0
	}

	return int(i) % n
}

// Within picks a value in the inclusive window [lo, hi]. The window is
// normalized when hi < lo.
func (i Index) Within(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}

	return lo + int(i)%(hi-lo+1)
}

// Ratio returns the draw scaled to [0, 1).
func (i Index) Ratio() float64 { return float64(i) / MaxIndex }

// Picker is the capability set the schema layer needs from a draw.
type Picker interface {
	// Choose picks one of n alternatives.
	Choose(n int) int
	// Within picks a value in the inclusive window [lo, hi].
	Within(lo, hi int) int
}

var _ Picker = Index(0)

// Site describes where a draw is taken: the key of the schema node being
// built and its resolved mould shape.
type Site struct {
	Node  string
	Mould shape.Shape
}

// Source supplies the draw for a build depth. Implementations must be pure:
// the compiler re-asks for a depth after backtracking.
type Source interface {
	Next(depth int, site Site) Index
}

// Sequence replays a recorded list of indices, cycling by depth.
// An empty Sequence always yields 0.
type Sequence []Index

// Of builds a Sequence from plain ints.
func Of(values ...int) Sequence {
	seq := make(Sequence, len(values))
	for i, v := range values {
		seq[i] = New(v)
	}

	return seq
}

// Next returns s[depth mod len(s)].
func (s Sequence) Next(depth int, _ Site) Index {
	if len(s) == 0 {
		return 0
	}
	if depth < 0 {
		depth = -depth
	}

	return s[depth%len(s)]
}

// Seeded draws a SplitMix64 stream keyed by (Seed, depth). Seed 0 uses the
// fixed default seed.
type Seeded struct {
	Seed int64
}

// Next returns the draw for depth; the site is ignored.
func (s Seeded) Next(depth int, _ Site) Index {
	return fromSeed(DeriveSeed(normalizeSeed(s.Seed), uint64(depth)))
}
