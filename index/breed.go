package index

import "github.com/katalvlaran/lemnos/shape"

// Record is one draw taken while building a successful IR: the node it was
// taken for, the mould shape at that point, and the index used.
type Record struct {
	Node  string
	Mould shape.Shape
	Index Index
}

// Lineage is the ordered list of draws behind one IR.
type Lineage []Record

// Streams used to decorrelate the decisions taken per depth.
const (
	streamInherit uint64 = iota + 1
	streamParent
)

// Breed biases draws with the lineages of prior IRs.
//
// For each depth, with probability Inherit, one parent lineage is picked and
// the index it used at the same schema node is reused; records with an equal
// mould shape win over records that only share the node, and among equals the
// record closest to the current depth wins. Otherwise, or when no parent
// record matches, the draw comes from Fallback (Seeded{Seed} when nil).
type Breed struct {
	Population []Lineage
	Inherit    float64
	Seed       int64
	Fallback   Source
}

// Next implements Source.
func (b Breed) Next(depth int, site Site) Index {
	seed := normalizeSeed(b.Seed)
	if len(b.Population) > 0 && unit(DeriveSeed(seed, uint64(depth)<<8|streamInherit)) < b.Inherit {
		pick := uint64(DeriveSeed(seed, uint64(depth)<<8|streamParent)) % uint64(len(b.Population))
		if idx, ok := b.Population[pick].lookup(depth, site); ok {
			return idx
		}
	}
	if b.Fallback != nil {
		return b.Fallback.Next(depth, site)
	}

	return Seeded{Seed: seed}.Next(depth, site)
}

// lookup finds the best record for site in the lineage.
func (l Lineage) lookup(depth int, site Site) (Index, bool) {
	best, bestScore := -1, 0
	for i, r := range l {
		if r.Node != site.Node {
			continue
		}
		score := 1 << 20
		if r.Mould.Equal(site.Mould) {
			score <<= 1
		}
		score -= abs(i - depth)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return 0, false
	}

	return l[best].Index, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
