// Package index provides the deterministic bounded draws that drive every
// non-deterministic choice made while compiling a schema into an IR.
//
// What:
//
//   - Index: an immutable draw in [0, MaxIndex). It implements Picker, the two
//     capabilities the compiler needs: pick among N alternatives (Choose) and
//     pick inside an integer window (Within).
//   - Source: supplies one Index per build depth. The compiler asks for the
//     same depth again when it backtracks, so a Source must be a pure function
//     of (depth, site) for recorded runs to reproduce identical IRs.
//   - Sequence: a recorded list of indices, cycled by depth.
//   - Seeded: a SplitMix64 stream keyed by (seed, depth).
//   - Breed: a Source biased by the lineages of previously successful IRs.
//     A draw inherits the index a prior IR used at the same schema node
//     (preferring an identical mould shape) with probability Inherit, and falls
//     back to another Source otherwise.
//
// Determinism:
//
//   - Same Source value + same (depth, site) => same Index, always.
//   - No time-based or global random state is consulted anywhere.
//
// Concurrency:
//
//   - Every Source in this package is a value type with no mutable state and is
//     safe for concurrent use.
package index
