// Package ir holds the compiled intermediate representation: an append-only
// arena of materialized nodes wired by parent/child ids.
//
// What:
//
//   - Graph: the arena. Node ids are dense, start at 0 and equal the
//     position of the node in the arena. Every parent id is smaller than the
//     id of its child, so arena order is already a topological order.
//   - Node: one instance of a schema node with its drawn index, its merged
//     input (Mould) and its locked Output.
//   - Truncate: rolls the arena back to a previous length, unhooking the
//     removed nodes from their parents. The compiler uses it to undo
//     speculative materialization when it backtracks.
//
// Read side:
//
//	Order     depth-first topological order (reverse post-order), cancellable.
//	Validate  structural and shape check; the DAG property is re-verified
//	          through gonum's graph/topo.
//	MarshalDOT  Graphviz rendering via gonum's graph/encoding/dot.
//	Lineage   the (schema key, mould, index) records that seed breeding.
//	Layers    the code-generation view, one schema.Layer per node.
//
// Complexity:
//
//   - Add:      O(P) for P parents.
//   - Truncate: O(removed nodes + their parent edges).
//   - Order, Validate, Stats: O(V + E).
//
// Concurrency: a Graph is not safe for concurrent mutation. A finished graph
// returned by the compiler is never mutated again and may be read from many
// goroutines.
package ir
